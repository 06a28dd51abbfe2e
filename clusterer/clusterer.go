package clusterer

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tickertag/models"
)

// Input-integrity failures. Either one fails the whole clustering run for
// the asset: silently dropping a post would corrupt the audit trail.
var (
	ErrMissingPostID    = errors.New("raw post has no post id")
	ErrMissingAuthor    = errors.New("raw post has no author")
	ErrMissingTimestamp = errors.New("raw post has no timestamp")
)

// TextSeparator joins member post texts into an Event's combined text.
const TextSeparator = "\n\n"

// Clusterer groups raw posts into Events. Posts of one author within the
// configured window collapse into a single Event; a reply whose parent is
// already a member of one of the author's Events joins that Event even when
// the window has elapsed. Authors are never merged.
type Clusterer struct {
	window time.Duration
}

func New(window time.Duration) *Clusterer {
	return &Clusterer{window: window}
}

// Cluster partitions all posts of one asset into Events. Every post lands
// in exactly one Event; input order breaks timestamp ties so identical
// input always yields identical Events.
func (c *Clusterer) Cluster(assetID string, posts []models.RawPost) ([]models.Event, error) {
	for _, p := range posts {
		if p.PostID == "" {
			return nil, fmt.Errorf("asset %s: %w", assetID, ErrMissingPostID)
		}
		if p.AuthorID == "" {
			return nil, fmt.Errorf("asset %s: post %s: %w", assetID, p.PostID, ErrMissingAuthor)
		}
		if p.Timestamp.IsZero() {
			return nil, fmt.Errorf("asset %s: post %s: %w", assetID, p.PostID, ErrMissingTimestamp)
		}
	}

	sorted := make([]models.RawPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AuthorID != sorted[j].AuthorID {
			return sorted[i].AuthorID < sorted[j].AuthorID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var (
		events []*builder
		open   []*builder          // current author's events, open for thread joins
		member map[string]*builder // post id -> event, current author only
		author string
	)

	for i := range sorted {
		p := sorted[i]
		if p.AuthorID != author {
			author = p.AuthorID
			open = nil
			member = make(map[string]*builder)
		}

		var target *builder
		if p.ReplyParentID != "" {
			// Explicit thread linkage beats the window heuristic.
			target = member[p.ReplyParentID]
		}
		if target == nil && len(open) > 0 {
			cur := open[len(open)-1]
			if p.Timestamp.Sub(cur.lastTS) <= c.window {
				target = cur
			}
		}
		if target == nil {
			target = &builder{}
			open = append(open, target)
			events = append(events, target)
		}
		target.add(p)
		member[p.PostID] = target
	}

	out := make([]models.Event, 0, len(events))
	for _, b := range events {
		out = append(out, b.build(assetID))
	}
	return out, nil
}

type builder struct {
	posts  []models.RawPost
	lastTS time.Time
}

func (b *builder) add(p models.RawPost) {
	b.posts = append(b.posts, p)
	if p.Timestamp.After(b.lastTS) {
		b.lastTS = p.Timestamp
	}
}

func (b *builder) build(assetID string) models.Event {
	anchor := b.posts[0]
	ids := make([]string, 0, len(b.posts))
	texts := make([]string, 0, len(b.posts))
	for _, p := range b.posts {
		ids = append(ids, p.PostID)
		texts = append(texts, p.Text)
	}
	return models.Event{
		EventID:       EventID(ids),
		AssetID:       assetID,
		AuthorID:      anchor.AuthorID,
		AnchorPostID:  anchor.PostID,
		MemberPostIDs: ids,
		CombinedText:  strings.Join(texts, TextSeparator),
		Timestamp:     anchor.Timestamp,
		MemberCount:   len(b.posts),
		IsReply:       anchor.ReplyParentID != "",
	}
}

// EventID derives the deterministic event id from the ordered member post ids.
func EventID(memberPostIDs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(memberPostIDs, "\n")))
	return hex.EncodeToString(sum[:16])
}
