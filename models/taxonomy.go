package models

import "fmt"

// CategoryLabel is a content category from the fixed taxonomy.
type CategoryLabel string

// Taxonomy v1 categories.
const (
	CategoryUpdate        CategoryLabel = "Update"
	CategoryPartnership   CategoryLabel = "Partnership"
	CategoryCommunity     CategoryLabel = "Community"
	CategoryMilestone     CategoryLabel = "Milestone"
	CategoryDefense       CategoryLabel = "Defense"
	CategoryMedia         CategoryLabel = "Media"
	CategoryShitpost      CategoryLabel = "Shitpost"
	CategoryUncategorized CategoryLabel = "Uncategorized"
)

// FormatTag describes the structural shape of an event's content.
type FormatTag string

const (
	FormatText     FormatTag = "text"
	FormatLinkOnly FormatTag = "link_only"
	FormatThread   FormatTag = "thread"
	FormatReply    FormatTag = "reply"
	FormatMedia    FormatTag = "media"
)

// ToneTag describes the register of an event's content.
type ToneTag string

const (
	ToneNeutral     ToneTag = "neutral"
	ToneCelebratory ToneTag = "celebratory"
	ToneDefensive   ToneTag = "defensive"
	ToneHumorous    ToneTag = "humorous"
)

// Taxonomy is the versioned classification schema. It is passed explicitly
// wherever categories or tags are produced or validated; its SchemaVersion
// is recorded on every Run so taxonomy evolution never invalidates history.
type Taxonomy struct {
	SchemaVersion string
	Categories    []CategoryLabel
	Formats       []FormatTag
	Tones         []ToneTag
}

// TaxonomyV1 returns the current taxonomy.
func TaxonomyV1() Taxonomy {
	return Taxonomy{
		SchemaVersion: "v1",
		Categories: []CategoryLabel{
			CategoryUpdate,
			CategoryPartnership,
			CategoryCommunity,
			CategoryMilestone,
			CategoryDefense,
			CategoryMedia,
			CategoryShitpost,
			CategoryUncategorized,
		},
		Formats: []FormatTag{FormatText, FormatLinkOnly, FormatThread, FormatReply, FormatMedia},
		Tones:   []ToneTag{ToneNeutral, ToneCelebratory, ToneDefensive, ToneHumorous},
	}
}

// ValidCategory reports whether label belongs to the taxonomy.
func (t Taxonomy) ValidCategory(label CategoryLabel) bool {
	for _, c := range t.Categories {
		if c == label {
			return true
		}
	}
	return false
}

// ValidFormat reports whether tag belongs to the taxonomy. The empty tag is
// valid: secondary tags are optional on classifications and overrides.
func (t Taxonomy) ValidFormat(tag FormatTag) bool {
	if tag == "" {
		return true
	}
	for _, f := range t.Formats {
		if f == tag {
			return true
		}
	}
	return false
}

// ValidTone reports whether tag belongs to the taxonomy.
func (t Taxonomy) ValidTone(tag ToneTag) bool {
	if tag == "" {
		return true
	}
	for _, v := range t.Tones {
		if v == tag {
			return true
		}
	}
	return false
}

// CategoryFromString parses a category label coming from an external source
// (model response, override intake) against the taxonomy.
func (t Taxonomy) CategoryFromString(s string) (CategoryLabel, error) {
	label := CategoryLabel(s)
	if !t.ValidCategory(label) {
		return "", fmt.Errorf("unknown category %q for taxonomy %s", s, t.SchemaVersion)
	}
	return label, nil
}
