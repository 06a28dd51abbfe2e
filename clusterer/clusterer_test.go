package clusterer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertag/clusterer"
	"tickertag/models"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func post(id, author string, offset time.Duration, text string) models.RawPost {
	return models.RawPost{
		PostID:    id,
		AssetID:   "doge",
		AuthorID:  author,
		Timestamp: base.Add(offset),
		Text:      text,
	}
}

func TestClusterSinglePost(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	events, err := c.Cluster("doge", []models.RawPost{post("p1", "alice", 0, "API is now live")})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "p1", e.AnchorPostID)
	assert.Equal(t, []string{"p1"}, e.MemberPostIDs)
	assert.Equal(t, "API is now live", e.CombinedText)
	assert.Equal(t, 1, e.MemberCount)
	assert.Equal(t, base, e.Timestamp)
}

func TestClusterRapidFireCollapses(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	events, err := c.Cluster("doge", []models.RawPost{
		post("p1", "alice", 0, "big news coming"),
		post("p2", "alice", 5*time.Minute, "here it is"),
		post("p3", "alice", 12*time.Minute, "and one more thing"),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"p1", "p2", "p3"}, events[0].MemberPostIDs)
	assert.Equal(t, "big news coming\n\nhere it is\n\nand one more thing", events[0].CombinedText)
}

func TestClusterWindowGapSplits(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	events, err := c.Cluster("doge", []models.RawPost{
		post("p1", "alice", 0, "morning thoughts"),
		post("p2", "alice", 40*time.Minute, "afternoon thoughts"),
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, []string{"p1"}, events[0].MemberPostIDs)
	assert.Equal(t, []string{"p2"}, events[1].MemberPostIDs)
}

func TestClusterAuthorsNeverMerge(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	events, err := c.Cluster("doge", []models.RawPost{
		post("p1", "alice", 0, "hello"),
		post("p2", "bob", time.Minute, "hello back"),
	})
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, 1, e.MemberCount)
	}
}

func TestClusterThreadJoinBeatsWindow(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	late := post("p2", "alice", 2*time.Hour, "following up on the thread")
	late.ReplyParentID = "p1"

	events, err := c.Cluster("doge", []models.RawPost{
		post("p1", "alice", 0, "starting a thread"),
		late,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"p1", "p2"}, events[0].MemberPostIDs)
}

func TestClusterCoverage(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	posts := []models.RawPost{
		post("p1", "alice", 0, "a"),
		post("p2", "bob", time.Minute, "b"),
		post("p3", "alice", 2*time.Minute, "c"),
		post("p4", "carol", time.Hour, "d"),
		post("p5", "bob", 3*time.Hour, "e"),
	}
	events, err := c.Cluster("doge", posts)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, e := range events {
		for _, id := range e.MemberPostIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, len(posts))
	for _, p := range posts {
		assert.Equal(t, 1, seen[p.PostID], "post %s must appear exactly once", p.PostID)
	}
}

func TestClusterDeterminism(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	posts := []models.RawPost{
		post("p1", "alice", 0, "a"),
		post("p2", "alice", time.Minute, "b"),
		post("p3", "bob", time.Minute, "c"),
		post("p4", "alice", 50*time.Minute, "d"),
	}

	first, err := c.Cluster("doge", posts)
	require.NoError(t, err)
	second, err := c.Cluster("doge", posts)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].EventID, second[i].EventID)
		assert.Equal(t, first[i].MemberPostIDs, second[i].MemberPostIDs)
	}
}

func TestClusterTimestampTieBreaksByInputOrder(t *testing.T) {
	c := clusterer.New(15 * time.Minute)
	events, err := c.Cluster("doge", []models.RawPost{
		post("p1", "alice", 0, "first"),
		post("p2", "alice", 0, "second"),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, []string{"p1", "p2"}, events[0].MemberPostIDs)
	assert.Equal(t, "p1", events[0].AnchorPostID)
}

func TestClusterFailsFastOnInvalidPost(t *testing.T) {
	c := clusterer.New(15 * time.Minute)

	noAuthor := post("p2", "", time.Minute, "orphan")
	_, err := c.Cluster("doge", []models.RawPost{post("p1", "alice", 0, "ok"), noAuthor})
	assert.ErrorIs(t, err, clusterer.ErrMissingAuthor)

	noTS := post("p3", "alice", 0, "no clock")
	noTS.Timestamp = time.Time{}
	_, err = c.Cluster("doge", []models.RawPost{noTS})
	assert.ErrorIs(t, err, clusterer.ErrMissingTimestamp)
}

func TestEventIDStable(t *testing.T) {
	assert.Equal(t, clusterer.EventID([]string{"p1", "p2"}), clusterer.EventID([]string{"p1", "p2"}))
	assert.NotEqual(t, clusterer.EventID([]string{"p1", "p2"}), clusterer.EventID([]string{"p2", "p1"}))
}
