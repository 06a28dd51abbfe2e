package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertag/models"
	"tickertag/rules"
)

func newEngine() *rules.Engine {
	return rules.NewEngine(models.TaxonomyV1())
}

func TestClassifyProductUpdate(t *testing.T) {
	cls, ok := newEngine().Classify(rules.Input{Text: "API is now live", MemberCount: 1})
	require.True(t, ok)
	assert.Equal(t, models.CategoryUpdate, cls.Category)
	assert.Equal(t, models.MethodRule, cls.Method)
	assert.False(t, cls.NeedsReview)
	assert.Equal(t, "v1", cls.SchemaVersion)
	assert.Empty(t, cls.Fingerprint)
}

func TestClassifyDeclinesWeakText(t *testing.T) {
	for _, text := range []string{"gm", "interesting times ahead", "lol", ""} {
		_, ok := newEngine().Classify(rules.Input{Text: text, MemberCount: 1})
		assert.False(t, ok, "expected decline for %q", text)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	in := rules.Input{Text: "We're partnering with ACME and v2 is now live", MemberCount: 1}
	e := newEngine()

	first, okFirst := e.Classify(in)
	second, okSecond := e.Classify(in)
	require.Equal(t, okFirst, okSecond)
	if okFirst {
		assert.Equal(t, first.Category, second.Category)
		assert.Equal(t, first.Format, second.Format)
		assert.Equal(t, first.Tone, second.Tone)
	}
}

func TestClassifyAmbiguityDeclines(t *testing.T) {
	// Both the update and partnership matchers fire with different
	// categories, so the engine must decline.
	in := rules.Input{Text: "Partnering with ACME: the integration is now live", MemberCount: 1}
	_, ok := newEngine().Classify(in)
	assert.False(t, ok)
}

func TestClassifyStructuralFormatTags(t *testing.T) {
	e := newEngine()

	cls, ok := e.Classify(rules.Input{Text: "v3 is now live", MemberCount: 3})
	require.True(t, ok)
	assert.Equal(t, models.FormatThread, cls.Format)

	cls, ok = e.Classify(rules.Input{Text: "v3 is now live", MemberCount: 1, IsReply: true})
	require.True(t, ok)
	assert.Equal(t, models.FormatReply, cls.Format)
}

func TestLinkOnlyMatcher(t *testing.T) {
	m := rules.LinkOnlyMatcher()

	res, ok := m.Match(rules.Input{Text: "https://example.com/launch"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryMedia, res.Category)
	assert.Equal(t, models.FormatLinkOnly, res.Format)

	res, ok = m.Match(rules.Input{Text: "https://a.example https://b.example"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryMedia, res.Category)

	_, ok = m.Match(rules.Input{Text: "check this out https://example.com"})
	assert.False(t, ok)
}

func TestMilestoneMatcherNeedsQuantity(t *testing.T) {
	m := rules.MilestoneMatcher()

	_, ok := m.Match(rules.Input{Text: "🎉"})
	assert.False(t, ok)

	res, ok := m.Match(rules.Input{Text: "We hit 1 million users 🎉"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryMilestone, res.Category)
	assert.Equal(t, models.ToneCelebratory, res.Tone)
}

func TestDefenseMatcherWordBoundary(t *testing.T) {
	m := rules.DefenseMatcher()

	res, ok := m.Match(rules.Input{Text: "Ignore the FUD, the chain never went down"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryDefense, res.Category)

	// "fud" embedded in another word must not fire.
	_, ok = m.Match(rules.Input{Text: "refudiate"})
	assert.False(t, ok)
}

func TestPartnershipMatcher(t *testing.T) {
	m := rules.PartnershipMatcher()

	res, ok := m.Match(rules.Input{Text: "Excited to announce we're teaming up with ACME"})
	require.True(t, ok)
	assert.Equal(t, models.CategoryPartnership, res.Category)

	_, ok = m.Match(rules.Input{Text: "partners in crime"})
	assert.False(t, ok)
}
