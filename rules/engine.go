package rules

import (
	"time"

	"tickertag/models"
)

// Input is the complete view a matcher gets of an event: combined text and
// minimal structure. The type carries no price, price-change, or impact
// fields, which enforces the no-leakage boundary structurally.
type Input struct {
	Text        string
	IsReply     bool
	MemberCount int
}

// Engine runs an ordered list of pure matchers over an event. It returns a
// Classification only when the matchers that fired agree on a single
// category; any ambiguity is a decline and falls through to the model.
type Engine struct {
	taxonomy models.Taxonomy
	matchers []Matcher
}

// NewEngine builds the engine with the default matcher set.
func NewEngine(taxonomy models.Taxonomy) *Engine {
	return &Engine{
		taxonomy: taxonomy,
		matchers: []Matcher{
			LinkOnlyMatcher(),
			ProductUpdateMatcher(),
			MilestoneMatcher(),
			DefenseMatcher(),
			PartnershipMatcher(),
		},
	}
}

// NewEngineWithMatchers builds an engine over an explicit matcher list.
func NewEngineWithMatchers(taxonomy models.Taxonomy, matchers []Matcher) *Engine {
	return &Engine{taxonomy: taxonomy, matchers: matchers}
}

// Classify evaluates the matchers in order. The second return value is
// false when the engine declines: no matcher fired, or two matchers
// asserted different categories.
func (e *Engine) Classify(in Input) (*models.Classification, bool) {
	var fired []Result
	for _, m := range e.matchers {
		if res, ok := m.Match(in); ok {
			fired = append(fired, res)
		}
	}
	if len(fired) == 0 {
		return nil, false
	}
	first := fired[0]
	for _, res := range fired[1:] {
		if res.Category != first.Category {
			// Conflicting assertions; precision over recall.
			return nil, false
		}
	}

	format := first.Format
	if format == "" {
		format = structuralFormat(in)
	}

	return &models.Classification{
		Category:      first.Category,
		Method:        models.MethodRule,
		Format:        format,
		Tone:          first.Tone,
		Rationale:     first.Rationale,
		SchemaVersion: e.taxonomy.SchemaVersion,
		NeedsReview:   false,
		CreatedAt:     time.Now().UTC(),
	}, true
}

func structuralFormat(in Input) models.FormatTag {
	switch {
	case in.MemberCount > 1:
		return models.FormatThread
	case in.IsReply:
		return models.FormatReply
	default:
		return models.FormatText
	}
}
