package resolver

import (
	"context"
	"time"

	"tickertag/models"
)

// State is the consumer-facing classification state of an event.
type State string

const (
	// StateClassified: a category is resolved from a Run, an Override, or both.
	StateClassified State = "classified"
	// StateUncategorized: classification was attempted but inconclusive.
	StateUncategorized State = "uncategorized"
	// StateFiltered: no classification exists at all; consumers should
	// render the event as inert rather than defaulting a category.
	StateFiltered State = "filtered"
)

// CurrentView is the resolved classification for one event: the latest
// Override applied field-by-field on top of the latest Run.
type CurrentView struct {
	EventID       string               `json:"event_id"`
	SchemaVersion string               `json:"schema_version"`
	State         State                `json:"state"`
	Category      models.CategoryLabel `json:"category,omitempty"`
	Format        models.FormatTag     `json:"format,omitempty"`
	Tone          models.ToneTag       `json:"tone,omitempty"`
	Method        models.Method        `json:"method,omitempty"`
	Rationale     string               `json:"rationale,omitempty"`
	NeedsReview   bool                 `json:"needs_review"`
	Overridden    bool                 `json:"overridden"`
	OverrideReason string              `json:"override_reason,omitempty"`
	OverrideAuthor string              `json:"override_author,omitempty"`
	ResolvedAt    time.Time            `json:"resolved_at"`
}

// Resolve merges the latest Run and latest Override for an event. Either
// argument may be nil. Override fields win per field: an Override that only
// sets the category leaves the Run's secondary tags untouched. An Override
// counts as the human confirmation the review flag asks for, so an
// overridden view is never provisional.
func Resolve(eventID, schemaVersion string, run *models.Run, ov *models.Override) CurrentView {
	view := CurrentView{
		EventID:       eventID,
		SchemaVersion: schemaVersion,
		State:         StateFiltered,
		ResolvedAt:    time.Now().UTC(),
	}

	if run != nil {
		view.Category = run.Category
		view.Format = run.Format
		view.Tone = run.Tone
		view.Method = run.Method
		view.Rationale = run.Rationale
		view.NeedsReview = run.NeedsReview
	}
	if ov != nil {
		view.Overridden = true
		view.OverrideReason = ov.Reason
		view.OverrideAuthor = ov.Author
		view.NeedsReview = false
		if ov.Category != nil {
			view.Category = *ov.Category
		}
		if ov.Format != nil {
			view.Format = *ov.Format
		}
		if ov.Tone != nil {
			view.Tone = *ov.Tone
		}
	}

	switch {
	case view.Category == "":
		view.State = StateFiltered
	case view.Category == models.CategoryUncategorized:
		view.State = StateUncategorized
	default:
		view.State = StateClassified
	}
	return view
}

// RunStore is the slice of the Run Store the resolver reads.
type RunStore interface {
	Latest(ctx context.Context, eventID, schemaVersion string) (*models.Run, error)
}

// OverrideStore is the slice of the Override Store the resolver reads.
type OverrideStore interface {
	Latest(ctx context.Context, eventID string) (*models.Override, error)
}

// Resolver loads the latest Run and Override for an event and merges them.
type Resolver struct {
	runs      RunStore
	overrides OverrideStore
}

func New(runs RunStore, overrides OverrideStore) *Resolver {
	return &Resolver{runs: runs, overrides: overrides}
}

// CurrentView resolves one event under one taxonomy version.
func (r *Resolver) CurrentView(ctx context.Context, eventID, schemaVersion string) (CurrentView, error) {
	run, err := r.runs.Latest(ctx, eventID, schemaVersion)
	if err != nil {
		return CurrentView{}, err
	}
	ov, err := r.overrides.Latest(ctx, eventID)
	if err != nil {
		return CurrentView{}, err
	}
	return Resolve(eventID, schemaVersion, run, ov), nil
}
