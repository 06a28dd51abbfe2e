package dto

import (
	"time"

	"tickertag/models"
	"tickertag/resolver"
)

// ViewDTO is the export shape of a resolved classification.
type ViewDTO struct {
	EventID       string    `json:"event_id"`
	AssetID       string    `json:"asset_id"`
	AuthorID      string    `json:"author_id"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	MemberCount   int       `json:"member_count"`
	SchemaVersion string    `json:"schema_version"`

	State       string `json:"state"`
	Category    string `json:"category,omitempty"`
	Format      string `json:"format,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Method      string `json:"method,omitempty"`
	NeedsReview bool   `json:"needs_review"`

	// Reasoning is the disclosure field for UIs: the machine rationale,
	// or the human override reason when the event is overridden.
	Reasoning string `json:"reasoning,omitempty"`

	Overridden     bool   `json:"overridden"`
	OverrideAuthor string `json:"override_author,omitempty"`
}

// NewViewDTO joins an event with its resolved view.
func NewViewDTO(e models.Event, v resolver.CurrentView) ViewDTO {
	reasoning := v.Rationale
	if v.Overridden && v.OverrideReason != "" {
		reasoning = v.OverrideReason
	}
	return ViewDTO{
		EventID:        e.EventID,
		AssetID:        e.AssetID,
		AuthorID:       e.AuthorID,
		Text:           e.CombinedText,
		Timestamp:      e.Timestamp,
		MemberCount:    e.MemberCount,
		SchemaVersion:  v.SchemaVersion,
		State:          string(v.State),
		Category:       string(v.Category),
		Format:         string(v.Format),
		Tone:           string(v.Tone),
		Method:         string(v.Method),
		NeedsReview:    v.NeedsReview,
		Reasoning:      reasoning,
		Overridden:     v.Overridden,
		OverrideAuthor: v.OverrideAuthor,
	}
}

// RunDTO is the export shape of one audit-trail Run.
type RunDTO struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	BatchID       string    `json:"batch_id"`
	SchemaVersion string    `json:"schema_version"`
	Category      string    `json:"category"`
	Method        string    `json:"method"`
	Format        string    `json:"format,omitempty"`
	Tone          string    `json:"tone,omitempty"`
	Rationale     string    `json:"rationale"`
	Fingerprint   string    `json:"fingerprint,omitempty"`
	ModelName     string    `json:"model_name,omitempty"`
	NeedsReview   bool      `json:"needs_review"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewRunDTO(r models.Run) RunDTO {
	return RunDTO{
		ID:            r.ID.Hex(),
		EventID:       r.EventID,
		BatchID:       r.BatchID,
		SchemaVersion: r.SchemaVersion,
		Category:      string(r.Category),
		Method:        string(r.Method),
		Format:        string(r.Format),
		Tone:          string(r.Tone),
		Rationale:     r.Rationale,
		Fingerprint:   r.Fingerprint,
		ModelName:     r.ModelName,
		NeedsReview:   r.NeedsReview,
		CreatedAt:     r.CreatedAt,
	}
}
