package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Method identifies which classifier produced a classification.
type Method string

const (
	MethodRule  Method = "rule"
	MethodModel Method = "model"
)

// Classification is one category assignment for an Event.
//
// Fingerprint is the SHA-256 of the exact payload sent to the external
// model; it is empty for method=rule. NeedsReview is forced true for every
// model classification and false for every rule classification.
type Classification struct {
	Category      CategoryLabel `bson:"category" json:"category"`
	Method        Method        `bson:"method" json:"method"`
	Format        FormatTag     `bson:"format,omitempty" json:"format,omitempty"`
	Tone          ToneTag       `bson:"tone,omitempty" json:"tone,omitempty"`
	Rationale     string        `bson:"rationale" json:"rationale"`
	SchemaVersion string        `bson:"schema_version" json:"schema_version"`
	Fingerprint   string        `bson:"fingerprint,omitempty" json:"fingerprint,omitempty"`
	NeedsReview   bool          `bson:"needs_review" json:"needs_review"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// Run is one persisted Classification for an Event at a given taxonomy
// version. Runs are append-only: a re-classification never replaces an
// earlier Run, it adds a new one; "latest" is resolved by CreatedAt with
// insertion order as the tie-break.
// Collection: runs
type Run struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID        string             `bson:"event_id" json:"event_id"`
	BatchID        string             `bson:"batch_id" json:"batch_id"`
	ModelName      string             `bson:"model_name,omitempty" json:"model_name,omitempty"`
	Classification `bson:",inline"`
}
