package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Override is a human correction for one Event. Any subset of
// {category, format, tone} may be set; nil pointer fields leave the
// corresponding Run field untouched in the current view. Overrides are
// appended, never edited: a correction to a correction is a new Override
// for the same event id, and the most recent one wins. Ties on identical
// timestamps break by append order (ObjectID).
// Collection: overrides
type Override struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   string             `bson:"event_id" json:"event_id"`
	Category  *CategoryLabel     `bson:"category,omitempty" json:"category,omitempty"`
	Format    *FormatTag         `bson:"format,omitempty" json:"format,omitempty"`
	Tone      *ToneTag           `bson:"tone,omitempty" json:"tone,omitempty"`
	Reason    string             `bson:"reason" json:"reason"`
	Author    string             `bson:"author" json:"author"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
