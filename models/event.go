package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a time/author-clustered group of one or more raw posts treated as
// one classification unit. EventID is a deterministic hash of the member
// post ids, so re-clustering identical input reproduces identical Events.
// Collection: events
type Event struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	EventID       string             `bson:"event_id" json:"event_id"`
	AssetID       string             `bson:"asset_id" json:"asset_id"`
	AuthorID      string             `bson:"author_id" json:"author_id"`
	AnchorPostID  string             `bson:"anchor_post_id" json:"anchor_post_id"`
	MemberPostIDs []string           `bson:"member_post_ids" json:"member_post_ids"`
	CombinedText  string             `bson:"combined_text" json:"combined_text"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	MemberCount   int                `bson:"member_count" json:"member_count"`
	IsReply       bool               `bson:"is_reply" json:"is_reply"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
