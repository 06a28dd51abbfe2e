package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawPost is one ingested social post. Owned by the ingestion collaborator;
// this pipeline only reads it.
// Collection: raw_posts
type RawPost struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID        string             `bson:"post_id" json:"post_id"`
	AssetID       string             `bson:"asset_id" json:"asset_id"`
	AuthorID      string             `bson:"author_id" json:"author_id"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
	Text          string             `bson:"text" json:"text"`
	ReplyParentID string             `bson:"reply_parent_id,omitempty" json:"reply_parent_id,omitempty"`
	IngestedAt    time.Time          `bson:"ingested_at" json:"ingested_at"`
}
