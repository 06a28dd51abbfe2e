package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tickertag/models"
)

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection("events")}
}

// UpsertByEventID stores an event keyed by its deterministic id. Re-running
// the clusterer on identical input reproduces the same ids, so the upsert
// is idempotent.
func (r *EventRepository) UpsertByEventID(ctx context.Context, e *models.Event) (*mongo.UpdateResult, error) {
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	filter := bson.M{"event_id": e.EventID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": e.CreatedAt,
		},
		"$set": bson.M{
			"updated_at":      e.UpdatedAt,
			"asset_id":        e.AssetID,
			"author_id":       e.AuthorID,
			"anchor_post_id":  e.AnchorPostID,
			"member_post_ids": e.MemberPostIDs,
			"combined_text":   e.CombinedText,
			"timestamp":       e.Timestamp,
			"member_count":    e.MemberCount,
			"is_reply":        e.IsReply,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// FindByEventID returns one event by its deterministic id.
func (r *EventRepository) FindByEventID(ctx context.Context, eventID string) (*models.Event, error) {
	var e models.Event
	if err := r.col.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByAsset returns an asset's events, newest first.
func (r *EventRepository) ListByAsset(ctx context.Context, assetID string, limit int) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"asset_id": assetID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
