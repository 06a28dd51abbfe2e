package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tickertag/models"
)

// OverrideRepository stores human corrections. Append-only: a correction to
// a correction is a new document for the same event id. Concurrent appends
// for one event both succeed; the later one wins in the current view.
type OverrideRepository struct {
	col *mongo.Collection
}

func NewOverrideRepository(db *mongo.Database) *OverrideRepository {
	return &OverrideRepository{col: db.Collection("overrides")}
}

// Append inserts one Override.
func (r *OverrideRepository) Append(ctx context.Context, ov *models.Override) error {
	if ov.CreatedAt.IsZero() {
		ov.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, ov)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ov.ID = oid
	}
	return nil
}

// Latest returns the most recent Override for an event, or nil. Identical
// timestamps break by append order (ObjectID).
func (r *OverrideRepository) Latest(ctx context.Context, eventID string) (*models.Override, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	var ov models.Override
	err := r.col.FindOne(ctx, bson.M{"event_id": eventID}, opts).Decode(&ov)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

// ListByEvent returns an event's full override history, newest first.
func (r *OverrideRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Override, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var overrides []models.Override
	if err := cur.All(ctx, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
