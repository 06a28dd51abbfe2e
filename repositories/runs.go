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

// RunRepository is the append-only audit store for classification Runs.
// There is no update or delete path; duplicates per (event_id,
// schema_version) are valid re-classification history.
type RunRepository struct {
	col *mongo.Collection
}

func NewRunRepository(db *mongo.Database) *RunRepository {
	return &RunRepository{col: db.Collection("runs")}
}

// Append inserts one Run. It never touches existing documents.
func (r *RunRepository) Append(ctx context.Context, run *models.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, run)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		run.ID = oid
	}
	return nil
}

// Latest returns the most recent Run for (event, schema version), or nil
// when the event has never been classified under that version. Ties on
// created_at break by insertion order.
func (r *RunRepository) Latest(ctx context.Context, eventID, schemaVersion string) (*models.Run, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	var run models.Run
	err := r.col.FindOne(ctx, bson.M{"event_id": eventID, "schema_version": schemaVersion}, opts).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListByEvent returns the full run history for an event, newest first.
func (r *RunRepository) ListByEvent(ctx context.Context, eventID, schemaVersion string) ([]models.Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"event_id": eventID, "schema_version": schemaVersion}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var runs []models.Run
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// CountByEvent returns the number of Runs recorded for (event, schema version).
func (r *RunRepository) CountByEvent(ctx context.Context, eventID, schemaVersion string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"event_id": eventID, "schema_version": schemaVersion})
}
