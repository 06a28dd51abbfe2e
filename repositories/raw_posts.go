package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tickertag/models"
)

// RawPostRepository reads the ingestion collaborator's collection. The
// pipeline never writes here.
type RawPostRepository struct {
	col *mongo.Collection
}

func NewRawPostRepository(db *mongo.Database) *RawPostRepository {
	return &RawPostRepository{col: db.Collection("raw_posts")}
}

// ListByAsset returns all raw posts for one asset in timestamp order.
func (r *RawPostRepository) ListByAsset(ctx context.Context, assetID string) ([]models.RawPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"asset_id": assetID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.RawPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
