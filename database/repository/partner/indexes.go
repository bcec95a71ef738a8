package partnerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoPartnerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Multikey index over the service-area zip list, the hot search path.
		{Keys: bson.D{{Key: "serviceAreas", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create partner indexes: %w", err)
	}
	return nil
}
