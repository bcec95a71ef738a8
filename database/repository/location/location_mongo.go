package locationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drivebook/database"
	"drivebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no location is known for a zip code.
var ErrNotFound = errors.New("zip location not found")

// LocationRepository defines methods for zip-to-location lookups.
type LocationRepository interface {
	// GetByZip retrieves the location for a 5-digit zip code. Returns
	// ErrNotFound when the zip is unknown.
	GetByZip(zip string) (*models.Location, error)
	// Upsert inserts or replaces a location record.
	Upsert(loc *models.Location) error
}

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo creates a new instance of LocationRepository using MongoDB.
func NewMongoLocationRepo() LocationRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("zip_locations")
	return &MongoLocationRepo{coll: coll}
}

func (r *MongoLocationRepo) GetByZip(zip string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var loc models.Location
	filter := bson.M{"zipCode": zip}
	if err := r.coll.FindOne(ctx, filter).Decode(&loc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch location for zip %s: %w", zip, err)
	}
	return &loc, nil
}

func (r *MongoLocationRepo) Upsert(loc *models.Location) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"zipCode": loc.ZipCode}
	update := bson.M{"$set": loc}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert location for zip %s: %w", loc.ZipCode, err)
	}
	return nil
}
