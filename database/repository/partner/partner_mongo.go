package partnerRepo

import (
	"context"
	"fmt"
	"time"

	"drivebook/database"
	"drivebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPartnerRepo implements PartnerRepository using MongoDB.
type MongoPartnerRepo struct {
	coll *mongo.Collection
}

// NewMongoPartnerRepo creates a new instance of PartnerRepository using MongoDB.
func NewMongoPartnerRepo() PartnerRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("partners")
	return &MongoPartnerRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPartnerRepo) GetByID(id string) (*models.Partner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var partner models.Partner
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&partner); err != nil {
		return nil, fmt.Errorf("failed to fetch partner with id %s: %w", id, err)
	}
	return &partner, nil
}

func (r *MongoPartnerRepo) GetByEmail(email string) (*models.Partner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var partner models.Partner
	filter := bson.M{"email": email}
	if err := r.coll.FindOne(ctx, filter).Decode(&partner); err != nil {
		return nil, fmt.Errorf("failed to fetch partner with email %s: %w", email, err)
	}
	return &partner, nil
}

// GetByZip returns every partner serving the given zip code.
func (r *MongoPartnerRepo) GetByZip(zip string) ([]models.Partner, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"serviceAreas": zip})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve partners for zip %s: %w", zip, err)
	}
	defer cursor.Close(ctx)
	var partners []models.Partner
	for cursor.Next(ctx) {
		var p models.Partner
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while listing partners: %w", err)
	}
	return partners, nil
}

func (r *MongoPartnerRepo) GetAll() ([]models.Partner, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve partners: %w", err)
	}
	defer cursor.Close(ctx)
	var partners []models.Partner
	for cursor.Next(ctx) {
		var p models.Partner
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode partner: %w", err)
		}
		partners = append(partners, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while listing partners: %w", err)
	}
	return partners, nil
}
