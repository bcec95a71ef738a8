package partnerRepo

import (
	"fmt"
	"time"

	"drivebook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new partner document.
func (r *MongoPartnerRepo) Create(partner *models.Partner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, partner)
	if err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return nil
}

// Update modifies an existing partner document.
func (r *MongoPartnerRepo) Update(partner *models.Partner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": partner.ID}
	update := bson.M{"$set": partner}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update partner with id %s: %w", partner.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("partner with id %s not found", partner.ID)
	}
	return nil
}

// Delete removes a partner document by its ID.
func (r *MongoPartnerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete partner with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("partner with id %s not found", id)
	}
	return nil
}
