package partnerRepo

import (
	"drivebook/models"
)

// PartnerRepository defines methods for partner directory access.
type PartnerRepository interface {
	// GetByID retrieves a partner by its unique ID.
	GetByID(id string) (*models.Partner, error)
	// GetByEmail retrieves a partner by its email address.
	GetByEmail(email string) (*models.Partner, error)
	// GetByZip returns partners whose service areas include the zip code.
	GetByZip(zip string) ([]models.Partner, error)
	// GetAll retrieves all partners.
	GetAll() ([]models.Partner, error)
	// Create inserts a new partner record.
	Create(partner *models.Partner) error
	// Update modifies an existing partner record.
	Update(partner *models.Partner) error
	// Delete removes a partner record by its ID.
	Delete(id string) error
}
