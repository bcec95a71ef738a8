package bookingRepo

import (
	"drivebook/models"
)

// BookingRepository defines methods for confirmed-booking records.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByPartner returns all bookings for a partner, newest first.
	GetByPartner(partnerID string) ([]models.Booking, error)
}
