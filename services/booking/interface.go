package booking

import (
	"context"

	bookingRepo "drivebook/database/repository/booking"
	partnerRepo "drivebook/database/repository/partner"
	"drivebook/models"
	"drivebook/services/calendar"
	"drivebook/services/notification"
)

// BookingForm is the data the booking page renders before confirmation.
type BookingForm struct {
	Partner     models.Partner `json:"partner"`
	Service     models.Service `json:"service"`
	SlotStart   string         `json:"slotStart"`
	SlotDisplay string         `json:"slotDisplay"`
}

// SourceResolver selects the calendar source for a partner. Satisfied by
// calendar.Factory.
type SourceResolver interface {
	ForPartner(partner models.Partner) (calendar.Source, error)
}

// BookingService owns the write path: one calendar event per confirmed
// booking, plus the persisted record.
type BookingService interface {
	// BookingDetails returns the data for the booking form.
	BookingDetails(ctx context.Context, partnerID, serviceID, slot string) (*BookingForm, error)
	// ConfirmBooking writes the booking to the partner's calendar exactly
	// once and persists the record. Calendar failures propagate typed.
	ConfirmBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	PartnerRepo partnerRepo.PartnerRepository
	BookingRepo bookingRepo.BookingRepository
	Sources     SourceResolver
	Notifier    notification.NotificationService
}
