package booking

import (
	"context"
	"fmt"
	"time"

	"drivebook/models"
	"drivebook/services/calendar"
	"drivebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingDetails loads the partner and catalogue entry for the booking form.
func (s *DefaultBookingService) BookingDetails(ctx context.Context, partnerID, serviceID, slot string) (*BookingForm, error) {
	partner, err := s.PartnerRepo.GetByID(partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load partner %s: %w", partnerID, err)
	}
	service, ok := partner.ServiceByID(serviceID)
	if !ok {
		return nil, NewBookingError(fmt.Sprintf("partner %s offers no service %s", partnerID, serviceID))
	}
	slotStart, err := time.Parse(time.RFC3339, slot)
	if err != nil {
		return nil, NewBookingError(fmt.Sprintf("invalid slot %q", slot))
	}
	return &BookingForm{
		Partner:     *partner,
		Service:     service,
		SlotStart:   slotStart.Format(time.RFC3339),
		SlotDisplay: models.CandidateSlot{Start: slotStart}.Display(),
	}, nil
}

// ConfirmBooking validates the request, writes exactly one event to the
// partner's calendar, and persists the booking record. A calendar
// AuthenticationError or SourceUnavailableError propagates to the caller
// untouched; no retry happens here, so no duplicate event can be written.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !req.LearnerPermit {
		return nil, NewBookingError("you must confirm you hold a learner's permit")
	}
	if req.MeetLocation == "" {
		return nil, NewBookingError("meet location is required")
	}
	slotStart, err := time.Parse(time.RFC3339, req.Slot)
	if err != nil {
		return nil, NewBookingError(fmt.Sprintf("invalid slot %q", req.Slot))
	}

	partner, err := s.PartnerRepo.GetByID(req.PartnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load partner %s: %w", req.PartnerID, err)
	}
	service, ok := partner.ServiceByID(req.ServiceID)
	if !ok {
		return nil, NewBookingError(fmt.Sprintf("partner %s offers no service %s", req.PartnerID, req.ServiceID))
	}
	slotEnd := slotStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

	source, err := s.Sources.ForPartner(*partner)
	if err != nil {
		return nil, err
	}

	event := calendar.Event{
		Summary:     fmt.Sprintf("Driving lesson: %s", service.Name),
		Description: fmt.Sprintf("Booked via Drivebook for %s", req.LearnerEmail),
		Location:    req.MeetLocation,
		Start:       slotStart,
		End:         slotEnd,
		Attendee:    req.LearnerEmail,
	}
	eventID, err := source.CreateEvent(ctx, *partner, event)
	if err != nil {
		return nil, err
	}

	record := &models.Booking{
		ID:              uuid.New().String(),
		PartnerID:       partner.ID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Price:           service.Price,
		SlotStart:       slotStart,
		SlotEnd:         slotEnd,
		LearnerEmail:    req.LearnerEmail,
		MeetLocation:    req.MeetLocation,
		ProviderEventID: eventID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.BookingRepo.Create(record); err != nil {
		// The calendar event exists; losing the record must not look like a
		// failed booking to the learner.
		logger.Error("booking record persist failed after calendar write",
			zap.String("bookingID", record.ID),
			zap.String("eventID", eventID),
			zap.Error(err))
	}

	if s.Notifier != nil {
		if err := s.Notifier.EnqueueBookingConfirmation(*record); err != nil {
			logger.Warn("failed to enqueue booking confirmation",
				zap.String("bookingID", record.ID), zap.Error(err))
		}
	}

	logger.Info("booking confirmed",
		zap.String("bookingID", record.ID),
		zap.String("partnerID", partner.ID),
		zap.String("eventID", eventID))
	return record, nil
}
