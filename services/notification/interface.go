package notification

import (
	"context"

	"drivebook/models"
)

// NotificationService enqueues learner-facing notifications for background
// delivery.
type NotificationService interface {
	EnqueueBookingConfirmation(booking models.Booking) error
}

// Sender delivers one notification. Email/SMS transports implement this; the
// worker only sees the interface.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, booking models.Booking) error
}
