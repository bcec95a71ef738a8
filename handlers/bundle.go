package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	// Search surface.
	IndexHandler        gin.HandlerFunc
	SubmitSearchHandler gin.HandlerFunc
	SearchHandler       gin.HandlerFunc

	// Booking surface.
	BookingFormHandler    gin.HandlerFunc
	ConfirmBookingHandler gin.HandlerFunc

	// Partner surface.
	JoinHandler            gin.HandlerFunc
	ConnectCallbackHandler gin.HandlerFunc

	// Provider push notifications.
	WebhookHandler gin.HandlerFunc
}
