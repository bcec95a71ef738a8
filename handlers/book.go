package handlers

import (
	"errors"
	"net/http"

	"drivebook/models"
	"drivebook/services/booking"
	"drivebook/services/calendar"
	"drivebook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking form and the confirmation write path.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// BookingFormHandler answers GET /book with the data the booking page needs.
func (h *BookingHandler) BookingFormHandler(c *gin.Context) {
	partnerID := c.Query("partner_id")
	serviceID := c.Query("service_id")
	slot := c.Query("slot")
	if partnerID == "" || serviceID == "" || slot == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "partner_id, service_id and slot are required")
		return
	}

	form, err := h.Svc.BookingDetails(c.Request.Context(), partnerID, serviceID, slot)
	if err != nil {
		var be *booking.BookingError
		if errors.As(err, &be) {
			utils.JSONError(c, http.StatusBadRequest, "invalid booking request", be.Message)
			return
		}
		h.Logger.Error("booking details lookup failed",
			zap.String("partnerID", partnerID), zap.Error(err))
		utils.JSONError(c, http.StatusNotFound, "booking details unavailable", "instructor or service not found")
		return
	}
	c.JSON(http.StatusOK, form)
}

// ConfirmBookingHandler answers POST /book. Exactly one calendar event is
// written per confirmed booking; calendar failures surface with their kind so
// the learner is never told "booked" when the event was not created.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Svc.ConfirmBooking(c.Request.Context(), req)
	if err != nil {
		var be *booking.BookingError
		switch {
		case errors.As(err, &be):
			utils.JSONError(c, http.StatusBadRequest, "invalid booking request", be.Message)
		case calendar.IsAuthentication(err):
			h.Logger.Error("calendar auth failure on booking", zap.Error(err))
			utils.JSONError(c, http.StatusBadGateway, "calendar connection needs attention",
				"The instructor's calendar rejected our credentials. The booking was not made.")
		case calendar.IsUnavailable(err):
			utils.JSONError(c, http.StatusServiceUnavailable, "calendar temporarily unavailable",
				"We could not reach the instructor's calendar. Please try again shortly.")
		default:
			h.Logger.Error("booking failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "booking failed", "could not complete the booking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "confirmed",
		"booking": record,
	})
}
