package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"drivebook/models"
	"drivebook/services/booking"
	"drivebook/services/calendar"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingService struct {
	record *models.Booking
	err    error
}

func (s *stubBookingService) BookingDetails(ctx context.Context, partnerID, serviceID, slot string) (*booking.BookingForm, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &booking.BookingForm{Partner: models.Partner{ID: partnerID}}, nil
}

func (s *stubBookingService) ConfirmBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func bookingRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(svc, zap.NewNop())
	r.GET("/book", h.BookingFormHandler)
	r.POST("/book", h.ConfirmBookingHandler)
	return r
}

func confirmRequest(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func validPayload() models.BookingRequest {
	return models.BookingRequest{
		PartnerID:     "p1",
		ServiceID:     "svc-road",
		Slot:          "2026-06-15T13:00:00-04:00",
		LearnerEmail:  "learner@example.com",
		MeetLocation:  "123 Main St",
		LearnerPermit: true,
	}
}

func TestConfirmBookingHandlerSuccess(t *testing.T) {
	svc := &stubBookingService{record: &models.Booking{ID: "b1", PartnerID: "p1", ProviderEventID: "evt-1"}}
	router := bookingRouter(svc)

	w := confirmRequest(t, router, validPayload())
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string         `json:"status"`
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, "b1", body.Booking.ID)
}

func TestConfirmBookingHandlerRejectsMissingFields(t *testing.T) {
	router := bookingRouter(&stubBookingService{})

	payload := validPayload()
	payload.LearnerEmail = ""
	w := confirmRequest(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmBookingHandlerValidationError(t *testing.T) {
	svc := &stubBookingService{err: booking.NewBookingError("you must confirm you hold a learner's permit")}
	router := bookingRouter(svc)

	w := confirmRequest(t, router, validPayload())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmBookingHandlerAuthErrorMapsTo502(t *testing.T) {
	svc := &stubBookingService{err: &calendar.AuthenticationError{
		Provider: "google", PartnerID: "p1", Err: errors.New("token revoked"),
	}}
	router := bookingRouter(svc)

	w := confirmRequest(t, router, validPayload())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "not made")
}

func TestConfirmBookingHandlerUnavailableMapsTo503(t *testing.T) {
	svc := &stubBookingService{err: &calendar.SourceUnavailableError{
		Provider: "unified", PartnerID: "p1", Err: errors.New("bad gateway"),
	}}
	router := bookingRouter(svc)

	w := confirmRequest(t, router, validPayload())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestConfirmBookingHandlerUnknownErrorMapsTo500(t *testing.T) {
	svc := &stubBookingService{err: errors.New("boom")}
	router := bookingRouter(svc)

	w := confirmRequest(t, router, validPayload())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBookingFormHandlerRequiresParams(t *testing.T) {
	router := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book?partner_id=p1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingFormHandlerHidesLookupDetail(t *testing.T) {
	svc := &stubBookingService{err: errors.New("mongo: no documents in result for partner p1")}
	router := bookingRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book?partner_id=p1&service_id=svc-road&slot=2026-06-15T13:00:00-04:00", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo")
	assert.Contains(t, w.Body.String(), "not found")
}

func TestBookingFormHandlerSuccess(t *testing.T) {
	router := bookingRouter(&stubBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/book?partner_id=p1&service_id=svc-road&slot=2026-06-15T13:00:00-04:00", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
