package booking

import "fmt"

// BookingError is a validation failure on the booking request itself, as
// opposed to a calendar-source failure.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(msg string) error {
	return &BookingError{
		Code:    "bookingError",
		Message: msg,
	}
}
