package search

import (
	"context"
	"time"

	"drivebook/models"
	"drivebook/services/calendar"
)

// PartnerError is the per-partner failure entry in a search result. A failed
// calendar fetch shows up here, so "temporarily unavailable" is never
// confused with "fully booked".
type PartnerError struct {
	Kind    string `json:"kind"` // "authentication" | "unavailable" | "configuration"
	Message string `json:"message"`
}

// PartnerAvailability pairs one matched partner with their free slots, or
// with the error that prevented computing them.
type PartnerAvailability struct {
	Partner models.Partner        `json:"partner"`
	Slots   []models.CandidateSlot `json:"slots"`
	Error   *PartnerError          `json:"error,omitempty"`
}

// Result is the full availability answer for one (zip, date) search.
type Result struct {
	ZipCode  string                `json:"zipCode"`
	Date     string                `json:"date"`
	Location models.Location       `json:"location"`
	Partners []PartnerAvailability `json:"partners"`
}

// SourceResolver selects the calendar source for a partner. Satisfied by
// calendar.Factory.
type SourceResolver interface {
	ForPartner(partner models.Partner) (calendar.Source, error)
}

// SearchService answers zip + date availability searches.
type SearchService interface {
	SearchAvailability(ctx context.Context, zip string, date time.Time) (*Result, error)
}
