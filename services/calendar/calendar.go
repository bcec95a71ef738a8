package calendar

import (
	"context"
	"time"

	"drivebook/models"
)

// Event is a calendar entry created on the write path, one per confirmed
// booking.
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Attendee    string
}

// ConnectAuth describes how a partner links their calendar account: either a
// URL to visit (OAuth consent, unified connect flow) or nothing further.
type ConnectAuth struct {
	URL       string `json:"url,omitempty"`
	Completed bool   `json:"completed"`
}

// Source abstracts one partner-facing calendar backend. Implementations must
// return busy intervals as zone-aware absolute instants, and must distinguish
// credential failures (AuthenticationError) from transient provider failures
// (SourceUnavailableError); neither is ever reported as zero intervals.
type Source interface {
	// FetchBusyIntervals returns the partner's busy time over
	// [windowStart, windowEnd), a UTC day window computed by the caller.
	FetchBusyIntervals(ctx context.Context, partner models.Partner, windowStart, windowEnd time.Time) ([]models.BusyInterval, error)
	// CreateEvent writes a booking to the partner's calendar and returns the
	// provider event id.
	CreateEvent(ctx context.Context, partner models.Partner, ev Event) (string, error)
	// ResolveConnectAuth reports what the partner must do to (re)connect
	// their calendar account.
	ResolveConnectAuth(ctx context.Context, partner models.Partner) (ConnectAuth, error)
}
