package calendar

import (
	"errors"
	"fmt"
)

// AuthenticationError indicates the partner's calendar credentials are
// expired or revoked. Surfaced to operators and partners, never silently
// collapsed into an empty busy list.
type AuthenticationError struct {
	Provider  string
	PartnerID string
	Err       error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("calendar auth failed for partner %s via %s: %v", e.PartnerID, e.Provider, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// SourceUnavailableError indicates a transient network or provider failure.
// Retryable by caller policy; never collapsed into an empty busy list.
type SourceUnavailableError struct {
	Provider  string
	PartnerID string
	Err       error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("calendar source %s unavailable for partner %s: %v", e.Provider, e.PartnerID, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// IsAuthentication reports whether err is (or wraps) an AuthenticationError.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}

// IsUnavailable reports whether err is (or wraps) a SourceUnavailableError.
func IsUnavailable(err error) bool {
	var ue *SourceUnavailableError
	return errors.As(err, &ue)
}
