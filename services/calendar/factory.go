package calendar

import (
	"fmt"

	"drivebook/models"
)

// Factory hands out the calendar source matching a partner's stored provider
// selector. Selection happens once per partner here; nothing downstream
// branches on the provider again.
type Factory struct {
	google  *GoogleSource
	unified *UnifiedSource
}

// NewFactory creates a factory over the configured provider implementations.
func NewFactory(google *GoogleSource, unified *UnifiedSource) *Factory {
	return &Factory{google: google, unified: unified}
}

// ForPartner returns the Source serving the partner's calendar.
func (f *Factory) ForPartner(partner models.Partner) (Source, error) {
	switch partner.CalendarProvider {
	case models.CalendarProviderGoogle:
		return f.google, nil
	case models.CalendarProviderUnified:
		return f.unified, nil
	default:
		return nil, fmt.Errorf("unsupported calendar provider: %s", partner.CalendarProvider)
	}
}
