package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	partnerRepo "drivebook/database/repository/partner"
	"drivebook/models"
	"drivebook/services/availability"
	"drivebook/services/calendar"
	"drivebook/services/location"
	"drivebook/utils"

	"go.uber.org/zap"
)

// DefaultSearchService implements SearchService by fanning one calendar
// query out per matched partner.
type DefaultSearchService struct {
	PartnerRepo partnerRepo.PartnerRepository
	LocationSvc location.LocationService
	Sources     SourceResolver
	Engine      *availability.Engine
	// Timeout bounds the whole fan-out; zero means 10s.
	Timeout time.Duration
}

// SearchAvailability resolves the zip, loads the partners serving it, and
// computes each partner's free slots for the requested civil day. Partners
// whose calendar fetch fails get an error entry; siblings are unaffected. An
// empty slot list is a normal "fully booked" answer.
func (s *DefaultSearchService) SearchAvailability(ctx context.Context, zip string, date time.Time) (*Result, error) {
	logger := utils.GetLogger()

	loc, err := s.LocationSvc.ResolveZip(ctx, zip)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location for zip %s: %w", zip, err)
	}

	tz, err := availability.ResolveTimezone(loc.Timezone)
	if err != nil {
		return nil, err
	}

	partners, err := s.PartnerRepo.GetByZip(zip)
	if err != nil {
		return nil, fmt.Errorf("failed to load partners for zip %s: %w", zip, err)
	}

	result := &Result{
		ZipCode:  zip,
		Date:     date.Format("2006-01-02"),
		Location: *loc,
		Partners: make([]PartnerAvailability, len(partners)),
	}
	if len(partners) == 0 {
		result.Partners = nil
		return result, nil
	}

	timeout := s.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	fanCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	windowStart, windowEnd := availability.DayWindow(date, tz)

	// Independent partners, independent credentials: one branch each,
	// writing only its own result slot.
	var wg sync.WaitGroup
	for i, partner := range partners {
		wg.Add(1)
		go func(i int, partner models.Partner) {
			defer wg.Done()
			result.Partners[i] = s.partnerAvailability(fanCtx, partner, date, tz, windowStart, windowEnd)
		}(i, partner)
	}
	wg.Wait()

	logger.Debug("availability search complete",
		zap.String("zip", zip),
		zap.String("date", result.Date),
		zap.Int("partners", len(partners)))
	return result, nil
}

func (s *DefaultSearchService) partnerAvailability(ctx context.Context, partner models.Partner, date time.Time, tz *time.Location, windowStart, windowEnd time.Time) PartnerAvailability {
	entry := PartnerAvailability{Partner: partner}

	source, err := s.Sources.ForPartner(partner)
	if err != nil {
		entry.Error = classify(err)
		return entry
	}

	busy, err := source.FetchBusyIntervals(ctx, partner, windowStart.UTC(), windowEnd.UTC())
	if err != nil {
		utils.GetLogger().Warn("busy-interval fetch failed",
			zap.String("partnerID", partner.ID),
			zap.String("provider", partner.CalendarProvider),
			zap.Error(err))
		entry.Error = classify(err)
		return entry
	}

	avail, err := s.Engine.Compute(partner, date, tz, busy)
	if err != nil {
		entry.Error = classify(err)
		return entry
	}
	entry.Slots = avail.Slots
	return entry
}

// classify maps an error onto the user-facing per-partner entry.
func classify(err error) *PartnerError {
	switch {
	case calendar.IsAuthentication(err):
		return &PartnerError{Kind: "authentication", Message: "This instructor's calendar connection needs attention."}
	case calendar.IsUnavailable(err):
		return &PartnerError{Kind: "unavailable", Message: "Availability is temporarily unavailable. Please try again shortly."}
	case availability.IsConfigurationError(err):
		return &PartnerError{Kind: "configuration", Message: "This instructor's schedule is misconfigured."}
	default:
		return &PartnerError{Kind: "unavailable", Message: "Availability is temporarily unavailable. Please try again shortly."}
	}
}
