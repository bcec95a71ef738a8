package availability

import (
	"errors"
	"fmt"
	"time"

	"drivebook/models"
)

// Engine computes bookable slots for one partner on one civil day by
// subtracting calendar busy intervals from the daily candidate grid.
// It is a pure function of its inputs; it never talks to a calendar itself.
type Engine struct {
	Template models.SlotTemplate
}

// NewEngine returns an Engine using the given slot template, falling back to
// the default 9am-5pm hourly grid when the template is zero.
func NewEngine(tmpl models.SlotTemplate) *Engine {
	if tmpl == (models.SlotTemplate{}) {
		tmpl = models.DefaultSlotTemplate()
	}
	return &Engine{Template: tmpl}
}

// ResolveTimezone loads an IANA zone name, mapping failure to a
// ConfigurationError per the error taxonomy.
func ResolveTimezone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewConfigurationError(fmt.Sprintf("unresolvable timezone %q", name))
	}
	return loc, nil
}

// DayWindow returns the [00:00, next day 00:00) window of the civil day in
// loc, as absolute instants. This is the window handed to calendar sources,
// which never do zone logic themselves.
func DayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// validateTemplate enforces the recognized template options.
func validateTemplate(tmpl models.SlotTemplate) error {
	if tmpl.SlotDurationMinutes <= 0 {
		return NewConfigurationError(fmt.Sprintf("slot duration must be positive, got %d", tmpl.SlotDurationMinutes))
	}
	if tmpl.StartHourLocal >= tmpl.EndHourLocal {
		return NewConfigurationError(fmt.Sprintf("start hour %d must precede end hour %d", tmpl.StartHourLocal, tmpl.EndHourLocal))
	}
	if tmpl.StartHourLocal < 0 || tmpl.EndHourLocal > 24 {
		return NewConfigurationError(fmt.Sprintf("business window [%d, %d) is outside the day", tmpl.StartHourLocal, tmpl.EndHourLocal))
	}
	return nil
}

// Compute generates the candidate grid for the civil day of date in loc and
// retains every slot that does not overlap any busy interval.
//
// Candidate boundaries are built by localizing wall-clock hours into loc, so
// a slot's local hour is fixed while its absolute instant shifts correctly
// across DST transitions. Busy intervals must already be absolute instants;
// they may be empty, overlapping, or unordered. An empty result means the day
// is fully booked, never a failure.
func (e *Engine) Compute(partner models.Partner, date time.Time, loc *time.Location, busy []models.BusyInterval) (models.AvailabilityResult, error) {
	if loc == nil {
		return models.AvailabilityResult{}, NewConfigurationError("nil timezone location")
	}
	if err := validateTemplate(e.Template); err != nil {
		return models.AvailabilityResult{}, err
	}

	duration := time.Duration(e.Template.SlotDurationMinutes) * time.Minute
	startMin := e.Template.StartHourLocal * 60
	endMin := e.Template.EndHourLocal * 60

	result := models.AvailabilityResult{PartnerID: partner.ID}
	for m := startMin; m+e.Template.SlotDurationMinutes <= endMin; m += e.Template.SlotDurationMinutes {
		start := time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
		end := start.Add(duration)
		if overlapsAny(start, end, busy) {
			continue
		}
		result.Slots = append(result.Slots, models.CandidateSlot{
			Start:     start,
			End:       end,
			PartnerID: partner.ID,
		})
	}
	return result, nil
}

// overlapsAny applies the half-open intersection rule: [a,b) and [c,d)
// overlap iff a < d and c < b. Touching endpoints do not count.
func overlapsAny(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
