package models

import "time"

// BusyInterval is a half-open [Start, End) range during which a partner's
// calendar reports an existing commitment. Instants are zone-aware; input
// intervals may be unordered or overlapping.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CandidateSlot is a fixed-duration half-open [Start, End) range eligible
// for booking. Generated fresh per request, never persisted.
type CandidateSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	PartnerID string    `json:"partnerId"`
}

// Display renders the slot start as a local wall-clock label, e.g. "01:00 PM".
func (s CandidateSlot) Display() string {
	return s.Start.Format("03:04 PM")
}

// AvailabilityResult is the ordered list of free slots for one partner on
// one day, ascending by start time. Empty means fully booked, not an error.
type AvailabilityResult struct {
	PartnerID string          `json:"partnerId"`
	Slots     []CandidateSlot `json:"slots"`
}

// SlotTemplate configures the daily candidate grid in partner-local time.
type SlotTemplate struct {
	StartHourLocal      int `mapstructure:"SLOT_START_HOUR" json:"startHourLocal"`
	EndHourLocal        int `mapstructure:"SLOT_END_HOUR" json:"endHourLocal"`
	SlotDurationMinutes int `mapstructure:"SLOT_DURATION_MINUTES" json:"slotDurationMinutes"`
}

// DefaultSlotTemplate is the 9am-5pm hourly grid.
func DefaultSlotTemplate() SlotTemplate {
	return SlotTemplate{StartHourLocal: 9, EndHourLocal: 17, SlotDurationMinutes: 60}
}
