package availability

import (
	"testing"
	"time"

	"drivebook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func testPartner() models.Partner {
	return models.Partner{ID: "partner-1", Name: "Sarah's Driving School"}
}

func localSlot(loc *time.Location, year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, loc)
}

func TestComputeEmptyBusyReturnsFullGrid(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	result, err := eng.Compute(testPartner(), date, loc, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)
	assert.Equal(t, "partner-1", result.PartnerID)

	for i, slot := range result.Slots {
		assert.Equal(t, localSlot(loc, 2026, 6, 15, 9+i), slot.Start)
		assert.Equal(t, slot.Start.Add(time.Hour), slot.End)
		assert.Equal(t, "partner-1", slot.PartnerID)
		if i > 0 {
			assert.True(t, result.Slots[i-1].Start.Before(slot.Start), "slots must be ascending")
		}
	}
}

func TestComputeRemovesExactlyTheBusySlot(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	busy := []models.BusyInterval{
		{Start: localSlot(loc, 2026, 6, 15, 13), End: localSlot(loc, 2026, 6, 15, 14)},
	}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	require.Len(t, result.Slots, 7)
	for _, slot := range result.Slots {
		assert.NotEqual(t, 13, slot.Start.Hour(), "the 13:00 slot must be removed")
	}
}

func TestComputeAbuttingBusyDoesNotRemove(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	// Busy ends exactly when the 09:00 slot starts, and another begins
	// exactly when the 16:00 slot ends. Half-open intervals: neither
	// touches a candidate.
	busy := []models.BusyInterval{
		{Start: localSlot(loc, 2026, 6, 15, 8), End: localSlot(loc, 2026, 6, 15, 9)},
		{Start: localSlot(loc, 2026, 6, 15, 17), End: localSlot(loc, 2026, 6, 15, 18)},
	}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 8)
}

func TestComputeOverlappingUnorderedBusyInput(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	// Unordered and mutually overlapping; together they cover 10:30-13:30.
	busy := []models.BusyInterval{
		{Start: localSlot(loc, 2026, 6, 15, 12), End: time.Date(2026, 6, 15, 13, 30, 0, 0, loc)},
		{Start: time.Date(2026, 6, 15, 10, 30, 0, 0, loc), End: time.Date(2026, 6, 15, 12, 30, 0, 0, loc)},
	}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	// 10:00, 11:00, 12:00 and 13:00 all intersect the covered span.
	require.Len(t, result.Slots, 4)
	var hours []int
	for _, slot := range result.Slots {
		hours = append(hours, slot.Start.Hour())
	}
	assert.Equal(t, []int{9, 14, 15, 16}, hours)
}

func TestComputeWholeDayBusyRemovesEverything(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	start, end := DayWindow(date, loc)
	busy := []models.BusyInterval{{Start: start, End: end}}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	assert.Empty(t, result.Slots, "a busy interval spanning the whole day removes all candidates")
}

func TestComputeIgnoresBusyOutsideBusinessWindow(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	busy := []models.BusyInterval{
		{Start: localSlot(loc, 2026, 6, 15, 5), End: localSlot(loc, 2026, 6, 15, 7)},
		{Start: localSlot(loc, 2026, 6, 15, 20), End: localSlot(loc, 2026, 6, 15, 22)},
	}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	assert.Len(t, result.Slots, 8)
}

func TestComputeNoSlotOverlapsAnyBusyInterval(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	busy := []models.BusyInterval{
		{Start: time.Date(2026, 6, 15, 9, 30, 0, 0, loc), End: time.Date(2026, 6, 15, 10, 15, 0, 0, loc)},
		{Start: time.Date(2026, 6, 15, 15, 59, 0, 0, loc), End: time.Date(2026, 6, 15, 16, 1, 0, 0, loc)},
	}
	result, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	for _, s := range result.Slots {
		for _, b := range busy {
			assert.False(t, s.Start.Before(b.End) && b.Start.Before(s.End),
				"slot %v overlaps busy %v", s, b)
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	busy := []models.BusyInterval{
		{Start: localSlot(loc, 2026, 6, 15, 11), End: localSlot(loc, 2026, 6, 15, 12)},
	}

	first, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	second, err := eng.Compute(testPartner(), date, loc, busy)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeSpringForwardTransition(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.DefaultSlotTemplate())
	// 2026-03-08: clocks jump 02:00 -> 03:00 in America/New_York.
	date := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	result, err := eng.Compute(testPartner(), date, loc, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 8)

	// Wall-clock hours stay fixed; the day is already on EDT (UTC-4).
	first := result.Slots[0].Start
	assert.Equal(t, 9, first.Hour())
	_, offset := first.Zone()
	assert.Equal(t, -4*60*60, offset)

	for i := 1; i < len(result.Slots); i++ {
		assert.Equal(t, time.Hour, result.Slots[i].Start.Sub(result.Slots[i-1].Start),
			"absolute spacing must stay one hour across the transition")
	}
}

func TestComputeHalfHourTemplate(t *testing.T) {
	loc := newYork(t)
	eng := NewEngine(models.SlotTemplate{StartHourLocal: 9, EndHourLocal: 11, SlotDurationMinutes: 30})
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	result, err := eng.Compute(testPartner(), date, loc, nil)
	require.NoError(t, err)
	require.Len(t, result.Slots, 4)
	assert.Equal(t, 30, result.Slots[1].Start.Minute())
}

func TestComputeConfigurationErrors(t *testing.T) {
	loc := newYork(t)
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	cases := map[string]models.SlotTemplate{
		"zero duration":        {StartHourLocal: 9, EndHourLocal: 17, SlotDurationMinutes: 0},
		"negative duration":    {StartHourLocal: 9, EndHourLocal: 17, SlotDurationMinutes: -30},
		"inverted window":      {StartHourLocal: 17, EndHourLocal: 9, SlotDurationMinutes: 60},
		"start equals end":     {StartHourLocal: 9, EndHourLocal: 9, SlotDurationMinutes: 60},
		"window past midnight": {StartHourLocal: 9, EndHourLocal: 25, SlotDurationMinutes: 60},
	}
	for name, tmpl := range cases {
		t.Run(name, func(t *testing.T) {
			eng := &Engine{Template: tmpl}
			_, err := eng.Compute(testPartner(), date, loc, nil)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestResolveTimezone(t *testing.T) {
	loc, err := ResolveTimezone("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	_, err = ResolveTimezone("Not/AZone")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestDayWindow(t *testing.T) {
	loc := newYork(t)
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	start, end := DayWindow(date, loc)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 6, 16, 0, 0, 0, 0, loc), end)
	// 24h on a regular day.
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	// 23h on the spring-forward day.
	dstDate := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	start, end = DayWindow(dstDate, loc)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}
