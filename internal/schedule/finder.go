// Package schedule implements the scheduling engine: free-slot discovery
// under busy-time constraints, slot scoring, occupancy tracking within a
// run, and the plan scheduler that drives them.
package schedule

import (
	"context"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
)

// Finder enumerates candidate free slots for a date range.
type Finder struct {
	transport  calendar.Transport
	calendarID string
}

func NewFinder(transport calendar.Transport, calendarID string) *Finder {
	return &Finder{transport: transport, calendarID: calendarID}
}

// BusyTimes fetches busy intervals from the remote calendar for the range.
// A transport failure degrades to an empty list with a logged warning
// rather than aborting the scheduling pass.
func (f *Finder) BusyTimes(ctx context.Context, start, end time.Time) []models.BusyInterval {
	events, err := f.transport.ListEvents(ctx, f.calendarID, start, end, "")
	if err != nil {
		logger.Warn("Could not fetch busy times, treating range as free", "error", err)
		return nil
	}

	busy := make([]models.BusyInterval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, models.BusyInterval{
			Start: ev.Start,
			End:   ev.End,
			Label: ev.Summary,
		})
	}
	return busy
}

// FreeSlots returns candidate slots of the given duration within the
// preferred windows of each day in [rangeStart, rangeEnd). Windows are
// processed in caller order and deliberately not merged; overlapping
// windows can produce overlapping candidates, which the occupancy filter
// and scorer tolerate. Candidates step every SlotStepMinutes rather than
// every duration so the scorer has a dense set to rank.
func (f *Finder) FreeSlots(ctx context.Context, rangeStart, rangeEnd time.Time, durationMin int, windows []models.Window) []models.FreeSlot {
	if durationMin <= 0 || len(windows) == 0 {
		return nil
	}

	busy := f.BusyTimes(ctx, rangeStart, rangeEnd)
	duration := time.Duration(durationMin) * time.Minute
	step := constants.SlotStepMinutes * time.Minute

	var slots []models.FreeSlot
	loc := rangeStart.Location()
	day := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, loc)

	for day.Before(rangeEnd) {
		for _, w := range windows {
			cursor := day.Add(time.Duration(w.StartHour) * time.Hour)
			windowEnd := day.Add(time.Duration(w.EndHour) * time.Hour)

			for !cursor.Add(duration).After(windowEnd) {
				slotEnd := cursor.Add(duration)

				if conflict, ok := firstConflict(cursor, slotEnd, busy); ok {
					// Jump past the busy interval and retry. The overlap
					// guarantees conflict.End > cursor, so progress is made.
					cursor = conflict.End
					continue
				}

				slots = append(slots, models.FreeSlot{
					Start:       cursor,
					End:         slotEnd,
					DurationMin: durationMin,
					Date:        cursor.Format(constants.DateFormat),
				})
				cursor = cursor.Add(step)
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return slots
}

// firstConflict reports the first busy interval overlapping [start, end).
// Abutting intervals do not conflict (half-open semantics).
func firstConflict(start, end time.Time, busy []models.BusyInterval) (models.BusyInterval, bool) {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return b, true
		}
	}
	return models.BusyInterval{}, false
}
