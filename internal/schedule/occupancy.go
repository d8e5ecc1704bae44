package schedule

import (
	"time"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
)

// Occupancy accumulates the intervals committed during one scheduling run
// (plus pre-existing wellness events) and filters candidate slots against
// them. One instance lives for exactly one run; it is not safe for
// concurrent use and does not need to be, since activities are scheduled
// strictly sequentially.
type Occupancy struct {
	slots []models.OccupiedSlot
}

func NewOccupancy() *Occupancy {
	return &Occupancy{}
}

// Seed loads pre-existing remote events into the tracker.
func (o *Occupancy) Seed(events []models.RemoteEvent) {
	for _, ev := range events {
		o.slots = append(o.slots, models.OccupiedSlot{
			Start:  ev.Start,
			End:    ev.End,
			Source: models.OccupiedPreExisting,
		})
	}
}

// Add commits an interval scheduled during this run.
func (o *Occupancy) Add(start, end time.Time) {
	o.slots = append(o.slots, models.OccupiedSlot{
		Start:  start,
		End:    end,
		Source: models.OccupiedNewlyScheduled,
	})
}

// Slots returns the tracked intervals.
func (o *Occupancy) Slots() []models.OccupiedSlot {
	return o.slots
}

// Filter drops candidates that overlap an occupied slot, or that sit on
// the same calendar date as one with less than the buffer gap between
// them. The gap check is symmetric: whichever side the candidate falls on,
// min separation applies. It does not reach across day boundaries.
func (o *Occupancy) Filter(candidates []models.FreeSlot) []models.FreeSlot {
	if len(o.slots) == 0 {
		return candidates
	}

	buffer := constants.BufferMinutes * time.Minute

	available := make([]models.FreeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if !o.conflicts(slot, buffer) {
			available = append(available, slot)
		}
	}
	return available
}

func (o *Occupancy) conflicts(slot models.FreeSlot, buffer time.Duration) bool {
	for _, occ := range o.slots {
		// Overlap check, half-open semantics.
		if slot.Start.Before(occ.End) && slot.End.After(occ.Start) {
			return true
		}

		if !sameDate(slot.Start, occ.Start) {
			continue
		}

		// The candidate is entirely before or after the occupied slot;
		// exactly one of these gaps is non-negative.
		var gap time.Duration
		if !slot.End.After(occ.Start) {
			gap = occ.Start.Sub(slot.End)
		} else {
			gap = slot.Start.Sub(occ.End)
		}
		if gap < buffer {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
