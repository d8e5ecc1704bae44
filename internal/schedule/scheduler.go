package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
	"github.com/TimHopkin/wellsched/internal/storage"
)

// Per-activity failure reasons, in priority order of detection.
const (
	ReasonNoSlots          = "no available time slots found"
	ReasonConflictFiltered = "no suitable time slot after conflict filtering"
	ReasonCreateFailed     = "failed to create calendar event"
)

// Scheduler walks a multi-day plan and places each activity into the best
// available free slot, committing events to the remote calendar as it goes.
type Scheduler struct {
	finder     *Finder
	transport  calendar.Transport
	calendarID string
	store      storage.Provider
}

// New builds a Scheduler. store may be nil, in which case results are not
// persisted.
func New(transport calendar.Transport, calendarID string, store storage.Provider) *Scheduler {
	return &Scheduler{
		finder:     NewFinder(transport, calendarID),
		transport:  transport,
		calendarID: calendarID,
		store:      store,
	}
}

// Finder exposes the free-slot primitive for conflict-preview features.
func (s *Scheduler) Finder() *Finder {
	return s.finder
}

// Schedule places every activity of the plan, day by day, activity by
// activity. The per-activity loop is strictly sequential: each committed
// slot enters the occupancy tracker before the next activity is filtered,
// which is what prevents the run from double-booking itself. One
// activity's failure never aborts the plan; callers always get a complete
// result with per-item reasons.
func (s *Scheduler) Schedule(ctx context.Context, plan models.Plan, startDate time.Time, windows []models.Window) models.ScheduleResult {
	result := models.ScheduleResult{
		ScheduledActivities: []models.ScheduledActivity{},
		FailedActivities:    []models.FailedActivity{},
		StartDate:           startDate,
	}

	occupancy := NewOccupancy()
	occupancy.Seed(s.existingWellnessEvents(ctx, startDate, startDate.AddDate(0, 0, constants.OccupancyHorizonDays)))

	for _, day := range plan.Days {
		dayNumber := day.Day
		if dayNumber < 1 {
			dayNumber = 1
		}
		dayDate := startDate.AddDate(0, 0, dayNumber-1)
		dayStart := time.Date(dayDate.Year(), dayDate.Month(), dayDate.Day(), 0, 0, 0, 0, dayDate.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		for _, activity := range day.Activities {
			duration := activity.DurationMin
			if duration <= 0 {
				duration = constants.DefaultSlotDurationMin
			}

			freeSlots := s.finder.FreeSlots(ctx, dayStart, dayEnd, duration, windows)
			if len(freeSlots) == 0 {
				result.FailedActivities = append(result.FailedActivities, models.FailedActivity{
					Activity: activity,
					Reason:   ReasonNoSlots,
					Day:      dayNumber,
				})
				continue
			}

			available := occupancy.Filter(freeSlots)
			if len(available) == 0 {
				result.FailedActivities = append(result.FailedActivities, models.FailedActivity{
					Activity: activity,
					Reason:   ReasonConflictFiltered,
					Day:      dayNumber,
				})
				continue
			}

			best := ChooseBestSlot(activity, available)
			if best == nil {
				result.FailedActivities = append(result.FailedActivities, models.FailedActivity{
					Activity: activity,
					Reason:   ReasonConflictFiltered,
					Day:      dayNumber,
				})
				continue
			}

			eventID, err := s.transport.InsertEvent(ctx, s.calendarID, BuildEventBody(activity, best.Start))
			if err != nil || eventID == "" {
				if err != nil {
					logger.Warn("Event creation failed", "activity", activity.Type, "error", err)
				}
				result.FailedActivities = append(result.FailedActivities, models.FailedActivity{
					Activity: activity,
					Reason:   ReasonCreateFailed,
					Day:      dayNumber,
				})
				continue
			}

			// Commit to the tracker before the next activity is considered.
			occupancy.Add(best.Start, best.Start.Add(time.Duration(duration)*time.Minute))

			result.ScheduledActivities = append(result.ScheduledActivities, models.ScheduledActivity{
				Activity:      activity,
				ScheduledTime: best.Start,
				EventID:       eventID,
				Day:           dayNumber,
			})
		}
	}

	result.ScheduledCount = len(result.ScheduledActivities)
	result.FailedCount = len(result.FailedActivities)

	if s.store != nil {
		if err := s.store.SaveScheduleResult(result); err != nil {
			logger.Warn("Could not persist schedule result", "error", err)
		}
	}

	return result
}

// existingWellnessEvents loads this tool's own events in range so the run
// does not double-book against previous runs. Transport failures degrade
// to an empty seed with a logged warning.
func (s *Scheduler) existingWellnessEvents(ctx context.Context, start, end time.Time) []models.RemoteEvent {
	events, err := s.transport.ListEvents(ctx, s.calendarID, start, end, constants.EventSignature)
	if err != nil {
		logger.Warn("Could not fetch existing wellness events", "error", err)
		return nil
	}
	if len(events) > 0 {
		logger.Info("Seeding occupancy with existing wellness events", "count", len(events))
	}
	return events
}

// BuildEventBody assembles the remote event payload for an activity.
func BuildEventBody(activity models.Activity, start time.Time) calendar.EventBody {
	duration := activity.DurationMin
	if duration <= 0 {
		duration = constants.DefaultSlotDurationMin
	}

	var parts []string
	if activity.Details != "" {
		parts = append(parts, activity.Details)
	}
	if activity.Intensity != "" {
		parts = append(parts, fmt.Sprintf("Intensity: %s", activity.Intensity))
	}
	if activity.EquipmentNeeded != "" && activity.EquipmentNeeded != "none" {
		parts = append(parts, fmt.Sprintf("Equipment: %s", activity.EquipmentNeeded))
	}

	description := strings.Join(parts, "\n")
	description += "\n\n" + constants.EventSignature

	return calendar.EventBody{
		Summary:      "🏃‍♂️ " + activity.DisplayName(),
		Description:  description,
		Start:        start,
		End:          start.Add(time.Duration(duration) * time.Minute),
		ColorID:      constants.EventColorID,
		ActivityType: activity.Type,
	}
}
