package calendar

import (
	"context"
	"time"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
)

// UpcomingActivities lists this tool's events over the next days. Demo
// sessions return two fixed mock activities; transport failures degrade
// to an empty list with a logged warning.
func UpcomingActivities(ctx context.Context, t Transport, calendarID string, days int) []models.RemoteEvent {
	now := time.Now()

	if t.Capability() == CapabilityDemo {
		run := now.Add(2 * time.Hour)
		meditation := run.Add(10 * time.Hour)
		return []models.RemoteEvent{
			{
				EventID:     "demo_event_1",
				Summary:     "🏃‍♂️ Morning Run",
				Description: "30-minute easy-paced run",
				Start:       run,
				End:         run.Add(30 * time.Minute),
			},
			{
				EventID:     "demo_event_2",
				Summary:     "🧘‍♀️ Evening Meditation",
				Description: "15-minute mindfulness session",
				Start:       meditation,
				End:         meditation.Add(15 * time.Minute),
			},
		}
	}

	events, err := t.ListEvents(ctx, calendarID, now, now.AddDate(0, 0, days), constants.EventSignature)
	if err != nil {
		logger.Warn("Could not fetch upcoming activities", "error", err)
		return nil
	}
	return events
}
