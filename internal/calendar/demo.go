package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TimHopkin/wellsched/internal/models"
)

// DemoTransport serves deterministic mock data when no calendar is
// configured. Busy-time queries return two fixed intervals on the first day
// of the range, signature-filtered queries return nothing, and inserts
// synthesize event ids. Deletes always fail; callers downgrade deletion
// runs to dry-run when the session is demo.
type DemoTransport struct{}

func NewDemoTransport() *DemoTransport {
	return &DemoTransport{}
}

func (d *DemoTransport) Capability() Capability {
	return CapabilityDemo
}

func (d *DemoTransport) ListEvents(_ context.Context, _ string, timeMin, _ time.Time, query string) ([]models.RemoteEvent, error) {
	if query != "" {
		// No pre-existing wellness events in demo mode.
		return nil, nil
	}

	day := time.Date(timeMin.Year(), timeMin.Month(), timeMin.Day(), 0, 0, 0, 0, timeMin.Location())
	return []models.RemoteEvent{
		{
			EventID: "demo_busy_meeting",
			Summary: "Meeting",
			Start:   day.Add(9 * time.Hour),
			End:     day.Add(10 * time.Hour),
		},
		{
			EventID: "demo_busy_lunch",
			Summary: "Lunch",
			Start:   day.Add(12 * time.Hour),
			End:     day.Add(13 * time.Hour),
		},
	}, nil
}

func (d *DemoTransport) InsertEvent(_ context.Context, _ string, body EventBody) (string, error) {
	kind := strings.TrimSpace(body.ActivityType)
	if kind == "" {
		kind = "activity"
	}
	return fmt.Sprintf("demo_event_%s_%d", kind, body.Start.Unix()), nil
}

func (d *DemoTransport) DeleteEvent(_ context.Context, _, eventID string) error {
	return fmt.Errorf("cannot delete event %s: no live calendar session", eventID)
}
