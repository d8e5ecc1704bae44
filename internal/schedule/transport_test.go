package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
)

// fakeTransport serves canned events and records writes. Busy-time queries
// (empty query) return busyEvents; signature queries return wellnessEvents.
type fakeTransport struct {
	busyEvents     []models.RemoteEvent
	wellnessEvents []models.RemoteEvent
	listErr        error
	insertErr      error
	inserted       []calendar.EventBody
	deleted        []string
}

func (f *fakeTransport) Capability() calendar.Capability {
	return calendar.CapabilityLive
}

func (f *fakeTransport) ListEvents(_ context.Context, _ string, timeMin, timeMax time.Time, query string) ([]models.RemoteEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	source := f.busyEvents
	if query == constants.EventSignature {
		source = f.wellnessEvents
	}

	var events []models.RemoteEvent
	for _, ev := range source {
		if ev.Start.Before(timeMax) && ev.End.After(timeMin) {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (f *fakeTransport) InsertEvent(_ context.Context, _ string, body calendar.EventBody) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, body)
	return fmt.Sprintf("event_%d", len(f.inserted)), nil
}

func (f *fakeTransport) DeleteEvent(_ context.Context, _, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func mustTime(t string) time.Time {
	parsed, err := time.Parse("2006-01-02 15:04", t)
	if err != nil {
		panic(err)
	}
	return parsed
}
