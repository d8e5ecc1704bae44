// Package calendar provides the remote calendar transport. A session is
// either Live (a Google Calendar service could be built from local
// credentials) or Demo (deterministic mock data, no remote writes). The
// capability is resolved once when the session opens; callers branch on it
// explicitly instead of catching transport errors ad hoc.
package calendar

import (
	"context"
	"time"

	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
)

type Capability int

const (
	CapabilityDemo Capability = iota
	CapabilityLive
)

func (c Capability) String() string {
	if c == CapabilityLive {
		return "live"
	}
	return "demo"
}

// EventBody is the payload for creating a remote event.
type EventBody struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	ColorID     string
	// ActivityType feeds synthesized demo-mode event ids.
	ActivityType string
}

// Transport is the calendar collaborator interface. Query filters events by
// free text; an empty query lists everything in range.
type Transport interface {
	Capability() Capability
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]models.RemoteEvent, error)
	InsertEvent(ctx context.Context, calendarID string, body EventBody) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Open resolves the session capability: if a Google Calendar service can be
// built from the given credentials and token files the session is Live,
// otherwise it degrades to Demo.
func Open(ctx context.Context, credentialsPath, tokenPath string) Transport {
	t, err := NewGoogleTransport(ctx, credentialsPath, tokenPath)
	if err != nil {
		logger.Warn("Calendar unavailable, running in demo mode", "error", err)
		return NewDemoTransport()
	}
	logger.Info("Google Calendar session established")
	return t
}
