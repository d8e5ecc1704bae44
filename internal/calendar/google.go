package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
)

const maxListResults = 100

// GoogleTransport talks to the Google Calendar v3 API. Token acquisition is
// out of scope here: the token file must already exist (the OAuth flow is a
// separate concern); a missing or unreadable token degrades the session to
// demo mode via Open.
type GoogleTransport struct {
	service *gcal.Service
}

func NewGoogleTransport(ctx context.Context, credentialsPath, tokenPath string) (*GoogleTransport, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	tokenBytes, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(tokenBytes, token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleTransport{service: service}, nil
}

func (g *GoogleTransport) Capability() Capability {
	return CapabilityLive
}

func (g *GoogleTransport) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]models.RemoteEvent, error) {
	call := g.service.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxListResults).
		Context(ctx)
	if query != "" {
		call = call.Q(query)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var events []models.RemoteEvent
	for _, item := range res.Items {
		// All-day events carry a date, not a dateTime. Skip them.
		if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			logger.Warn("Skipping event with unparseable start", "event_id", item.Id, "error", err)
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			logger.Warn("Skipping event with unparseable end", "event_id", item.Id, "error", err)
			continue
		}
		events = append(events, models.RemoteEvent{
			EventID:     item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Start:       start,
			End:         end,
		})
	}

	return events, nil
}

func (g *GoogleTransport) InsertEvent(ctx context.Context, calendarID string, body EventBody) (string, error) {
	event := &gcal.Event{
		Summary:     body.Summary,
		Description: body.Description,
		Start:       &gcal.EventDateTime{DateTime: body.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: body.End.Format(time.RFC3339)},
		ColorId:     body.ColorID,
		Reminders:   &gcal.EventReminders{UseDefault: true, ForceSendFields: []string{"UseDefault"}},
	}

	created, err := g.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}
	return created.Id, nil
}

func (g *GoogleTransport) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := g.service.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}
