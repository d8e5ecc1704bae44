package duplicates

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
)

// fakeTransport serves canned wellness events and records deletions.
// deleteErrs injects per-id failures.
type fakeTransport struct {
	capability calendar.Capability
	events     []models.RemoteEvent
	listErr    error
	deleteErrs map[string]error
	deleted    []string
}

func (f *fakeTransport) Capability() calendar.Capability {
	return f.capability
}

func (f *fakeTransport) ListEvents(_ context.Context, _ string, timeMin, timeMax time.Time, query string) ([]models.RemoteEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if query != constants.EventSignature {
		return nil, nil
	}
	var events []models.RemoteEvent
	for _, ev := range f.events {
		if ev.Start.Before(timeMax) && ev.End.After(timeMin) {
			events = append(events, ev)
		}
	}
	return events, nil
}

func (f *fakeTransport) InsertEvent(_ context.Context, _ string, _ calendar.EventBody) (string, error) {
	return "", errors.New("not supported")
}

func (f *fakeTransport) DeleteEvent(_ context.Context, _, eventID string) error {
	if err := f.deleteErrs[eventID]; err != nil {
		return err
	}
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

func event(id, summary, start, end string) models.RemoteEvent {
	return models.RemoteEvent{
		EventID: id,
		Summary: summary,
		Start:   mustTime(start),
		End:     mustTime(end),
	}
}

func TestDetectPairs_FindsNearIdenticalEvents(t *testing.T) {
	transport := &fakeTransport{
		capability: calendar.CapabilityLive,
		events: []models.RemoteEvent{
			event("e1", "🏃 Morning Run", "2026-03-02 09:00", "2026-03-02 09:30"),
			event("e2", "Morning Run", "2026-03-02 09:02", "2026-03-02 09:33"),
		},
	}
	detector := NewDetector(transport, "primary", 5)

	pairs := detector.DetectPairs(context.Background(),
		mustTime("2026-03-01 00:00"), mustTime("2026-03-08 00:00"))

	if len(pairs) != 1 {
		t.Fatalf("detected %d pairs, want 1", len(pairs))
	}
	// 36 time points + 19 duration points + 40 for equal cleaned titles.
	if pairs[0].SimilarityScore != 95 {
		t.Errorf("similarity = %v, want 95", pairs[0].SimilarityScore)
	}
}

func TestDetectPairs_ListFailureDegradesToEmpty(t *testing.T) {
	transport := &fakeTransport{
		capability: calendar.CapabilityLive,
		listErr:    errors.New("network down"),
	}
	detector := NewDetector(transport, "primary", 5)

	pairs := detector.DetectPairs(context.Background(),
		mustTime("2026-03-01 00:00"), mustTime("2026-03-08 00:00"))
	if pairs != nil {
		t.Errorf("expected no pairs on transport failure, got %d", len(pairs))
	}
}

func TestAreDuplicates_ToleranceBounds(t *testing.T) {
	base := event("e1", "Yoga", "2026-03-02 09:00", "2026-03-02 09:30")

	cases := []struct {
		name  string
		other models.RemoteEvent
		want  bool
	}{
		{"exact copy", event("e2", "Yoga", "2026-03-02 09:00", "2026-03-02 09:30"), true},
		{"start within tolerance", event("e2", "Yoga", "2026-03-02 09:05", "2026-03-02 09:35"), true},
		{"start beyond tolerance", event("e2", "Yoga", "2026-03-02 09:06", "2026-03-02 09:36"), false},
		{"duration beyond tolerance", event("e2", "Yoga", "2026-03-02 09:00", "2026-03-02 09:40"), false},
		{"different title", event("e2", "Dentist", "2026-03-02 09:00", "2026-03-02 09:30"), false},
		{"containing title", event("e2", "Yoga Session", "2026-03-02 09:00", "2026-03-02 09:30"), true},
	}
	for _, tc := range cases {
		if got := AreDuplicates(base, tc.other, 5); got != tc.want {
			t.Errorf("%s: AreDuplicates = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSimilarityScore_Symmetry(t *testing.T) {
	e1 := event("e1", "🧘 Evening Meditation", "2026-03-02 19:00", "2026-03-02 19:15")
	e2 := event("e2", "Meditation", "2026-03-02 19:03", "2026-03-02 19:20")

	if s1, s2 := SimilarityScore(e1, e2), SimilarityScore(e2, e1); s1 != s2 {
		t.Errorf("score not symmetric: %v vs %v", s1, s2)
	}
}

func TestSimilarityScore_CappedAtHundred(t *testing.T) {
	e1 := event("e1", "Run", "2026-03-02 09:00", "2026-03-02 09:30")
	e2 := event("e2", "Run", "2026-03-02 09:00", "2026-03-02 09:30")

	if got := SimilarityScore(e1, e2); got != 100 {
		t.Errorf("identical events score %v, want 100", got)
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"🏃‍♂️ Morning Run", "run"},
		{"Evening Yoga!", "yoga"},
		{"Daily Stretch-Session", "stretch-session"},
		{"Weekly Swim (pool)", "swim pool"},
		{"Afternoon", ""},
	}
	for _, tc := range cases {
		if got := CleanTitle(tc.in); got != tc.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDetectPairs_AllPairsConsidered(t *testing.T) {
	// Three copies of the same event yield all three unordered pairs.
	var events []models.RemoteEvent
	for i := 1; i <= 3; i++ {
		events = append(events, event(
			fmt.Sprintf("e%d", i), "Morning Run",
			"2026-03-02 09:00", "2026-03-02 09:30"))
	}
	transport := &fakeTransport{capability: calendar.CapabilityLive, events: events}
	detector := NewDetector(transport, "primary", 0) // 0 falls back to the default tolerance

	pairs := detector.DetectPairs(context.Background(),
		mustTime("2026-03-01 00:00"), mustTime("2026-03-08 00:00"))
	if len(pairs) != 3 {
		t.Errorf("detected %d pairs among 3 identical events, want 3", len(pairs))
	}
}
