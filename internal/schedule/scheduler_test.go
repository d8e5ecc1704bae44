package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/models"
)

// memStore is a minimal in-memory storage.Provider for scheduler tests.
type memStore struct {
	saved []models.ScheduleResult
}

func (m *memStore) Load() error  { return nil }
func (m *memStore) Close() error { return nil }
func (m *memStore) SaveScheduleResult(r models.ScheduleResult) error {
	m.saved = append(m.saved, r)
	return nil
}
func (m *memStore) LastScheduleResult() (models.ScheduleResult, error) {
	if len(m.saved) == 0 {
		return models.ScheduleResult{}, errors.New("no results")
	}
	return m.saved[len(m.saved)-1], nil
}
func (m *memStore) AppendResolution(entry any) error          { return nil }
func (m *memStore) ResolutionHistory() ([]json.RawMessage, error) { return nil, nil }
func (m *memStore) DataDir() string                           { return "" }

func singleDayPlan(activities ...models.Activity) models.Plan {
	return models.Plan{Days: []models.PlanDay{{Day: 1, Activities: activities}}}
}

func runningActivity() models.Activity {
	return models.Activity{
		Type:        "running",
		Category:    "cardio",
		DurationMin: 30,
		BestTime:    "morning",
	}
}

func TestSchedule_SequentialActivitiesKeepSeparation(t *testing.T) {
	transport := &fakeTransport{}
	sched := New(transport, "primary", nil)

	plan := singleDayPlan(runningActivity(), runningActivity(), runningActivity(), runningActivity())
	start := mustTime("2026-03-02 00:00")
	windows := []models.Window{{StartHour: 6, EndHour: 8}}

	result := sched.Schedule(context.Background(), plan, start, windows)

	// A two-hour window fits three 30-minute activities with the minimum
	// separation between them; the fourth has nowhere left to go.
	if result.ScheduledCount != 3 {
		t.Fatalf("scheduled %d activities, want 3", result.ScheduledCount)
	}
	if result.FailedCount != 1 {
		t.Fatalf("failed %d activities, want 1", result.FailedCount)
	}
	if reason := result.FailedActivities[0].Reason; reason != ReasonConflictFiltered {
		t.Errorf("failure reason = %q, want %q", reason, ReasonConflictFiltered)
	}

	scheduled := result.ScheduledActivities
	for i := 0; i < len(scheduled); i++ {
		for j := i + 1; j < len(scheduled); j++ {
			endI := scheduled[i].ScheduledTime.Add(30 * time.Minute)
			endJ := scheduled[j].ScheduledTime.Add(30 * time.Minute)

			var gap time.Duration
			if !endI.After(scheduled[j].ScheduledTime) {
				gap = scheduled[j].ScheduledTime.Sub(endI)
			} else if !endJ.After(scheduled[i].ScheduledTime) {
				gap = scheduled[i].ScheduledTime.Sub(endJ)
			} else {
				t.Fatalf("activities %d and %d overlap", i, j)
			}
			if gap < 15*time.Minute {
				t.Errorf("activities %d and %d only %s apart", i, j, gap)
			}
		}
	}
}

func TestSchedule_FullyBusyDayReportsNoSlots(t *testing.T) {
	transport := &fakeTransport{
		busyEvents: []models.RemoteEvent{{
			EventID: "allday",
			Start: mustTime("2026-03-02 06:00"),
			End:   mustTime("2026-03-02 07:00"),
		}},
	}
	sched := New(transport, "primary", nil)

	result := sched.Schedule(context.Background(),
		singleDayPlan(runningActivity()),
		mustTime("2026-03-02 00:00"),
		[]models.Window{{StartHour: 6, EndHour: 7}})

	if result.FailedCount != 1 {
		t.Fatalf("failed %d activities, want 1", result.FailedCount)
	}
	if reason := result.FailedActivities[0].Reason; reason != ReasonNoSlots {
		t.Errorf("failure reason = %q, want %q", reason, ReasonNoSlots)
	}
}

func TestSchedule_InsertFailureRecordedPerActivity(t *testing.T) {
	transport := &fakeTransport{insertErr: errors.New("quota exceeded")}
	sched := New(transport, "primary", nil)

	result := sched.Schedule(context.Background(),
		singleDayPlan(runningActivity(), runningActivity()),
		mustTime("2026-03-02 00:00"),
		[]models.Window{{StartHour: 6, EndHour: 9}})

	if result.ScheduledCount != 0 {
		t.Errorf("scheduled %d activities, want 0", result.ScheduledCount)
	}
	if result.FailedCount != 2 {
		t.Fatalf("failed %d activities, want 2", result.FailedCount)
	}
	for _, failed := range result.FailedActivities {
		if failed.Reason != ReasonCreateFailed {
			t.Errorf("failure reason = %q, want %q", failed.Reason, ReasonCreateFailed)
		}
	}
}

func TestSchedule_SeedsOccupancyFromExistingEvents(t *testing.T) {
	transport := &fakeTransport{
		wellnessEvents: []models.RemoteEvent{{
			EventID: "prev_run",
			Summary: "🏃‍♂️ Running",
			Start:   mustTime("2026-03-02 06:00"),
			End:     mustTime("2026-03-02 06:30"),
		}},
	}
	sched := New(transport, "primary", nil)

	result := sched.Schedule(context.Background(),
		singleDayPlan(runningActivity()),
		mustTime("2026-03-02 00:00"),
		[]models.Window{{StartHour: 6, EndHour: 8}})

	if result.ScheduledCount != 1 {
		t.Fatalf("scheduled %d activities, want 1", result.ScheduledCount)
	}
	got := result.ScheduledActivities[0].ScheduledTime
	if got.Before(mustTime("2026-03-02 06:45")) {
		t.Errorf("scheduled at %s, want at least 15 minutes after the existing 06:00-06:30 event", got.Format("15:04"))
	}
}

func TestSchedule_MultiDayPlanPlacesEachDay(t *testing.T) {
	transport := &fakeTransport{}
	sched := New(transport, "primary", nil)

	plan := models.Plan{Days: []models.PlanDay{
		{Day: 1, Activities: []models.Activity{runningActivity()}},
		{Day: 3, Activities: []models.Activity{runningActivity()}},
	}}
	start := mustTime("2026-03-02 00:00")

	result := sched.Schedule(context.Background(), plan, start,
		[]models.Window{{StartHour: 6, EndHour: 9}})

	if result.ScheduledCount != 2 {
		t.Fatalf("scheduled %d activities, want 2", result.ScheduledCount)
	}
	first := result.ScheduledActivities[0].ScheduledTime
	second := result.ScheduledActivities[1].ScheduledTime
	if first.Format("2006-01-02") != "2026-03-02" {
		t.Errorf("day 1 placed on %s, want 2026-03-02", first.Format("2006-01-02"))
	}
	if second.Format("2006-01-02") != "2026-03-04" {
		t.Errorf("day 3 placed on %s, want 2026-03-04", second.Format("2006-01-02"))
	}
}

func TestSchedule_PersistsResultToStore(t *testing.T) {
	transport := &fakeTransport{}
	store := &memStore{}
	sched := New(transport, "primary", store)

	sched.Schedule(context.Background(),
		singleDayPlan(runningActivity()),
		mustTime("2026-03-02 00:00"),
		[]models.Window{{StartHour: 6, EndHour: 9}})

	if len(store.saved) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(store.saved))
	}
	if store.saved[0].ScheduledCount != 1 {
		t.Errorf("persisted scheduled count = %d, want 1", store.saved[0].ScheduledCount)
	}
}

func TestSchedule_CountsMatchSlices(t *testing.T) {
	transport := &fakeTransport{
		busyEvents: []models.RemoteEvent{{
			EventID: "meeting",
			Start: mustTime("2026-03-02 06:00"),
			End:   mustTime("2026-03-02 07:00"),
		}},
	}
	sched := New(transport, "primary", nil)

	result := sched.Schedule(context.Background(),
		singleDayPlan(runningActivity(), runningActivity(), runningActivity()),
		mustTime("2026-03-02 00:00"),
		[]models.Window{{StartHour: 6, EndHour: 8}})

	if result.ScheduledCount != len(result.ScheduledActivities) {
		t.Errorf("ScheduledCount=%d but %d scheduled activities", result.ScheduledCount, len(result.ScheduledActivities))
	}
	if result.FailedCount != len(result.FailedActivities) {
		t.Errorf("FailedCount=%d but %d failed activities", result.FailedCount, len(result.FailedActivities))
	}
	if total := result.ScheduledCount + result.FailedCount; total != 3 {
		t.Errorf("accounted for %d of 3 activities", total)
	}
}

func TestBuildEventBody(t *testing.T) {
	activity := models.Activity{
		Type:            "strength_training",
		DurationMin:     45,
		Intensity:       models.IntensityModerate,
		Details:         "Upper body focus",
		EquipmentNeeded: "dumbbells",
	}
	start := mustTime("2026-03-02 18:00")

	body := BuildEventBody(activity, start)

	if body.Summary != "🏃‍♂️ Strength Training" {
		t.Errorf("summary = %q", body.Summary)
	}
	if !strings.Contains(body.Description, "Upper body focus") {
		t.Errorf("description missing details: %q", body.Description)
	}
	if !strings.Contains(body.Description, "Intensity: moderate") {
		t.Errorf("description missing intensity: %q", body.Description)
	}
	if !strings.Contains(body.Description, "Equipment: dumbbells") {
		t.Errorf("description missing equipment: %q", body.Description)
	}
	if !strings.HasSuffix(body.Description, constants.EventSignature) {
		t.Errorf("description must end with the signature: %q", body.Description)
	}
	if got := body.End.Sub(body.Start); got != 45*time.Minute {
		t.Errorf("event duration = %s, want 45m", got)
	}
	if body.ColorID != constants.EventColorID {
		t.Errorf("color id = %q, want %q", body.ColorID, constants.EventColorID)
	}
}

func TestBuildEventBody_NoEquipmentOmitted(t *testing.T) {
	activity := models.Activity{Type: "meditation", DurationMin: 15, EquipmentNeeded: "none"}
	body := BuildEventBody(activity, mustTime("2026-03-02 19:00"))

	if strings.Contains(body.Description, "Equipment") {
		t.Errorf("equipment 'none' should be omitted: %q", body.Description)
	}
}
