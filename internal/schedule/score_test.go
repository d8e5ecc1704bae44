package schedule

import (
	"testing"
	"time"

	"github.com/TimHopkin/wellsched/internal/models"
)

func slotAtHour(hour int) models.FreeSlot {
	start := mustTime("2026-03-02 00:00").Add(time.Duration(hour) * time.Hour)
	return models.FreeSlot{
		Start:       start,
		End:         start.Add(30 * time.Minute),
		DurationMin: 30,
		Date:        "2026-03-02",
	}
}

func TestChooseBestSlot_EveningPreferenceBeatsMorning(t *testing.T) {
	activity := models.Activity{Type: "yoga", Category: "wellbeing", BestTime: "evening", DurationMin: 30}
	candidates := []models.FreeSlot{slotAtHour(19), slotAtHour(20), slotAtHour(8)}

	best := ChooseBestSlot(activity, candidates)
	if best == nil {
		t.Fatal("expected a slot")
	}

	// Hours 19 and 20 score 12+15=27; hour 8 scores 0. Ties break by
	// input order, so 19 wins.
	if best.Start.Hour() != 19 {
		t.Errorf("best slot at hour %d, want 19", best.Start.Hour())
	}
}

func TestChooseBestSlot_CardioPrefersMorning(t *testing.T) {
	activity := models.Activity{Type: "running", Category: "cardio", BestTime: "morning", DurationMin: 30}
	candidates := []models.FreeSlot{slotAtHour(14), slotAtHour(7)}

	best := ChooseBestSlot(activity, candidates)
	if best == nil || best.Start.Hour() != 7 {
		t.Fatalf("expected the 07:00 slot, got %+v", best)
	}
}

func TestScoreSlot_FringeHoursPenalized(t *testing.T) {
	activity := models.Activity{Type: "stretching", DurationMin: 30}

	if got := ScoreSlot(activity, slotAtHour(5)); got != -10 {
		t.Errorf("score at hour 5 = %d, want -10", got)
	}
	if got := ScoreSlot(activity, slotAtHour(23)); got != -10 {
		t.Errorf("score at hour 23 = %d, want -10", got)
	}
}

func TestChooseBestSlot_AllTiedReturnsFirst(t *testing.T) {
	// An activity no scoring rule matches: every slot stays at 0.
	activity := models.Activity{Type: "swimming", DurationMin: 30}
	candidates := []models.FreeSlot{slotAtHour(11), slotAtHour(7), slotAtHour(14)}

	best := ChooseBestSlot(activity, candidates)
	if best == nil || best.Start.Hour() != 11 {
		t.Fatalf("expected the first candidate on a full tie, got %+v", best)
	}
}

func TestChooseBestSlot_EmptyCandidates(t *testing.T) {
	if best := ChooseBestSlot(models.Activity{Type: "yoga"}, nil); best != nil {
		t.Errorf("expected nil for empty candidates, got %+v", best)
	}
}

func TestScoreSlot_AfternoonStrength(t *testing.T) {
	activity := models.Activity{Type: "strength_training", BestTime: "afternoon"}

	if got := ScoreSlot(activity, slotAtHour(15)); got != 23 {
		t.Errorf("afternoon strength score = %d, want 23", got)
	}
	if got := ScoreSlot(activity, slotAtHour(8)); got != 0 {
		t.Errorf("morning strength score = %d, want 0", got)
	}
}
