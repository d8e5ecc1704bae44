package schedule

import (
	"sort"
	"strings"

	"github.com/TimHopkin/wellsched/internal/models"
)

// ScoreSlot rates a candidate slot for an activity from the slot's start
// hour and the activity's type, category, and best-time preference. Higher
// is better; scores can go negative for fringe hours.
func ScoreSlot(activity models.Activity, slot models.FreeSlot) int {
	activityType := strings.ToLower(activity.Type)
	category := strings.ToLower(activity.Category)
	bestTime := strings.ToLower(activity.BestTime)

	hour := slot.Start.Hour()
	score := 0

	switch {
	case hour >= 6 && hour <= 10:
		if activityType == "running" || activityType == "cycling" || activityType == "cardio" || category == "cardio" {
			score += 10
		}
		if bestTime == "morning" || bestTime == "early morning" {
			score += 15
		}
	case hour >= 12 && hour <= 17:
		if activityType == "strength_training" || activityType == "yoga" || category == "strength" || category == "flexibility" {
			score += 8
		}
		if bestTime == "afternoon" || bestTime == "midday" {
			score += 15
		}
	case hour >= 18 && hour <= 21:
		if activityType == "yoga" || activityType == "meditation" || activityType == "stretching" || category == "wellbeing" || category == "flexibility" {
			score += 12
		}
		if bestTime == "evening" || bestTime == "night" {
			score += 15
		}
	}

	// Soft penalty for very early or very late starts, not an exclusion.
	if hour < 6 || hour > 22 {
		score -= 10
	}

	return score
}

// ChooseBestSlot returns the highest-scoring candidate, ties broken by
// input order, or nil when there are no candidates.
func ChooseBestSlot(activity models.Activity, candidates []models.FreeSlot) *models.FreeSlot {
	if len(candidates) == 0 {
		return nil
	}

	type scoredSlot struct {
		score int
		slot  models.FreeSlot
	}

	scored := make([]scoredSlot, len(candidates))
	for i, slot := range candidates {
		scored[i] = scoredSlot{score: ScoreSlot(activity, slot), slot: slot}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	best := scored[0].slot
	return &best
}
