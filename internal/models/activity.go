package models

import "strings"

type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// Activity is one entry of a wellness plan. The plan generator owns these;
// the scheduler only reads them.
type Activity struct {
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	DurationMin     int       `json:"duration_minutes"`
	Intensity       Intensity `json:"intensity,omitempty"`
	BestTime        string    `json:"best_time,omitempty"`
	Details         string    `json:"details,omitempty"`
	EquipmentNeeded string    `json:"equipment_needed,omitempty"`
}

// DisplayName renders the activity type for humans ("strength_training" ->
// "Strength Training").
func (a Activity) DisplayName() string {
	name := strings.ReplaceAll(a.Type, "_", " ")
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Activity"
	}
	return strings.Join(words, " ")
}

type PlanDay struct {
	Day        int        `json:"day"` // 1-based
	Activities []Activity `json:"activities"`
}

type Plan struct {
	Days []PlanDay `json:"days"`
}
