package models

import "time"

// BusyInterval is an externally sourced occupied time range, half-open
// [Start, End).
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// Window is a preferred (start_hour, end_hour) range within which
// activities should be placed. Hours are 0-24 local.
type Window struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// FreeSlot is a candidate placement of the requested duration. Slots are
// ephemeral, produced and consumed within one scheduling pass.
type FreeSlot struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_minutes"`
	Date        string    `json:"date"` // YYYY-MM-DD
}

type OccupiedSource string

const (
	OccupiedPreExisting    OccupiedSource = "pre_existing"
	OccupiedNewlyScheduled OccupiedSource = "newly_scheduled"
)

// OccupiedSlot is a committed interval tracked within one scheduling run
// to prevent double-booking.
type OccupiedSlot struct {
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Source OccupiedSource `json:"source"`
}

type ScheduledActivity struct {
	Activity      Activity  `json:"activity"`
	ScheduledTime time.Time `json:"scheduled_time"`
	EventID       string    `json:"event_id"`
	Day           int       `json:"day"`
}

type FailedActivity struct {
	Activity Activity `json:"activity"`
	Reason   string   `json:"reason"`
	Day      int      `json:"day"`
}

// ScheduleResult is the durable output of one scheduling run.
type ScheduleResult struct {
	ScheduledCount      int                 `json:"scheduled_count"`
	FailedCount         int                 `json:"failed_count"`
	ScheduledActivities []ScheduledActivity `json:"scheduled_activities"`
	FailedActivities    []FailedActivity    `json:"failed_activities"`
	StartDate           time.Time           `json:"start_date"`
}
