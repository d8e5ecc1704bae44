package models

import "time"

// RemoteEvent is an event as it exists on the remote calendar. The system
// reads, creates, and deletes these, never updates in place.
type RemoteEvent struct {
	EventID     string    `json:"event_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// DurationMinutes returns the event length in minutes.
func (e RemoteEvent) DurationMinutes() float64 {
	return e.End.Sub(e.Start).Minutes()
}

// DuplicatePair is two remote events judged similar enough to represent the
// same logical activity, with their 0-100 similarity score.
type DuplicatePair struct {
	Event1          RemoteEvent `json:"event1"`
	Event2          RemoteEvent `json:"event2"`
	SimilarityScore float64     `json:"similarity_score"`
	DetectedAt      time.Time   `json:"detected_at"`
}

// RecommendedAction describes how a duplicate group should be resolved.
type RecommendedAction struct {
	Action         string   `json:"action"`
	KeepEventID    string   `json:"keep_event_id"`
	DeleteEventIDs []string `json:"delete_event_ids"`
	Reason         string   `json:"reason"`
	Confidence     string   `json:"confidence"`
}

// DuplicateGroup is a cluster of mutually similar events. Events are listed
// in first-seen order.
type DuplicateGroup struct {
	GroupID           string            `json:"group_id"`
	Events            []RemoteEvent     `json:"events"`
	SimilarityScore   float64           `json:"similarity_score"`
	RecommendedAction RecommendedAction `json:"recommended_action"`
	CreatedAt         time.Time         `json:"created_at"`
}

type DeletedEvent struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"` // "deleted" or "would_delete"
	Reason  string `json:"reason,omitempty"`
}

type FailedDeletion struct {
	EventID    string `json:"event_id,omitempty"`
	GroupID    string `json:"group_id,omitempty"`
	Reason     string `json:"reason"`
	EventCount int    `json:"event_count,omitempty"`
}

// ResolutionResult records the outcome of one duplicate-resolution run.
type ResolutionResult struct {
	ID              string           `json:"id"`
	Timestamp       time.Time        `json:"timestamp"`
	TotalGroups     int              `json:"total_groups"`
	ProcessedGroups int              `json:"processed_groups"`
	DeletedEvents   []DeletedEvent   `json:"deleted_events"`
	KeptEvents      []string         `json:"kept_events"`
	FailedDeletions []FailedDeletion `json:"failed_deletions"`
	DryRun          bool             `json:"dry_run"`
}

// BatchDeleteResult records the outcome of one batch deletion.
type BatchDeleteResult struct {
	ID                  string           `json:"id"`
	Timestamp           time.Time        `json:"timestamp"`
	RequestedDeletions  int              `json:"requested_deletions"`
	SuccessfulDeletions int              `json:"successful_deletions"`
	FailedDeletions     []FailedDeletion `json:"failed_deletions"`
	DeletedEventIDs     []string         `json:"deleted_event_ids"`
	DryRun              bool             `json:"dry_run"`
}
