package duplicates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TimHopkin/wellsched/internal/calendar"
	"github.com/TimHopkin/wellsched/internal/constants"
	"github.com/TimHopkin/wellsched/internal/logger"
	"github.com/TimHopkin/wellsched/internal/models"
	"github.com/TimHopkin/wellsched/internal/storage"
)

type Strategy string

const (
	StrategyRecommended Strategy = "recommended"
	StrategyKeepFirst   Strategy = "keep_first"
	StrategyKeepLast    Strategy = "keep_last"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRecommended, StrategyKeepFirst, StrategyKeepLast:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown resolution strategy %q", s)
}

// Resolver deletes unwanted duplicates, per group or in id batches. Every
// run is appended to the bounded audit log.
type Resolver struct {
	transport  calendar.Transport
	calendarID string
	store      storage.Provider
}

// NewResolver builds a Resolver. store may be nil, in which case runs are
// not audited.
func NewResolver(transport calendar.Transport, calendarID string, store storage.Provider) *Resolver {
	return &Resolver{
		transport:  transport,
		calendarID: calendarID,
		store:      store,
	}
}

// Resolve processes duplicate groups with the given strategy. Without a
// live calendar session the run is forced into dry-run. Deletion failures
// are collected, never fatal to the batch.
func (r *Resolver) Resolve(ctx context.Context, groups []models.DuplicateGroup, strategy Strategy, dryRun bool) models.ResolutionResult {
	if r.transport.Capability() == calendar.CapabilityDemo && !dryRun {
		logger.Warn("No live calendar session, forcing dry run")
		dryRun = true
	}

	result := models.ResolutionResult{
		ID:              uuid.NewString(),
		Timestamp:       time.Now(),
		TotalGroups:     len(groups),
		DeletedEvents:   []models.DeletedEvent{},
		KeptEvents:      []string{},
		FailedDeletions: []models.FailedDeletion{},
		DryRun:          dryRun,
	}

	for _, group := range groups {
		keepID, deleteIDs := resolutionTargets(group, strategy)

		for _, id := range deleteIDs {
			if dryRun {
				result.DeletedEvents = append(result.DeletedEvents, models.DeletedEvent{
					EventID: id,
					Status:  "would_delete",
					Reason:  group.RecommendedAction.Reason,
				})
				continue
			}

			if err := r.transport.DeleteEvent(ctx, r.calendarID, id); err != nil {
				logger.Warn("Failed to delete duplicate event", "event_id", id, "error", err)
				result.FailedDeletions = append(result.FailedDeletions, models.FailedDeletion{
					EventID: id,
					GroupID: group.GroupID,
					Reason:  "api deletion failed",
				})
				continue
			}

			result.DeletedEvents = append(result.DeletedEvents, models.DeletedEvent{
				EventID: id,
				Status:  "deleted",
				Reason:  group.RecommendedAction.Reason,
			})
		}

		result.KeptEvents = append(result.KeptEvents, keepID)
		result.ProcessedGroups++
	}

	r.audit(result)
	return result
}

// BatchDelete removes events by id. Batches above the safety cap are
// rejected outright with zero deletions performed.
func (r *Resolver) BatchDelete(ctx context.Context, eventIDs []string, dryRun bool) models.BatchDeleteResult {
	if r.transport.Capability() == calendar.CapabilityDemo && !dryRun {
		logger.Warn("No live calendar session, forcing dry run")
		dryRun = true
	}

	result := models.BatchDeleteResult{
		ID:                 uuid.NewString(),
		Timestamp:          time.Now(),
		RequestedDeletions: len(eventIDs),
		FailedDeletions:    []models.FailedDeletion{},
		DeletedEventIDs:    []string{},
		DryRun:             dryRun,
	}

	if len(eventIDs) > constants.MaxBatchDelete {
		logger.Warn("Batch deletion rejected", "requested", len(eventIDs), "max", constants.MaxBatchDelete)
		result.FailedDeletions = append(result.FailedDeletions, models.FailedDeletion{
			Reason:     fmt.Sprintf("safety limit exceeded (max %d events)", constants.MaxBatchDelete),
			EventCount: len(eventIDs),
		})
		r.audit(result)
		return result
	}

	for _, id := range eventIDs {
		if dryRun {
			result.DeletedEventIDs = append(result.DeletedEventIDs, id)
			continue
		}

		if err := r.transport.DeleteEvent(ctx, r.calendarID, id); err != nil {
			logger.Warn("Failed to delete event", "event_id", id, "error", err)
			result.FailedDeletions = append(result.FailedDeletions, models.FailedDeletion{
				EventID: id,
				Reason:  "api deletion failed",
			})
			continue
		}

		result.SuccessfulDeletions++
		result.DeletedEventIDs = append(result.DeletedEventIDs, id)
	}

	r.audit(result)
	return result
}

// resolutionTargets picks keep/delete ids for a group under a strategy.
// Positional strategies ignore completeness.
func resolutionTargets(group models.DuplicateGroup, strategy Strategy) (string, []string) {
	events := group.Events

	switch strategy {
	case StrategyKeepFirst:
		var deleteIDs []string
		for _, e := range events[1:] {
			deleteIDs = append(deleteIDs, e.EventID)
		}
		return events[0].EventID, deleteIDs
	case StrategyKeepLast:
		var deleteIDs []string
		for _, e := range events[:len(events)-1] {
			deleteIDs = append(deleteIDs, e.EventID)
		}
		return events[len(events)-1].EventID, deleteIDs
	default:
		return group.RecommendedAction.KeepEventID, group.RecommendedAction.DeleteEventIDs
	}
}

func (r *Resolver) audit(entry any) {
	if r.store == nil {
		return
	}
	if err := r.store.AppendResolution(entry); err != nil {
		logger.Warn("Could not record resolution audit entry", "error", err)
	}
}
