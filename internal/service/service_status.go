package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/models"
)

// statusService builds the consistency snapshot served by the status
// endpoint: per-kind counters plus the newest change time across all of the
// user's data.
type statusService struct {
	repos  *store.Repositories
	logger *logger.Logger
}

// NewStatusService constructs a [StatusService] over the shared repositories.
func NewStatusService(repos *store.Repositories, logger *logger.Logger) StatusService {
	return &statusService{repos: repos, logger: logger}
}

func (s *statusService) GetSyncStatus(ctx context.Context, userID int64) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	var status models.SyncStatus
	var err error

	if status.EntryCount, err = s.repos.Entries.CountEntries(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to count entries")
		return models.SyncStatus{}, fmt.Errorf("counting entries: %w", err)
	}
	if status.ReactionCount, err = s.repos.Reactions.CountReactions(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to count reactions")
		return models.SyncStatus{}, fmt.Errorf("counting reactions: %w", err)
	}
	if status.CompletedTaskCount, err = s.repos.Tasks.CountCompleted(ctx, userID); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to count completed tasks")
		return models.SyncStatus{}, fmt.Errorf("counting completed tasks: %w", err)
	}

	entriesAt, err := s.repos.Entries.LastUpdatedAt(ctx, userID)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("entry watermark: %w", err)
	}
	reactionsAt, err := s.repos.Reactions.LastReactionAt(ctx, userID)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("reaction watermark: %w", err)
	}
	tasksAt, err := s.repos.Tasks.LastCompletionAt(ctx, userID)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("task watermark: %w", err)
	}

	status.LastUpdatedAt = latestTime(entriesAt, reactionsAt, tasksAt)

	return status, nil
}

// latestTime returns the newest of the given times, nil when all are nil.
func latestTime(times ...*time.Time) *time.Time {
	var latest *time.Time
	for _, t := range times {
		if t == nil {
			continue
		}
		if latest == nil || t.After(*latest) {
			latest = t
		}
	}
	return latest
}
