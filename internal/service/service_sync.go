// SPDX-License-Identifier: Apache-2.0
package service

import (
	"context"
	"fmt"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/models"
)

// actionHandler applies one decoded action for a user against the
// transaction-scoped repositories. The returned message is a human-readable
// outcome note surfaced to the client.
type actionHandler func(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (message string, err error)

// syncService is the reconciliation engine: it replays heterogeneous batches
// of offline actions against the system of record.
//
// One batch runs inside one database transaction. Within the transaction,
// each action is dispatched through the handler registry and its failure is
// recorded without aborting the rest of the batch. Only a transaction-level
// fault (begin/commit) fails the batch as a whole, in which case nothing is
// persisted and the client keeps its queue intact.
type syncService struct {
	repos    *store.Repositories
	handlers map[models.ActionType]actionHandler
	logger   *logger.Logger
}

// NewSyncService constructs the reconciliation engine with one registered
// handler per known action type.
func NewSyncService(repos *store.Repositories, logger *logger.Logger) SyncService {
	return &syncService{
		repos: repos,
		handlers: map[models.ActionType]actionHandler{
			models.ActionEntryCreate:    handleEntryCreate,
			models.ActionReactionToggle: handleReactionToggle,
			models.ActionTaskComplete:   handleTaskComplete,
			models.ActionEntryUpdate:    handleEntryUpdate,
			models.ActionEntryDelete:    handleEntryDelete,
		},
		logger: logger,
	}
}

// ProcessBatch applies request.Actions for userID and reports a per-action
// outcome. Actions are applied in submission order; a failing action is
// recorded and the loop continues. The batch either commits as a whole or,
// on a transaction fault, leaves no trace.
func (s *syncService) ProcessBatch(ctx context.Context, userID int64, request models.SyncRequest) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	result := models.SyncResult{
		Successful: make([]models.ActionSuccess, 0, len(request.Actions)),
		Failed:     make([]models.ActionFailure, 0),
		Total:      len(request.Actions),
	}

	if len(request.Actions) == 0 {
		return result, nil
	}

	log.Info().
		Int64("user_id", userID).
		Int("actions", len(request.Actions)).
		Str("device_id", request.DeviceID).
		Msg("processing sync batch")

	tx, err := s.repos.DB().BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to begin batch transaction")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBatchNotApplied, err)
	}
	defer tx.Rollback()

	txRepos := s.repos.WithTx(tx)

	for i, action := range request.Actions {
		// Each action runs under its own savepoint: a failed statement
		// aborts the savepoint, not the batch transaction.
		savepoint := fmt.Sprintf("action_%d", i)
		if _, err = tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("failed to create savepoint")
			return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBatchNotApplied, err)
		}

		message, actionErr := s.dispatch(ctx, txRepos, userID, action)
		if actionErr != nil {
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				log.Err(rbErr).Int64("user_id", userID).Msg("failed to roll back savepoint")
				return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBatchNotApplied, rbErr)
			}
			classification := s.repos.DB().Classify(actionErr)
			log.Warn().
				Int64("user_id", userID).
				Str("action_id", action.ID).
				Str("action_type", string(action.Type)).
				Str("classification", classification.String()).
				Err(actionErr).
				Msg("action failed")
			result.Failed = append(result.Failed, models.ActionFailure{
				ID:    action.ID,
				Type:  action.Type,
				Error: actionErr.Error(),
			})
			continue
		}

		if _, err = tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("failed to release savepoint")
			return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBatchNotApplied, err)
		}
		result.Successful = append(result.Successful, models.ActionSuccess{
			ID:      action.ID,
			Type:    action.Type,
			Message: message,
		})
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("failed to commit batch transaction")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBatchNotApplied, err)
	}

	log.Info().
		Int64("user_id", userID).
		Int("succeeded", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Msg("sync batch committed")

	return result, nil
}

// dispatch routes one action to its registered handler. A panicking handler
// is converted into a per-action failure so a single poisoned payload cannot
// take down the batch.
func (s *syncService) dispatch(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (message string, err error) {
	handler, ok := s.handlers[action.Type]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, action.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Int64("user_id", userID).
				Str("action_id", action.ID).
				Str("action_type", string(action.Type)).
				Any("panic", r).
				Msg("recovered panicking action handler")
			err = fmt.Errorf("%w: %v", ErrActionPanicked, r)
		}
	}()

	return handler(ctx, repos, userID, action)
}
