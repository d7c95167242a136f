// SPDX-License-Identifier: Apache-2.0
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/internal/utils"
	"github.com/daybook-sync/daybook/internal/validators"
	"github.com/daybook-sync/daybook/models"
)

// clientSyncService implements [ClientSyncService] over the durable queue
// and the server adapter.
//
// Concurrency model: the syncing flag makes the flush single-flight, so the
// debounced connectivity flush, the periodic retry worker, and a manual sync
// command can all fire without double-submitting the queue.
type clientSyncService struct {
	queue     store.ActionQueueStore
	adapter   adapter.ServerAdapter
	validator validators.Validator
	ids       *utils.UUIDGenerator

	debounce time.Duration

	mu         sync.Mutex
	syncing    bool
	online     bool
	flushTimer *time.Timer

	logger *logger.Logger
}

// NewClientSyncService wires the queue service. debounce is the delay
// between an online transition and the flush it schedules.
func NewClientSyncService(queue store.ActionQueueStore, serverAdapter adapter.ServerAdapter, debounce time.Duration, log *logger.Logger) ClientSyncService {
	return &clientSyncService{
		queue:     queue,
		adapter:   serverAdapter,
		validator: validators.NewActionValidator(),
		ids:       utils.NewUUIDGenerator(),
		debounce:  debounce,
		logger:    log,
	}
}

func (s *clientSyncService) Enqueue(ctx context.Context, actionType models.ActionType, payload any) (models.OfflineAction, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return models.OfflineAction{}, fmt.Errorf("encode action payload: %w", err)
	}

	action := models.OfflineAction{
		ID:        s.ids.Generate(),
		Type:      actionType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	// reject the action before it reaches the durable queue: a bad record
	// would otherwise be retried against the server forever
	if err = s.validator.Validate(ctx, action); err != nil {
		if errors.Is(err, validators.ErrInvalidActionType) {
			return models.OfflineAction{}, fmt.Errorf("%w: %q", ErrUnknownActionType, actionType)
		}
		return models.OfflineAction{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err = s.queue.Append(ctx, action); err != nil {
		return models.OfflineAction{}, fmt.Errorf("append action to queue: %w", err)
	}

	// opportunistic flush: when the server is reachable the new action
	// should not wait for the next timer
	s.mu.Lock()
	online := s.online
	s.mu.Unlock()
	if online {
		go func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if _, flushErr := s.SyncPendingActions(flushCtx); flushErr != nil && !errors.Is(flushErr, ErrSyncInFlight) {
				s.logger.Debug().Err(flushErr).Msg("post-enqueue flush failed")
			}
		}()
	}

	s.logger.Debug().Str("type", string(actionType)).Msg("action queued")

	return action, nil
}

func (s *clientSyncService) PendingActions(ctx context.Context) ([]models.OfflineAction, error) {
	return s.queue.Load(ctx)
}

func (s *clientSyncService) SyncPendingActions(ctx context.Context) (models.SyncResult, error) {
	s.mu.Lock()
	if s.syncing {
		s.mu.Unlock()
		return models.SyncResult{}, ErrSyncInFlight
	}
	if !s.online {
		s.mu.Unlock()
		s.logger.Debug().Msg("offline, sync skipped")
		return models.SyncResult{}, nil
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.mu.Unlock()
	}()

	actions, err := s.queue.Load(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("load queue: %w", err)
	}
	if len(actions) == 0 {
		return models.SyncResult{}, nil
	}

	lastSyncAt, err := s.queue.LastSyncAt(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("read sync watermark: %w", err)
	}
	deviceID, err := s.queue.DeviceID(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("read device id: %w", err)
	}

	s.logger.Info().Int("actions", len(actions)).Msg("submitting pending actions")

	result, err := s.adapter.SubmitBatch(ctx, models.SyncRequest{
		Actions:    actions,
		LastSyncAt: lastSyncAt,
		DeviceID:   deviceID,
	})
	if err != nil {
		// Transport-level failure: nothing was applied, everything stays
		// queued for a later round.
		s.logger.Warn().Err(err).Msg("batch submission failed, queue kept")
		return models.SyncResult{}, fmt.Errorf("submit batch: %w", err)
	}

	// The new queue is exactly the actions the server reported failed, in
	// their original order.
	succeeded := result.SucceededIDs()
	remaining := make([]models.OfflineAction, 0, len(result.Failed))
	for _, action := range actions {
		if _, ok := succeeded[action.ID]; !ok {
			remaining = append(remaining, action)
		}
	}

	if err = s.queue.Replace(ctx, remaining); err != nil {
		// The server applied the batch but the local shrink failed; the
		// queue keeps already-applied actions, which replay as no-ops.
		return result, fmt.Errorf("shrink queue: %w", err)
	}
	if err = s.queue.SetLastSyncAt(ctx, time.Now().UTC()); err != nil {
		return result, fmt.Errorf("store sync watermark: %w", err)
	}

	s.logger.Info().
		Int("succeeded", len(result.Successful)).
		Int("failed", len(result.Failed)).
		Int("remaining", len(remaining)).
		Msg("sync round finished")

	return result, nil
}

func (s *clientSyncService) OnConnectivityChange(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.online = online

	if s.flushTimer != nil {
		s.flushTimer.Stop()
		s.flushTimer = nil
	}
	if !online {
		s.logger.Info().Msg("went offline, pending flush cancelled")
		return
	}

	s.logger.Info().Dur("debounce", s.debounce).Msg("back online, flush scheduled")
	s.flushTimer = time.AfterFunc(s.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := s.SyncPendingActions(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("debounced flush failed")
		}
	})
}

func (s *clientSyncService) LastSyncAt(ctx context.Context) (*time.Time, error) {
	return s.queue.LastSyncAt(ctx)
}

func (s *clientSyncService) ClearQueue(ctx context.Context) error {
	return s.queue.Clear(ctx)
}
