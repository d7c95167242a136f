// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
)

// flushWorker periodically retries delivery of the pending queue. It is the
// safety net behind the reconnect-triggered flush: if a sync failed or a
// connectivity transition was missed, the queue still drains eventually.
type flushWorker struct {
	syncService service.ClientSyncService
	interval    time.Duration
	logger      *logger.Logger

	done    chan struct{}
	stopped chan struct{}
}

func newFlushWorker(syncService service.ClientSyncService, interval time.Duration, logger *logger.Logger) *flushWorker {
	return &flushWorker{
		syncService: syncService,
		interval:    interval,
		logger:      logger,
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

func (w *flushWorker) Run() {
	go func() {
		defer close(w.stopped)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.flush()
			case <-w.done:
				return
			}
		}
	}()
}

func (w *flushWorker) Stop() {
	close(w.done)
	<-w.stopped
}

func (w *flushWorker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	result, err := w.syncService.SyncPendingActions(ctx)
	switch {
	case errors.Is(err, service.ErrSyncInFlight):
		// another flush already holds the queue
		return
	case err != nil:
		w.logger.Debug().Str("func", "flushWorker.flush").Err(err).Msg("periodic flush failed, queue kept")
		return
	}

	if result.Total > 0 {
		w.logger.Info().
			Str("func", "flushWorker.flush").
			Int("total", result.Total).
			Int("failed", len(result.Failed)).
			Msg("periodic flush finished")
	}
}
