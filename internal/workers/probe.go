// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
)

// probeWorker pings the server on a fixed interval so the connectivity
// monitor can observe online/offline transitions even while the user is
// idle. State change reactions live in the monitor, not here.
type probeWorker struct {
	monitor  service.ConnectivityMonitor
	interval time.Duration
	logger   *logger.Logger

	done    chan struct{}
	stopped chan struct{}
}

func newProbeWorker(monitor service.ConnectivityMonitor, interval time.Duration, logger *logger.Logger) *probeWorker {
	return &probeWorker{
		monitor:  monitor,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (w *probeWorker) Run() {
	go func() {
		defer close(w.stopped)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		// probe immediately so the session does not start with a stale
		// offline assumption
		w.probe()

		for {
			select {
			case <-ticker.C:
				w.probe()
			case <-w.done:
				return
			}
		}
	}()
}

func (w *probeWorker) Stop() {
	close(w.done)
	<-w.stopped
}

func (w *probeWorker) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	online := w.monitor.Probe(ctx)
	w.logger.Debug().Str("func", "probeWorker.probe").Bool("online", online).Msg("connectivity probe finished")
}
