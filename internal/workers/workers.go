package workers

import (
	"github.com/daybook-sync/daybook/internal/config"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewClientWorkers assembles the background jobs the client runs while the
// command loop is active: a connectivity probe and a periodic queue flush.
func NewClientWorkers(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newProbeWorker(services.ConnectivityMonitor, cfg.ProbeInterval, logger),
			newFlushWorker(services.SyncService, cfg.FlushInterval, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop halts workers in reverse start order and waits for each to exit.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
