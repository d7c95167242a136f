package service

import (
	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/config"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/store"
)

// ClientServices bundles the client-side service layer.
type ClientServices struct {
	SyncService         ClientSyncService
	ConnectivityMonitor ConnectivityMonitor
}

// NewClientServices wires the queue service and the connectivity monitor;
// online transitions feed straight into the debounced flush.
func NewClientServices(queue store.ActionQueueStore, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, log *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(queue, serverAdapter, cfg.SyncDebounce, log)
	monitor := NewConnectivityMonitor(serverAdapter, syncSvc.OnConnectivityChange, log)

	return &ClientServices{
		SyncService:         syncSvc,
		ConnectivityMonitor: monitor,
	}
}
