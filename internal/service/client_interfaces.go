package service

import (
	"context"
	"time"

	"github.com/daybook-sync/daybook/models"
)

// ClientSyncService owns the durable action queue and the dispatch protocol:
// actions are recorded locally first and flushed to the server when
// connectivity allows.
type ClientSyncService interface {
	// Enqueue records one action at the tail of the durable queue. The
	// payload is serialized immediately so a crash never loses intent.
	Enqueue(ctx context.Context, actionType models.ActionType, payload any) (models.OfflineAction, error)

	// PendingActions returns the queue in submission order.
	PendingActions(ctx context.Context) ([]models.OfflineAction, error)

	// SyncPendingActions submits the whole queue as one batch and shrinks
	// the queue to the actions the server reported failed. At most one
	// flush runs at a time; a concurrent call returns ErrSyncInFlight.
	// A transport failure leaves the queue untouched.
	SyncPendingActions(ctx context.Context) (models.SyncResult, error)

	// OnConnectivityChange reacts to an offline/online transition. Going
	// online schedules a debounced flush; going offline cancels a pending
	// one.
	OnConnectivityChange(online bool)

	// LastSyncAt returns the watermark of the last successful sync.
	LastSyncAt(ctx context.Context) (*time.Time, error)

	// ClearQueue drops every pending action and the watermark.
	ClearQueue(ctx context.Context) error
}

// ConnectivityMonitor tracks server reachability. Probe is driven by a
// background worker; IsOnline is safe from any goroutine.
type ConnectivityMonitor interface {
	// Probe checks reachability once and fires the transition callback
	// when the state flips. Returns the fresh state.
	Probe(ctx context.Context) bool

	// IsOnline returns the last observed state.
	IsOnline() bool
}
