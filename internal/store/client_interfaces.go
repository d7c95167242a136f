package store

import (
	"context"
	"time"

	"github.com/daybook-sync/daybook/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/action_queue_mock.go -package=mock

// ActionQueueStore is the durable, ordered client-side store of pending
// offline actions. Its content is exactly the set of actions not yet
// confirmed by the server, in submission order.
//
// The store assumes a single writer (one client process per queue file);
// no cross-process locking is provided.
type ActionQueueStore interface {
	// Append adds one action to the tail of the queue.
	Append(ctx context.Context, action models.OfflineAction) error

	// Replace atomically overwrites the whole queue with actions, keeping
	// their order. Used after a sync round to retain only still-failing
	// actions.
	Replace(ctx context.Context, actions []models.OfflineAction) error

	// Load returns the persisted queue in submission order. Corrupted
	// stored data is discarded rather than surfaced: a broken row is
	// dropped, a broken table degrades to an empty queue.
	Load(ctx context.Context) ([]models.OfflineAction, error)

	// Clear empties the queue and drops the last-sync watermark.
	Clear(ctx context.Context) error

	// LastSyncAt returns the watermark of the last successful sync, nil
	// when no sync has succeeded yet.
	LastSyncAt(ctx context.Context) (*time.Time, error)

	// SetLastSyncAt records a new watermark.
	SetLastSyncAt(ctx context.Context, at time.Time) error

	// DeviceID returns the per-install identifier, generating and
	// persisting one on first call.
	DeviceID(ctx context.Context) (string, error)

	// Close releases the underlying database handle.
	Close() error
}
