package models

import "time"

// SyncRequest is the batch submitted by a client in one synchronization
// round. It exists only for the duration of a single network call; the server
// never retains it beyond the batch transaction.
type SyncRequest struct {
	// Actions is the full pending queue of the client, in submission order.
	Actions []OfflineAction `json:"actions"`

	// LastSyncAt is the watermark of the client's last successful sync.
	// Informational; the server only echoes it into diagnostics.
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`

	// DeviceID is the per-install identifier of the submitting device,
	// used for server-side logging only.
	DeviceID string `json:"deviceId,omitempty"`
}

// ActionSuccess reports one action that was applied to the system of record.
type ActionSuccess struct {
	ID      string     `json:"id"`
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
}

// ActionFailure reports one action the server could not apply. The action
// stays in the client queue and is retried on a future round.
type ActionFailure struct {
	ID    string     `json:"id"`
	Type  ActionType `json:"type"`
	Error string     `json:"error"`
}

// SyncResult is the per-action outcome report for one batch.
//
// Invariant: len(Successful)+len(Failed) == Total, and every submitted action
// id appears in exactly one of the two lists.
type SyncResult struct {
	Successful []ActionSuccess `json:"successful"`
	Failed     []ActionFailure `json:"failed"`
	Total      int             `json:"total"`
}

// SucceededIDs returns the set of action ids reported successful, keyed for
// O(1) membership checks when the client shrinks its queue.
func (r SyncResult) SucceededIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.Successful))
	for _, s := range r.Successful {
		ids[s.ID] = struct{}{}
	}
	return ids
}

// SyncStatus is the cheap liveness/consistency view returned by the status
// endpoint. It is not part of the reconciliation protocol.
type SyncStatus struct {
	// LastUpdatedAt is the most recent change time across the user's data,
	// nil when the user has no data yet.
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`

	// EntryCount is the number of live (not soft-deleted) entries.
	EntryCount int64 `json:"entryCount"`

	// ReactionCount is the number of recorded reactions.
	ReactionCount int64 `json:"reactionCount"`

	// CompletedTaskCount is the number of tasks currently marked complete.
	CompletedTaskCount int64 `json:"completedTaskCount"`
}
