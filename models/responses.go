package models

import "time"

// SyncBatchResponse is the HTTP body returned by the batch submission
// endpoint on success.
type SyncBatchResponse struct {
	// Success reports whether every action in the batch applied. Partial
	// failure still answers HTTP 200 with Success false.
	Success bool `json:"success"`

	// Results is the per-action outcome report for the submitted batch.
	Results SyncResult `json:"results"`

	// SyncedAt is the server timestamp of the round, recorded by the client
	// as its new watermark.
	SyncedAt time.Time `json:"syncedAt"`
}
