// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Entry is a journal entry, the primary content resource of the system.
// The server is the sole owner of canonical entry state; clients only record
// intents against it.
type Entry struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// UserID is the owning account. Updates and deletes are rejected for
	// identities other than the owner.
	UserID int64 `json:"-"`

	// Title is the entry headline.
	Title string `json:"title"`

	// Body is the entry text.
	Body string `json:"body"`

	// DedupKey is the client-generated creation token, empty when the entry
	// was created online without one. Unique per user when set.
	DedupKey string `json:"dedup_key,omitempty"`

	// Deleted marks a soft-deleted entry. Soft-deleted entries are excluded
	// from counts and cannot be updated.
	Deleted bool `json:"deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Entry.
func (e Entry) TableName() string {
	return "entries"
}
