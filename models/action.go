// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionType identifies the kind of offline action recorded by the client.
// The set is closed: the reconciliation engine registers exactly one handler
// per value and reports anything else as an "unknown action type" failure.
type ActionType string

const (
	// ActionEntryCreate creates a new journal entry.
	ActionEntryCreate ActionType = "entry-create"

	// ActionReactionToggle settles a reaction on an entry to a desired
	// boolean end-state.
	ActionReactionToggle ActionType = "reaction-toggle"

	// ActionTaskComplete upserts a daily-task completion record.
	ActionTaskComplete ActionType = "task-complete"

	// ActionEntryUpdate applies a partial update to an owned entry.
	ActionEntryUpdate ActionType = "entry-update"

	// ActionEntryDelete soft-deletes an entry.
	ActionEntryDelete ActionType = "entry-delete"
)

// KnownActionTypes lists every action type the engine understands, in a
// stable order. Used for registry exhaustiveness checks and validation.
var KnownActionTypes = []ActionType{
	ActionEntryCreate,
	ActionReactionToggle,
	ActionTaskComplete,
	ActionEntryUpdate,
	ActionEntryDelete,
}

// Valid reports whether t is one of the closed set of action types.
func (t ActionType) Valid() bool {
	for _, known := range KnownActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// OfflineAction is a client-originated intent awaiting server application.
//
// ID is generated client-side and stays stable across retries; it is used to
// match per-action outcomes back to queue entries, not for server-side
// deduplication. Timestamp records when the user performed the action and is
// informational only; the server never uses it for ordering.
type OfflineAction struct {
	ID        string          `json:"id"`
	Type      ActionType      `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// EntryCreateData is the payload of [ActionEntryCreate].
type EntryCreateData struct {
	// Title is the entry headline. Required.
	Title string `json:"title"`

	// Body is the optional entry text.
	Body string `json:"body,omitempty"`

	// DedupKey is an optional client-generated token. When present, a second
	// submission with the same (user, DedupKey) pair is collapsed into a
	// no-op success instead of creating a duplicate entry.
	DedupKey string `json:"dedupKey,omitempty"`

	// CreatedAt is the client-side creation time. When zero the server
	// stamps its own time.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// ReactionToggleData is the payload of [ActionReactionToggle].
type ReactionToggleData struct {
	// TargetID identifies the entry the reaction belongs to.
	TargetID int64 `json:"targetId"`

	// Desired is the end-state the client wants: true means "reaction
	// present", false means "reaction absent".
	Desired bool `json:"desired"`
}

// TaskCompleteData is the payload of [ActionTaskComplete].
type TaskCompleteData struct {
	// TaskID identifies the daily task.
	TaskID string `json:"taskId"`

	// Completed is the desired completion end-state.
	Completed bool `json:"completed"`
}

// EntryUpdateData is the payload of [ActionEntryUpdate]. Nil fields are left
// untouched; non-nil fields overwrite the stored value (last writer wins).
type EntryUpdateData struct {
	EntryID int64   `json:"entryId"`
	Title   *string `json:"title,omitempty"`
	Body    *string `json:"body,omitempty"`
}

// EntryDeleteData is the payload of [ActionEntryDelete].
type EntryDeleteData struct {
	EntryID int64 `json:"entryId"`
}

// DecodeActionData unmarshals the raw action payload into dst, wrapping the
// JSON error with the action id so handler failures are traceable.
func DecodeActionData(action OfflineAction, dst any) error {
	if err := json.Unmarshal(action.Data, dst); err != nil {
		return fmt.Errorf("decode %s payload for action %s: %w", action.Type, action.ID, err)
	}
	return nil
}
