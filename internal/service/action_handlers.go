// SPDX-License-Identifier: Apache-2.0
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/models"
)

// handleEntryCreate inserts a journal entry. When the payload carries a
// dedup key and an entry with that key already exists for this user, the
// action is reported successful without inserting anything: at-least-once
// delivery with effect-once creation.
func handleEntryCreate(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (string, error) {
	var data models.EntryCreateData
	if err := models.DecodeActionData(action, &data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedActionData, err)
	}
	if data.Title == "" {
		return "", fmt.Errorf("%w: entry title is required", ErrMalformedActionData)
	}

	// A dedup hit means a previous delivery of this action was already
	// applied; report the retry as done instead of creating a duplicate.
	// The lookup runs before the insert because a failed insert would
	// abort the action's savepoint.
	if data.DedupKey != "" {
		existing, err := repos.Entries.FindEntryByDedupKey(ctx, userID, data.DedupKey)
		if err == nil {
			return fmt.Sprintf("entry %d already created", existing.ID), nil
		}
		if !errors.Is(err, store.ErrEntryNotFound) {
			return "", fmt.Errorf("dedup lookup: %w", err)
		}
	}

	entry := models.Entry{
		UserID:   userID,
		Title:    data.Title,
		Body:     data.Body,
		DedupKey: data.DedupKey,
	}
	if data.CreatedAt != nil {
		entry.CreatedAt = *data.CreatedAt
	}

	created, err := repos.Entries.CreateEntry(ctx, entry)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("entry %d created", created.ID), nil
}

// handleReactionToggle settles the reaction on the target entry to the
// desired end-state. Replays converge: re-adding an existing reaction or
// re-removing a missing one succeeds as a no-op.
func handleReactionToggle(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (string, error) {
	var data models.ReactionToggleData
	if err := models.DecodeActionData(action, &data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedActionData, err)
	}

	if data.Desired {
		if _, err := repos.Entries.GetEntry(ctx, data.TargetID); err != nil {
			return "", fmt.Errorf("reaction target: %w", err)
		}
		added, err := repos.Reactions.AddReaction(ctx, userID, data.TargetID)
		if err != nil {
			return "", err
		}
		if !added {
			return fmt.Sprintf("reaction on entry %d already present", data.TargetID), nil
		}
		return fmt.Sprintf("reaction on entry %d added", data.TargetID), nil
	}

	removed, err := repos.Reactions.RemoveReaction(ctx, userID, data.TargetID)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("reaction on entry %d already absent", data.TargetID), nil
	}
	return fmt.Sprintf("reaction on entry %d removed", data.TargetID), nil
}

// handleTaskComplete upserts the completion record to the desired end-state.
func handleTaskComplete(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (string, error) {
	var data models.TaskCompleteData
	if err := models.DecodeActionData(action, &data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedActionData, err)
	}
	if data.TaskID == "" {
		return "", fmt.Errorf("%w: task id is required", ErrMalformedActionData)
	}

	if err := repos.Tasks.UpsertCompletion(ctx, userID, data.TaskID, data.Completed); err != nil {
		return "", err
	}

	state := "incomplete"
	if data.Completed {
		state = "complete"
	}
	return fmt.Sprintf("task %s marked %s", data.TaskID, state), nil
}

// handleEntryUpdate applies the partial field update to an owned entry.
// Missing or foreign entries fail the action; the client decides whether to
// keep retrying it.
func handleEntryUpdate(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (string, error) {
	var data models.EntryUpdateData
	if err := models.DecodeActionData(action, &data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedActionData, err)
	}
	if data.Title == nil && data.Body == nil {
		return "", fmt.Errorf("%w: entry update carries no fields", ErrMalformedActionData)
	}

	err := repos.Entries.UpdateEntry(ctx, userID, data.EntryID, store.EntryFieldsUpdate{
		Title: data.Title,
		Body:  data.Body,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("entry %d updated", data.EntryID), nil
}

// handleEntryDelete soft-deletes an entry. Deleting an entry that is already
// gone succeeds as a no-op, so a replayed delete converges instead of
// failing forever.
func handleEntryDelete(ctx context.Context, repos *store.Repositories, userID int64, action models.OfflineAction) (string, error) {
	var data models.EntryDeleteData
	if err := models.DecodeActionData(action, &data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedActionData, err)
	}

	applied, err := repos.Entries.SoftDeleteEntry(ctx, userID, data.EntryID)
	if err != nil {
		return "", err
	}
	if !applied {
		return fmt.Sprintf("entry %d already deleted", data.EntryID), nil
	}

	return fmt.Sprintf("entry %d deleted", data.EntryID), nil
}
