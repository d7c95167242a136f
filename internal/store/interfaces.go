package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/daybook-sync/daybook/models"
)

// Querier is the subset of [database/sql] operations shared by *sql.DB and
// *sql.Tx. Repositories depend on it so the reconciliation engine can rebind
// them to a batch transaction via [Repositories.WithTx].
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepository persists account records.
type UserRepository interface {
	// CreateUser inserts a new account. Returns [ErrLoginAlreadyExists]
	// when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the account with the given login or
	// [ErrNoUserWasFound].
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// EntryFieldsUpdate carries the partial fields of an entry-update action.
// Nil fields are left untouched.
type EntryFieldsUpdate struct {
	Title *string
	Body  *string
}

// EntryRepository persists journal entries.
type EntryRepository interface {
	// CreateEntry inserts a new entry and returns it with server-assigned
	// fields populated. Returns [ErrDuplicateDedupKey] when the
	// (user, dedup key) pair already exists.
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)

	// FindEntryByDedupKey returns the entry created under the given dedup
	// key, or [ErrEntryNotFound].
	FindEntryByDedupKey(ctx context.Context, userID int64, dedupKey string) (models.Entry, error)

	// GetEntry returns the live entry with the given id regardless of owner;
	// callers enforce ownership. Returns [ErrEntryNotFound] for missing or
	// soft-deleted entries.
	GetEntry(ctx context.Context, entryID int64) (models.Entry, error)

	// UpdateEntry applies the non-nil fields to an entry owned by userID.
	// Returns [ErrEntryNotFound] when no live entry matches, or
	// [ErrEntryNotOwned] when it belongs to someone else.
	UpdateEntry(ctx context.Context, userID, entryID int64, fields EntryFieldsUpdate) error

	// SoftDeleteEntry marks an owned entry deleted. applied is false when
	// the entry is already gone or owned by another identity; that is not
	// an error.
	SoftDeleteEntry(ctx context.Context, userID, entryID int64) (applied bool, err error)

	// CountEntries returns the number of live entries owned by userID.
	CountEntries(ctx context.Context, userID int64) (int64, error)

	// LastUpdatedAt returns the newest updated_at across the user's
	// entries, nil when there are none.
	LastUpdatedAt(ctx context.Context, userID int64) (*time.Time, error)
}

// ReactionRepository persists entry reactions.
type ReactionRepository interface {
	// AddReaction records a reaction; added is false when it already
	// existed.
	AddReaction(ctx context.Context, userID, entryID int64) (added bool, err error)

	// RemoveReaction deletes a reaction; removed is false when none
	// existed.
	RemoveReaction(ctx context.Context, userID, entryID int64) (removed bool, err error)

	// CountReactions returns the number of reactions recorded by userID.
	CountReactions(ctx context.Context, userID int64) (int64, error)

	// LastReactionAt returns the newest reaction time, nil when there are
	// none.
	LastReactionAt(ctx context.Context, userID int64) (*time.Time, error)
}

// TaskRepository persists daily-task completion records.
type TaskRepository interface {
	// UpsertCompletion settles the completion record of (userID, taskID) to
	// the desired boolean, stamping completed_at when it flips to true and
	// clearing it when it flips to false.
	UpsertCompletion(ctx context.Context, userID int64, taskID string, completed bool) error

	// CountCompleted returns the number of tasks currently marked complete.
	CountCompleted(ctx context.Context, userID int64) (int64, error)

	// LastCompletionAt returns the newest completion-record update time,
	// nil when there are none.
	LastCompletionAt(ctx context.Context, userID int64) (*time.Time, error)
}
