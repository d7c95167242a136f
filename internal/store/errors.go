package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a user fails
	// because the login is already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntryNotFound is returned when a query or update targets an entry
	// that does not exist or is soft-deleted.
	ErrEntryNotFound = errors.New("entry was not found")

	// ErrEntryNotOwned is returned when an update or delete targets an entry
	// owned by a different identity.
	ErrEntryNotOwned = errors.New("entry belongs to another user")

	// ErrDuplicateDedupKey is returned when an entry insert collides with an
	// existing (user, dedup key) pair. Creation handlers treat it as
	// "already applied".
	ErrDuplicateDedupKey = errors.New("entry with this dedup key already exists")

	// ErrQueueCorrupted is returned internally by the client queue store
	// when the persisted state cannot be read; the store self-heals to an
	// empty queue instead of surfacing it to callers.
	ErrQueueCorrupted = errors.New("action queue storage is corrupted")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a read query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
