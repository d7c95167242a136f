// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/models"
	"github.com/jackc/pgerrcode"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// entryRepository is the PostgreSQL-backed implementation of
// [EntryRepository]. Dynamic queries (partial updates, aggregates) are built
// with squirrel; fixed-shape statements live in sql_queries.go.
type entryRepository struct {
	db     Querier
	logger *logger.Logger
}

// NewEntryRepository constructs an [EntryRepository] backed by the provided
// querier and logger.
func NewEntryRepository(db Querier, logger *logger.Logger) EntryRepository {
	return &entryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateEntry inserts a new entry. The client-provided creation time is
// honored when set; otherwise the caller passes server time. A unique
// violation on (user_id, dedup_key) maps to [ErrDuplicateDedupKey].
func (e *entryRepository) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	dedupKey := sql.NullString{String: entry.DedupKey, Valid: entry.DedupKey != ""}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := e.db.QueryRowContext(ctx, createEntry, entry.UserID, entry.Title, entry.Body, dedupKey, createdAt)

	err := row.Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return models.Entry{}, ErrDuplicateDedupKey
		}
		log.Err(err).
			Str("func", "entryRepository.CreateEntry").
			Int64("user_id", entry.UserID).
			Msg("failed to insert entry")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

// FindEntryByDedupKey returns the entry created under (userID, dedupKey), or
// [ErrEntryNotFound]. Soft-deleted entries are still returned: a dedup hit
// on a deleted entry means the creation was already applied once.
func (e *entryRepository) FindEntryByDedupKey(ctx context.Context, userID int64, dedupKey string) (models.Entry, error) {
	return e.scanEntry(ctx, e.db.QueryRowContext(ctx, findEntryByDedupKey, userID, dedupKey))
}

// GetEntry returns the live entry with the given id. Missing and
// soft-deleted entries both map to [ErrEntryNotFound].
func (e *entryRepository) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	entry, err := e.scanEntry(ctx, e.db.QueryRowContext(ctx, getEntry, entryID))
	if err != nil {
		return models.Entry{}, err
	}
	if entry.Deleted {
		return models.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// UpdateEntry applies the non-nil fields of the partial update to an entry
// owned by userID. The SET clause is assembled dynamically with squirrel so
// untouched columns keep their value.
func (e *entryRepository) UpdateEntry(ctx context.Context, userID, entryID int64, fields EntryFieldsUpdate) error {
	log := logger.FromContext(ctx)

	current, err := e.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return ErrEntryNotOwned
	}

	update := psql.Update("entries").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": entryID, "user_id": userID, "deleted": false})

	if fields.Title != nil {
		update = update.Set("title", *fields.Title)
	}
	if fields.Body != nil {
		update = update.Set("body", *fields.Body)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.UpdateEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to execute entry update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		// The entry vanished between the ownership check and the update.
		return ErrEntryNotFound
	}

	return nil
}

// SoftDeleteEntry marks an owned live entry deleted. A zero-row update means
// the entry is already gone or foreign; callers decide whether that matters.
func (e *entryRepository) SoftDeleteEntry(ctx context.Context, userID, entryID int64) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := e.db.ExecContext(ctx, softDeleteEntry, entryID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.SoftDeleteEntry").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to execute entry soft delete")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// CountEntries returns the number of live entries owned by userID.
func (e *entryRepository) CountEntries(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("entries").
		Where(sq.Eq{"user_id": userID, "deleted": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = e.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// LastUpdatedAt returns the newest updated_at across the user's entries,
// nil when the user has none.
func (e *entryRepository) LastUpdatedAt(ctx context.Context, userID int64) (*time.Time, error) {
	var last sql.NullTime
	if err := e.db.QueryRowContext(ctx, lastEntryUpdatedAt, userID).Scan(&last); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

func (e *entryRepository) scanEntry(ctx context.Context, row *sql.Row) (models.Entry, error) {
	log := logger.FromContext(ctx)

	var entry models.Entry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Body,
		&entry.DedupKey,
		&entry.Deleted,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, ErrEntryNotFound
		}
		log.Err(err).
			Str("func", "entryRepository.scanEntry").
			Msg("failed to scan entry row")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}
