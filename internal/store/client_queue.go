// SPDX-License-Identifier: Apache-2.0
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/utils"
	"github.com/daybook-sync/daybook/models"
)

const (
	createActionsTable = `
		CREATE TABLE IF NOT EXISTS actions (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			id        TEXT NOT NULL UNIQUE,
			type      TEXT NOT NULL,
			data      TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)`
	createSyncMetaTable = `
		CREATE TABLE IF NOT EXISTS sync_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`

	insertAction     = `INSERT INTO actions (id, type, data, timestamp) VALUES (?, ?, ?, ?)`
	selectActions    = `SELECT seq, id, type, data, timestamp FROM actions ORDER BY seq ASC`
	deleteAllActions = `DELETE FROM actions`
	deleteActionSeq  = `DELETE FROM actions WHERE seq = ?`

	selectMetaValue = `SELECT value FROM sync_meta WHERE key = ?`
	upsertMetaValue = `INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	deleteMetaKey = `DELETE FROM sync_meta WHERE key = ?`
)

const (
	metaLastSyncAt = "last_sync_at"
	metaDeviceID   = "device_id"
)

type actionQueueStore struct {
	db      *sql.DB
	uuidGen *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewActionQueueStore prepares the queue schema on db and returns the store.
func NewActionQueueStore(ctx context.Context, db *sql.DB, log *logger.Logger) (ActionQueueStore, error) {
	s := &actionQueueStore{db: db, uuidGen: utils.NewUUIDGenerator(), logger: log}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *actionQueueStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{createActionsTable, createSyncMetaTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Err(err).Str("func", "ensureSchema").Msg("error creating queue schema")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}

func (s *actionQueueStore) Append(ctx context.Context, action models.OfflineAction) error {
	log := s.logger.With().Str("func", "Append").Logger()

	if action.ID == "" {
		action.ID = s.uuidGen.Generate()
	}
	if action.Timestamp.IsZero() {
		action.Timestamp = time.Now().UTC()
	}

	data := string(action.Data)
	if data == "" {
		data = "null"
	}

	_, err := s.db.ExecContext(ctx, insertAction,
		action.ID, string(action.Type), data, action.Timestamp.UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Err(err).Str("action_id", action.ID).Msg("error appending action")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *actionQueueStore) Replace(ctx context.Context, actions []models.OfflineAction) error {
	log := s.logger.With().Str("func", "Replace").Logger()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllActions); err != nil {
		log.Err(err).Msg("error clearing queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, action := range actions {
		data := string(action.Data)
		if data == "" {
			data = "null"
		}
		_, err = tx.ExecContext(ctx, insertAction,
			action.ID, string(action.Type), data, action.Timestamp.UTC().Format(time.RFC3339Nano))
		if err != nil {
			log.Err(err).Str("action_id", action.ID).Msg("error re-inserting action")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *actionQueueStore) Load(ctx context.Context) ([]models.OfflineAction, error) {
	log := s.logger.With().Str("func", "Load").Logger()

	rows, err := s.db.QueryContext(ctx, selectActions)
	if err != nil {
		// A broken table means the persisted queue is lost; rebuild the
		// schema and start over with an empty queue instead of failing.
		log.Err(err).Msg("queue table unreadable, resetting local queue")
		if resetErr := s.reset(ctx); resetErr != nil {
			return nil, resetErr
		}
		return []models.OfflineAction{}, nil
	}
	defer rows.Close()

	actions := make([]models.OfflineAction, 0)
	corruptSeqs := make([]int64, 0)

	for rows.Next() {
		var (
			seq                 int64
			id, typ, data, when string
		)
		if err = rows.Scan(&seq, &id, &typ, &data, &when); err != nil {
			log.Err(err).Msg("error scanning queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		action, ok := decodeQueueRow(id, typ, data, when)
		if !ok {
			log.Warn().Int64("seq", seq).Str("action_id", id).Msg("dropping corrupted queue row")
			corruptSeqs = append(corruptSeqs, seq)
			continue
		}
		actions = append(actions, action)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Msg("error iterating queue rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for _, seq := range corruptSeqs {
		if _, err = s.db.ExecContext(ctx, deleteActionSeq, seq); err != nil {
			log.Err(err).Int64("seq", seq).Msg("error purging corrupted queue row")
		}
	}

	return actions, nil
}

// decodeQueueRow validates one persisted row. A row with an empty id or
// type, or with data that is not valid JSON, is reported as corrupted.
func decodeQueueRow(id, typ, data, when string) (models.OfflineAction, bool) {
	if id == "" || strings.TrimSpace(typ) == "" {
		return models.OfflineAction{}, false
	}
	if !json.Valid([]byte(data)) {
		return models.OfflineAction{}, false
	}

	ts, err := time.Parse(time.RFC3339Nano, when)
	if err != nil {
		return models.OfflineAction{}, false
	}

	return models.OfflineAction{
		ID:        id,
		Type:      models.ActionType(typ),
		Data:      json.RawMessage(data),
		Timestamp: ts,
	}, true
}

// reset drops and recreates the queue tables after corruption.
func (s *actionQueueStore) reset(ctx context.Context) error {
	for _, stmt := range []string{`DROP TABLE IF EXISTS actions`, `DROP TABLE IF EXISTS sync_meta`} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrQueueCorrupted, err)
		}
	}
	return s.ensureSchema(ctx)
}

func (s *actionQueueStore) Clear(ctx context.Context) error {
	log := s.logger.With().Str("func", "Clear").Logger()

	if _, err := s.db.ExecContext(ctx, deleteAllActions); err != nil {
		log.Err(err).Msg("error clearing queue")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if _, err := s.db.ExecContext(ctx, deleteMetaKey, metaLastSyncAt); err != nil {
		log.Err(err).Msg("error clearing sync watermark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *actionQueueStore) LastSyncAt(ctx context.Context) (*time.Time, error) {
	log := s.logger.With().Str("func", "LastSyncAt").Logger()

	var value string
	err := s.db.QueryRowContext(ctx, selectMetaValue, metaLastSyncAt).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Msg("error reading sync watermark")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		// An unreadable watermark is diagnostic data only; drop it.
		log.Warn().Str("value", value).Msg("dropping unreadable sync watermark")
		_, _ = s.db.ExecContext(ctx, deleteMetaKey, metaLastSyncAt)
		return nil, nil
	}

	return &at, nil
}

func (s *actionQueueStore) SetLastSyncAt(ctx context.Context, at time.Time) error {
	log := s.logger.With().Str("func", "SetLastSyncAt").Logger()

	_, err := s.db.ExecContext(ctx, upsertMetaValue, metaLastSyncAt, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Err(err).Msg("error storing sync watermark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *actionQueueStore) DeviceID(ctx context.Context) (string, error) {
	log := s.logger.With().Str("func", "DeviceID").Logger()

	var value string
	err := s.db.QueryRowContext(ctx, selectMetaValue, metaDeviceID).Scan(&value)
	if err == nil && value != "" {
		return value, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Msg("error reading device id")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	value = s.uuidGen.Generate()
	if _, err = s.db.ExecContext(ctx, upsertMetaValue, metaDeviceID, value); err != nil {
		log.Err(err).Msg("error storing device id")
		return "", fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	log.Debug().Str("device_id", value).Msg("generated device id")

	return value, nil
}

func (s *actionQueueStore) Close() error {
	return s.db.Close()
}
