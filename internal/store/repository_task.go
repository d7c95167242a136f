package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/daybook-sync/daybook/internal/logger"
)

// taskRepository is the PostgreSQL-backed implementation of
// [TaskRepository]. Completion records are keyed by (user_id, task_id) and
// upserted to the desired end-state, so replaying the same task-complete
// action is a no-op.
type taskRepository struct {
	db     Querier
	logger *logger.Logger
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// querier and logger.
func NewTaskRepository(db Querier, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertCompletion settles the completion record to the desired boolean.
// completed_at is stamped on the false→true flip, preserved on repeated
// true, and cleared whenever completed goes false.
func (t *taskRepository) UpsertCompletion(ctx context.Context, userID int64, taskID string, completed bool) error {
	log := logger.FromContext(ctx)

	_, err := t.db.ExecContext(ctx, upsertTaskCompletion, userID, taskID, completed)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.UpsertCompletion").
			Int64("user_id", userID).
			Str("task_id", taskID).
			Bool("completed", completed).
			Msg("failed to upsert task completion")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// CountCompleted returns the number of tasks currently marked complete.
func (t *taskRepository) CountCompleted(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("task_completions").
		Where(sq.Eq{"user_id": userID, "completed": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = t.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// LastCompletionAt returns the newest completion-record update time, nil
// when there are none.
func (t *taskRepository) LastCompletionAt(ctx context.Context, userID int64) (*time.Time, error) {
	var last sql.NullTime
	if err := t.db.QueryRowContext(ctx, lastCompletionAt, userID).Scan(&last); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
