package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/daybook-sync/daybook/internal/logger"
)

// reactionRepository is the PostgreSQL-backed implementation of
// [ReactionRepository]. The (user_id, entry_id) primary key makes the toggle
// operations naturally idempotent: adds use ON CONFLICT DO NOTHING and
// removes are plain deletes.
type reactionRepository struct {
	db     Querier
	logger *logger.Logger
}

// NewReactionRepository constructs a [ReactionRepository] backed by the
// provided querier and logger.
func NewReactionRepository(db Querier, logger *logger.Logger) ReactionRepository {
	return &reactionRepository{
		db:     db,
		logger: logger,
	}
}

// AddReaction records a reaction; added is false when it already existed.
func (r *reactionRepository) AddReaction(ctx context.Context, userID, entryID int64) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, addReaction, userID, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "reactionRepository.AddReaction").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to insert reaction")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// RemoveReaction deletes a reaction; removed is false when none existed.
func (r *reactionRepository) RemoveReaction(ctx context.Context, userID, entryID int64) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, removeReaction, userID, entryID)
	if err != nil {
		log.Err(err).
			Str("func", "reactionRepository.RemoveReaction").
			Int64("user_id", userID).
			Int64("entry_id", entryID).
			Msg("failed to delete reaction")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// CountReactions returns the number of reactions recorded by userID.
func (r *reactionRepository) CountReactions(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From("reactions").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// LastReactionAt returns the newest reaction time, nil when there are none.
func (r *reactionRepository) LastReactionAt(ctx context.Context, userID int64) (*time.Time, error) {
	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, lastReactionAt, userID).Scan(&last); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
