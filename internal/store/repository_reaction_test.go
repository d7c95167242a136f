package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/daybook-sync/daybook/internal/logger"
)

func newTestReactionRepo(t *testing.T) (ReactionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewReactionRepository(db, logger.Nop()), mock, db
}

func TestAddReaction_New(t *testing.T) {
	repo, mock, db := newTestReactionRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO reactions").
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	added, err := repo.AddReaction(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Error("expected added=true for a new reaction")
	}
}

func TestAddReaction_AlreadyExists(t *testing.T) {
	repo, mock, db := newTestReactionRepo(t)
	defer db.Close()

	// ON CONFLICT DO NOTHING reports zero affected rows on replay
	mock.ExpectExec("INSERT INTO reactions").
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.AddReaction(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Error("expected added=false for an existing reaction")
	}
}

func TestRemoveReaction_Missing(t *testing.T) {
	repo, mock, db := newTestReactionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM reactions").
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.RemoveReaction(context.Background(), 1, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("expected removed=false when no reaction existed")
	}
}

func TestCountReactions(t *testing.T) {
	repo, mock, db := newTestReactionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountReactions(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Errorf("expected count=5, got %d", count)
	}
}

func TestLastReactionAt(t *testing.T) {
	repo, mock, db := newTestReactionRepo(t)
	defer db.Close()

	at := time.Now()
	mock.ExpectQuery("SELECT MAX").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(at))

	last, err := repo.LastReactionAt(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last == nil || !last.Equal(at) {
		t.Errorf("expected %v, got %v", at, last)
	}
}
