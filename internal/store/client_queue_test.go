package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/models"
)

func newTestQueue(t *testing.T) ActionQueueStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	queue, err := NewActionQueueStore(context.Background(), db, logger.Nop())
	if err != nil {
		t.Fatalf("failed to create queue store: %v", err)
	}
	return queue
}

func queueAction(id string, typ models.ActionType, data string) models.OfflineAction {
	return models.OfflineAction{
		ID:        id,
		Type:      typ,
		Data:      json.RawMessage(data),
		Timestamp: time.Now().UTC(),
	}
}

func TestQueue_AppendPreservesOrder(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	first := queueAction("a-1", models.ActionEntryCreate, `{"title":"one"}`)
	second := queueAction("a-2", models.ActionReactionToggle, `{"targetId":7,"desired":true}`)
	third := queueAction("a-3", models.ActionTaskComplete, `{"taskId":"walk","completed":true}`)

	for _, a := range []models.OfflineAction{first, second, third} {
		if err := queue.Append(ctx, a); err != nil {
			t.Fatalf("append %s: %v", a.ID, err)
		}
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(loaded))
	}
	for i, want := range []string{"a-1", "a-2", "a-3"} {
		if loaded[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, loaded[i].ID)
		}
	}
	if loaded[0].Type != models.ActionEntryCreate {
		t.Errorf("expected type %s, got %s", models.ActionEntryCreate, loaded[0].Type)
	}
}

func TestQueue_AppendGeneratesID(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	if err := queue.Append(ctx, models.OfflineAction{Type: models.ActionEntryCreate, Data: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("append: %v", err)
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID == "" {
		t.Fatalf("expected one action with a generated id, got %+v", loaded)
	}
	if loaded[0].Timestamp.IsZero() {
		t.Error("expected a generated timestamp")
	}
}

func TestQueue_ReplaceKeepsOnlyGivenActions(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	for _, id := range []string{"a-1", "a-2", "a-3"} {
		if err := queue.Append(ctx, queueAction(id, models.ActionEntryCreate, `{}`)); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	// only the still-failing action survives the sync round
	survivor := queueAction("a-2", models.ActionEntryCreate, `{}`)
	if err := queue.Replace(ctx, []models.OfflineAction{survivor}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "a-2" {
		t.Fatalf("expected only a-2 to remain, got %+v", loaded)
	}
}

func TestQueue_ClearDropsActionsAndWatermark(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	if err := queue.Append(ctx, queueAction("a-1", models.ActionEntryDelete, `{"entryId":1}`)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := queue.SetLastSyncAt(ctx, time.Now()); err != nil {
		t.Fatalf("set watermark: %v", err)
	}

	if err := queue.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty queue, got %d actions", len(loaded))
	}

	last, err := queue.LastSyncAt(ctx)
	if err != nil {
		t.Fatalf("last sync at: %v", err)
	}
	if last != nil {
		t.Errorf("expected nil watermark after clear, got %v", last)
	}
}

func TestQueue_LastSyncAtRoundTrip(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	last, err := queue.LastSyncAt(ctx)
	if err != nil {
		t.Fatalf("last sync at: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil watermark on a fresh queue, got %v", last)
	}

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if err = queue.SetLastSyncAt(ctx, at); err != nil {
		t.Fatalf("set watermark: %v", err)
	}

	last, err = queue.LastSyncAt(ctx)
	if err != nil {
		t.Fatalf("last sync at: %v", err)
	}
	if last == nil || !last.Equal(at) {
		t.Fatalf("expected %v, got %v", at, last)
	}
}

func TestQueue_DeviceIDIsStable(t *testing.T) {
	queue := newTestQueue(t)
	ctx := context.Background()

	first, err := queue.DeviceID(ctx)
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	if first == "" {
		t.Fatal("expected a generated device id")
	}

	second, err := queue.DeviceID(ctx)
	if err != nil {
		t.Fatalf("device id: %v", err)
	}
	if second != first {
		t.Errorf("expected a stable device id, got %s then %s", first, second)
	}
}

func TestQueue_LoadDropsCorruptedRows(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	queue, err := NewActionQueueStore(ctx, db, logger.Nop())
	if err != nil {
		t.Fatalf("failed to create queue store: %v", err)
	}

	if err = queue.Append(ctx, queueAction("a-ok", models.ActionEntryCreate, `{"title":"fine"}`)); err != nil {
		t.Fatalf("append: %v", err)
	}

	// a row with broken JSON and a row with a missing type, written behind
	// the store's back
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err = db.ExecContext(ctx, insertAction, "a-bad-json", "entry-create", `{"title":`, now); err != nil {
		t.Fatalf("insert corrupted row: %v", err)
	}
	if _, err = db.ExecContext(ctx, insertAction, "a-no-type", "", `{}`, now); err != nil {
		t.Fatalf("insert corrupted row: %v", err)
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "a-ok" {
		t.Fatalf("expected only the intact action, got %+v", loaded)
	}

	// the corrupted rows are purged, later loads stay clean
	var remaining int
	if err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM actions`).Scan(&remaining); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected corrupted rows purged, %d rows remain", remaining)
	}
}

func TestQueue_LoadRebuildsBrokenSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	queue, err := NewActionQueueStore(ctx, db, logger.Nop())
	if err != nil {
		t.Fatalf("failed to create queue store: %v", err)
	}

	// simulate a damaged file: the actions table no longer has the
	// expected shape
	if _, err = db.ExecContext(ctx, `DROP TABLE actions`); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if _, err = db.ExecContext(ctx, `CREATE TABLE actions (junk TEXT)`); err != nil {
		t.Fatalf("recreate table: %v", err)
	}

	loaded, err := queue.Load(ctx)
	if err != nil {
		t.Fatalf("load after corruption: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected an empty queue after reset, got %d actions", len(loaded))
	}

	// the rebuilt schema accepts new actions again
	if err = queue.Append(ctx, queueAction("a-new", models.ActionEntryCreate, `{}`)); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
}
