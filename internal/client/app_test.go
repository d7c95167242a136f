package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daybook-sync/daybook/internal/config"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/mock"
	"github.com/daybook-sync/daybook/internal/service"
	"github.com/daybook-sync/daybook/internal/workers"
	"github.com/daybook-sync/daybook/models"
)

// newTestApp builds an App over mocked storage and transport, with the
// command loop fed from script and output captured.
func newTestApp(t *testing.T, script string) (*App, *mock.MockActionQueueStore, *mock.MockServerAdapter, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	queue := mock.NewMockActionQueueStore(ctrl)
	serverAdapter := mock.NewMockServerAdapter(ctrl)

	cfg := config.ClientWorkers{
		ProbeInterval: time.Hour,
		FlushInterval: time.Hour,
		SyncDebounce:  time.Hour,
	}
	services := service.NewClientServices(queue, serverAdapter, cfg, logger.Nop())

	app, err := NewApp(services, serverAdapter, workers.NewClientWorkers(services, cfg, logger.Nop()), logger.Nop())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app.in = strings.NewReader(script)
	app.out = out

	return app, queue, serverAdapter, out
}

func TestApp_NewApp_NilDependency(t *testing.T) {
	_, err := NewApp(nil, nil, nil, logger.Nop())
	assert.ErrorIs(t, err, errNilDependency)
}

func TestApp_NoteQueuesEntryCreate(t *testing.T) {
	app, queue, serverAdapter, out := newTestApp(t, "note hello first day\nquit\n")
	// the probe worker fires once on startup
	serverAdapter.EXPECT().Ping(gomock.Any()).Return(assertOffline()).AnyTimes()

	queue.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, action models.OfflineAction) error {
			assert.Equal(t, models.ActionEntryCreate, action.Type)
			assert.NotEmpty(t, action.ID)

			var data models.EntryCreateData
			require.NoError(t, json.Unmarshal(action.Data, &data))
			assert.Equal(t, "hello", data.Title)
			assert.Equal(t, "first day", data.Body)
			assert.NotEmpty(t, data.DedupKey)

			return nil
		})

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "queued entry-create")
}

func TestApp_ReactValidation(t *testing.T) {
	app, _, serverAdapter, out := newTestApp(t, "react seven on\nquit\n")
	serverAdapter.EXPECT().Ping(gomock.Any()).Return(assertOffline()).AnyTimes()

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "entry id must be a number")
}

func TestApp_SyncRequiresLogin(t *testing.T) {
	app, _, serverAdapter, out := newTestApp(t, "sync\nquit\n")
	serverAdapter.EXPECT().Ping(gomock.Any()).Return(assertOffline()).AnyTimes()
	serverAdapter.EXPECT().Token().Return("")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "not logged in")
}

func TestApp_PendingListsQueue(t *testing.T) {
	app, queue, serverAdapter, out := newTestApp(t, "pending\nquit\n")
	serverAdapter.EXPECT().Ping(gomock.Any()).Return(assertOffline()).AnyTimes()

	actions := []models.OfflineAction{
		{ID: "a-1", Type: models.ActionEntryCreate, Data: json.RawMessage(`{}`), Timestamp: time.Now()},
		{ID: "a-2", Type: models.ActionEntryDelete, Data: json.RawMessage(`{}`), Timestamp: time.Now()},
	}
	queue.EXPECT().Load(gomock.Any()).Return(actions, nil)
	queue.EXPECT().LastSyncAt(gomock.Any()).Return(nil, nil)

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "a-1")
	assert.Contains(t, out.String(), "a-2")
}

func TestApp_UnknownCommand(t *testing.T) {
	app, _, serverAdapter, out := newTestApp(t, "frobnicate\nquit\n")
	serverAdapter.EXPECT().Ping(gomock.Any()).Return(assertOffline()).AnyTimes()

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "unknown command")
}

// assertOffline is the probe error used when a test does not care about
// connectivity.
func assertOffline() error {
	return assert.AnError
}
