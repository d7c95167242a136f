package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/mock"
	"github.com/daybook-sync/daybook/models"
)

func newTestClientSyncSvc(t *testing.T, ctrl *gomock.Controller, debounce time.Duration) (*clientSyncService, *mock.MockActionQueueStore, *mock.MockServerAdapter) {
	t.Helper()

	mockQueue := mock.NewMockActionQueueStore(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)

	svc := NewClientSyncService(mockQueue, mockAdapter, debounce, logger.Nop()).(*clientSyncService)
	return svc, mockQueue, mockAdapter
}

func TestEnqueue_SerializesPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, _ := newTestClientSyncSvc(t, ctrl, time.Second)
	ctx := context.Background()

	mockQueue.EXPECT().
		Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, action models.OfflineAction) error {
			assert.Equal(t, models.ActionReactionToggle, action.Type)

			var data models.ReactionToggleData
			require.NoError(t, json.Unmarshal(action.Data, &data))
			assert.Equal(t, int64(42), data.TargetID)
			assert.True(t, data.Desired)
			return nil
		})

	action, err := svc.Enqueue(ctx, models.ActionReactionToggle, models.ReactionToggleData{TargetID: 42, Desired: true})

	require.NoError(t, err)
	assert.NotEmpty(t, action.ID)
	assert.False(t, action.Timestamp.IsZero())
}

func TestEnqueue_RejectsUnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientSyncSvc(t, ctrl, time.Second)

	_, err := svc.Enqueue(context.Background(), "entry-explode", struct{}{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownActionType)
}

// Recording an action while online kicks a flush without waiting for the
// next timer or connectivity transition.
func TestEnqueue_OnlineTriggersImmediateFlush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, _ := newTestClientSyncSvc(t, ctrl, time.Hour)
	svc.OnConnectivityChange(true)

	mockQueue.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	flushed := make(chan struct{})
	mockQueue.EXPECT().
		Load(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.OfflineAction, error) {
			close(flushed)
			return nil, nil
		})

	_, err := svc.Enqueue(context.Background(), models.ActionTaskComplete, models.TaskCompleteData{TaskID: "water-plants", Completed: true})
	require.NoError(t, err)

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a flush attempt after enqueue while online")
	}
}

// After a sync round the queue holds exactly the actions the server reported
// failed, in their original order.
func TestSyncPendingActions_ShrinksQueueToFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, mockAdapter := newTestClientSyncSvc(t, ctrl, time.Second)
	svc.online = true
	ctx := context.Background()

	pending := []models.OfflineAction{
		{ID: "a-1", Type: models.ActionEntryCreate, Data: json.RawMessage(`{"title":"one"}`)},
		{ID: "a-2", Type: models.ActionEntryUpdate, Data: json.RawMessage(`{"entryId":9,"title":"x"}`)},
		{ID: "a-3", Type: models.ActionTaskComplete, Data: json.RawMessage(`{"taskId":"walk","completed":true}`)},
	}
	watermark := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	mockQueue.EXPECT().Load(ctx).Return(pending, nil)
	mockQueue.EXPECT().LastSyncAt(ctx).Return(&watermark, nil)
	mockQueue.EXPECT().DeviceID(ctx).Return("device-1", nil)

	mockAdapter.EXPECT().
		SubmitBatch(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, request models.SyncRequest) (models.SyncResult, error) {
			assert.Len(t, request.Actions, 3)
			assert.Equal(t, "device-1", request.DeviceID)
			require.NotNil(t, request.LastSyncAt)

			return models.SyncResult{
				Successful: []models.ActionSuccess{
					{ID: "a-1", Type: models.ActionEntryCreate, Message: "entry 7 created"},
					{ID: "a-3", Type: models.ActionTaskComplete, Message: "task walk marked complete"},
				},
				Failed: []models.ActionFailure{
					{ID: "a-2", Type: models.ActionEntryUpdate, Error: "entry was not found"},
				},
				Total: 3,
			}, nil
		})

	mockQueue.EXPECT().
		Replace(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, remaining []models.OfflineAction) error {
			require.Len(t, remaining, 1)
			assert.Equal(t, "a-2", remaining[0].ID)
			return nil
		})
	mockQueue.EXPECT().SetLastSyncAt(ctx, gomock.Any()).Return(nil)

	result, err := svc.SyncPendingActions(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Successful, 2)
	assert.Len(t, result.Failed, 1)
}

func TestSyncPendingActions_EmptyQueueSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, _ := newTestClientSyncSvc(t, ctrl, time.Second)
	svc.online = true
	ctx := context.Background()

	mockQueue.EXPECT().Load(ctx).Return([]models.OfflineAction{}, nil)

	result, err := svc.SyncPendingActions(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

// A transport-level failure leaves the queue untouched; every action is
// still pending for the next round.
func TestSyncPendingActions_TransportFailureKeepsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, mockAdapter := newTestClientSyncSvc(t, ctrl, time.Second)
	svc.online = true
	ctx := context.Background()

	pending := []models.OfflineAction{
		{ID: "a-1", Type: models.ActionEntryCreate, Data: json.RawMessage(`{"title":"one"}`)},
	}

	mockQueue.EXPECT().Load(ctx).Return(pending, nil)
	mockQueue.EXPECT().LastSyncAt(ctx).Return(nil, nil)
	mockQueue.EXPECT().DeviceID(ctx).Return("device-1", nil)
	mockAdapter.EXPECT().
		SubmitBatch(ctx, gomock.Any()).
		Return(models.SyncResult{}, adapter.ErrServerUnreachable)

	_, err := svc.SyncPendingActions(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrServerUnreachable)
}

func TestSyncPendingActions_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientSyncSvc(t, ctrl, time.Second)

	svc.mu.Lock()
	svc.syncing = true
	svc.mu.Unlock()

	_, err := svc.SyncPendingActions(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncInFlight)
}

// While offline a sync request is a no-op: the queue is not read and the
// server is never contacted, even with pending actions on disk.
func TestSyncPendingActions_OfflineNeverContactsServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientSyncSvc(t, ctrl, time.Second)

	result, err := svc.SyncPendingActions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SyncResult{}, result)
}

// Going online schedules a debounced flush; the flush drains the queue
// through the adapter.
func TestOnConnectivityChange_OnlineTriggersFlush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockQueue, _ := newTestClientSyncSvc(t, ctrl, 10*time.Millisecond)

	flushed := make(chan struct{})
	mockQueue.EXPECT().
		Load(gomock.Any()).
		DoAndReturn(func(context.Context) ([]models.OfflineAction, error) {
			close(flushed)
			return []models.OfflineAction{}, nil
		})

	svc.OnConnectivityChange(true)

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced flush never fired")
	}
}

// Flapping back offline before the debounce elapses cancels the scheduled
// flush.
func TestOnConnectivityChange_OfflineCancelsFlush(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientSyncSvc(t, ctrl, 50*time.Millisecond)

	svc.OnConnectivityChange(true)
	svc.OnConnectivityChange(false)

	// no queue or adapter expectations are registered: any flush would
	// fail the controller
	time.Sleep(150 * time.Millisecond)
}

func TestConnectivityMonitor_Transitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdapter := mock.NewMockServerAdapter(ctrl)

	var transitions []bool
	monitor := NewConnectivityMonitor(mockAdapter, func(online bool) {
		transitions = append(transitions, online)
	}, logger.Nop())

	ctx := context.Background()

	gomock.InOrder(
		mockAdapter.EXPECT().Ping(ctx).Return(nil),
		mockAdapter.EXPECT().Ping(ctx).Return(nil),
		mockAdapter.EXPECT().Ping(ctx).Return(errors.New("connection refused")),
		mockAdapter.EXPECT().Ping(ctx).Return(nil),
	)

	assert.True(t, monitor.Probe(ctx))  // offline -> online
	assert.True(t, monitor.Probe(ctx))  // still online, no callback
	assert.False(t, monitor.Probe(ctx)) // online -> offline
	assert.True(t, monitor.Probe(ctx))  // offline -> online

	assert.Equal(t, []bool{true, false, true}, transitions)
	assert.True(t, monitor.IsOnline())
}
