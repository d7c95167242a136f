package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/models"
)

// stubAuthService drives the handlers without real hashing or JWT work.
// Tokens are plain strings mapped to user ids.
type stubAuthService struct {
	registerErr error
	loginErr    error
	tokens      map[string]int64
}

func (s *stubAuthService) RegisterUser(_ context.Context, user models.User) (models.User, error) {
	if s.registerErr != nil {
		return models.User{}, s.registerErr
	}
	user.UserID = 1
	return user, nil
}

func (s *stubAuthService) Login(_ context.Context, user models.User) (models.User, error) {
	if s.loginErr != nil {
		return models.User{}, s.loginErr
	}
	user.UserID = 1
	return user, nil
}

func (s *stubAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{SignedString: "token-for-user", UserID: user.UserID}, nil
}

func (s *stubAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	userID, ok := s.tokens[tokenString]
	if !ok {
		return models.Token{}, errors.New("unknown token")
	}
	return models.Token{SignedString: tokenString, UserID: userID}, nil
}

type stubSyncService struct {
	result models.SyncResult
	err    error

	gotUserID  int64
	gotRequest models.SyncRequest
}

func (s *stubSyncService) ProcessBatch(_ context.Context, userID int64, request models.SyncRequest) (models.SyncResult, error) {
	s.gotUserID = userID
	s.gotRequest = request
	return s.result, s.err
}

type stubStatusService struct {
	status models.SyncStatus
	err    error
}

func (s *stubStatusService) GetSyncStatus(context.Context, int64) (models.SyncStatus, error) {
	return s.status, s.err
}

func newTestHandler(authSvc service.AuthService, syncSvc service.SyncService, statusSvc service.StatusService) *Handler {
	return NewHandler(&service.Services{
		AuthService:   authSvc,
		SyncService:   syncSvc,
		StatusService: statusSvc,
	}, logger.Nop())
}

func TestRegister_IssuesBearerToken(t *testing.T) {
	h := newTestHandler(&stubAuthService{}, nil, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	body := bytes.NewBufferString(`{"login":"ann","password":"s3cret"}`)
	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer token-for-user", resp.Header.Get("Authorization"))
}

func TestRegister_Conflict(t *testing.T) {
	h := newTestHandler(&stubAuthService{registerErr: store.ErrLoginAlreadyExists}, nil, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	body := bytes.NewBufferString(`{"login":"ann","password":"s3cret"}`)
	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(&stubAuthService{}, nil, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/auth/register", "application/json", bytes.NewBufferString(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(&stubAuthService{loginErr: service.ErrWrongPassword}, nil, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	body := bytes.NewBufferString(`{"login":"ann","password":"wrong"}`)
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSyncBatch_RequiresAuth(t *testing.T) {
	h := newTestHandler(&stubAuthService{tokens: map[string]int64{}}, &stubSyncService{}, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sync/batch", "application/json", bytes.NewBufferString(`{"actions":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSyncBatch_ReportsPerActionOutcomes(t *testing.T) {
	syncSvc := &stubSyncService{
		result: models.SyncResult{
			Successful: []models.ActionSuccess{{ID: "a-1", Type: models.ActionEntryCreate, Message: "entry 7 created"}},
			Failed:     []models.ActionFailure{{ID: "a-2", Type: models.ActionEntryUpdate, Error: "entry was not found"}},
			Total:      2,
		},
	}
	h := newTestHandler(&stubAuthService{tokens: map[string]int64{"valid-token": 42}}, syncSvc, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	payload := `{"actions":[{"id":"a-1","type":"entry-create","data":{"title":"x"}},{"id":"a-2","type":"entry-update","data":{"entryId":9}}],"deviceId":"device-1"}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/sync/batch", bytes.NewBufferString(payload))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// per-action failures are still a successful batch at the HTTP level
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(42), syncSvc.gotUserID)
	assert.Equal(t, "device-1", syncSvc.gotRequest.DeviceID)
	require.Len(t, syncSvc.gotRequest.Actions, 2)

	var batchResponse models.SyncBatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batchResponse))
	assert.False(t, batchResponse.Success)
	assert.Equal(t, 2, batchResponse.Results.Total)
	require.Len(t, batchResponse.Results.Failed, 1)
	assert.Equal(t, "a-2", batchResponse.Results.Failed[0].ID)
	assert.False(t, batchResponse.SyncedAt.IsZero())
}

func TestSyncBatch_BatchLevelFault(t *testing.T) {
	syncSvc := &stubSyncService{err: service.ErrBatchNotApplied}
	h := newTestHandler(&stubAuthService{tokens: map[string]int64{"valid-token": 42}}, syncSvc, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/sync/batch", bytes.NewBufferString(`{"actions":[]}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSyncStatus(t *testing.T) {
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	statusSvc := &stubStatusService{status: models.SyncStatus{
		LastUpdatedAt:      &at,
		EntryCount:         3,
		ReactionCount:      1,
		CompletedTaskCount: 2,
	}}
	h := newTestHandler(&stubAuthService{tokens: map[string]int64{"valid-token": 42}}, nil, statusSvc)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/sync/status", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer valid-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status models.SyncStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, int64(3), status.EntryCount)
	require.NotNil(t, status.LastUpdatedAt)
	assert.True(t, status.LastUpdatedAt.Equal(at))
}

func TestPing_NoAuthRequired(t *testing.T) {
	h := newTestHandler(&stubAuthService{}, nil, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestAuthMiddleware_HeaderParsing(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no token part", header: "Bearer"},
		{name: "empty token", header: "Bearer "},
		{name: "unknown token", header: "Bearer bogus"},
	}

	h := newTestHandler(&stubAuthService{tokens: map[string]int64{}}, &stubSyncService{}, nil)
	srv := httptest.NewServer(h.Init())
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/sync/batch", bytes.NewBufferString(`{}`))
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
