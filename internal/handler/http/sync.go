// SPDX-License-Identifier: Apache-2.0
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/daybook-sync/daybook/internal/app"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/utils"
	"github.com/daybook-sync/daybook/models"
)

// syncBatch replays one client batch through the reconciliation engine.
// Note: per-action failures still produce HTTP 200; only a batch-level fault
// (nothing applied) maps to an error status.
func (h *Handler) syncBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncBatch").Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		log.Err(err).Str("func", "*Handler.syncBatch").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.ProcessBatch(ctx, userID, syncRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncBatch").Msg(app.MsgSyncBatchFailed)
		http.Error(w, app.MsgSyncBatchFailed, statusFromError(err))
		return
	}

	response := models.SyncBatchResponse{
		Success:  len(result.Failed) == 0,
		Results:  result,
		SyncedAt: time.Now().UTC(),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.syncStatus").Msg(app.MsgNoUserIDProvided)
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	status, err := h.services.StatusService.GetSyncStatus(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.syncStatus").Msg(app.MsgSyncStatusFailed)
		http.Error(w, app.MsgSyncStatusFailed, statusFromError(err))
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// ping is the unauthenticated reachability probe used by clients to detect
// connectivity transitions.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
