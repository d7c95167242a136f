package service

import (
	"context"

	"github.com/daybook-sync/daybook/models"
)

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService replays batches of offline actions against server state.
type SyncService interface {
	// ProcessBatch applies every action of the request for userID inside a
	// single transaction and reports a per-action outcome. One failing
	// action never aborts the rest of the batch. A non-nil error means the
	// batch as a whole could not be applied and nothing was persisted.
	ProcessBatch(ctx context.Context, userID int64, request models.SyncRequest) (models.SyncResult, error)
}

// StatusService summarizes a user's reconciled state.
type StatusService interface {
	GetSyncStatus(ctx context.Context, userID int64) (models.SyncStatus, error)
}
