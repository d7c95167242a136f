package adapter

import (
	"context"

	"github.com/daybook-sync/daybook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the daybook server. Implementations
// hold the session token after a successful Register or Login and attach it
// to every subsequent call.
type ServerAdapter interface {
	// Register creates an account and starts a session.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates and starts a session.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// SubmitBatch sends the full pending queue and returns the server's
	// per-action outcome report. A returned error means the batch was not
	// applied at all and every action stays queued.
	SubmitBatch(ctx context.Context, request models.SyncRequest) (models.SyncResult, error)

	// GetSyncStatus fetches the user's reconciled-state summary.
	GetSyncStatus(ctx context.Context) (models.SyncStatus, error)

	// Ping probes server reachability without authentication.
	Ping(ctx context.Context) error

	// SetToken replaces the session token.
	SetToken(token string)

	// Token returns the current session token, empty when logged out.
	Token() string
}
