package service

import (
	"github.com/daybook-sync/daybook/internal/config"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/store"
)

// Services bundles the server-side service layer.
type Services struct {
	AuthService   AuthService
	SyncService   SyncService
	StatusService StatusService
}

// NewServices wires every service to the shared repositories.
func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(repos.Users, cfg.Auth, logger),
		SyncService:   NewSyncService(repos, logger),
		StatusService: NewStatusService(repos, logger),
	}
}
