package service

import (
	"context"
	"sync"

	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/logger"
)

// connectivityMonitor tracks server reachability via the unauthenticated
// ping endpoint and fires a callback on every offline/online transition.
type connectivityMonitor struct {
	adapter  adapter.ServerAdapter
	onChange func(online bool)

	mu     sync.RWMutex
	online bool

	logger *logger.Logger
}

// NewConnectivityMonitor builds a monitor that starts in the offline state;
// the first successful probe flips it online and fires onChange.
func NewConnectivityMonitor(serverAdapter adapter.ServerAdapter, onChange func(online bool), log *logger.Logger) ConnectivityMonitor {
	return &connectivityMonitor{
		adapter:  serverAdapter,
		onChange: onChange,
		logger:   log,
	}
}

func (m *connectivityMonitor) Probe(ctx context.Context) bool {
	online := m.adapter.Ping(ctx) == nil

	m.mu.Lock()
	changed := online != m.online
	m.online = online
	m.mu.Unlock()

	if changed {
		m.logger.Info().Bool("online", online).Msg("connectivity changed")
		if m.onChange != nil {
			m.onChange(online)
		}
	}

	return online
}

func (m *connectivityMonitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}
