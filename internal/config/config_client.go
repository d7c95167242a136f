package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the daybook server base URL.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage contains local queue storage settings for the client.
type ClientStorage struct {
	// QueuePath is the SQLite file backing the durable action queue.
	QueuePath string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
	// FlushInterval defines how often a non-empty queue is retried.
	FlushInterval time.Duration
	// SyncDebounce defines the delay between an online transition and the
	// automatic flush it schedules.
	SyncDebounce time.Duration
}

// ClientConfig is the client-specific view assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// Defaults applied by GetClientConfig for fields left unset by every source.
const (
	defaultServerURL      = "http://localhost:8080"
	defaultQueuePath      = "daybook-queue.db"
	defaultRequestTimeout = 15 * time.Second
	defaultSyncDebounce   = 2 * time.Second
	defaultProbeInterval  = 10 * time.Second
	defaultFlushInterval  = 5 * time.Minute
)

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration. Unset fields fall back to local
// development defaults so the client runs with zero configuration.
func GetClientConfig() (*ClientConfig, error) {
	base, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading base config: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      base.Client.ServerURL,
			RequestTimeout: base.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			QueuePath: base.Client.QueuePath,
		},
		Workers: ClientWorkers{
			ProbeInterval: base.Workers.ProbeInterval,
			FlushInterval: base.Workers.FlushInterval,
			SyncDebounce:  base.Client.SyncDebounce,
		},
	}

	if cfg.Adapter.ServerURL == "" {
		cfg.Adapter.ServerURL = defaultServerURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.QueuePath == "" {
		cfg.Storage.QueuePath = defaultQueuePath
	}
	if cfg.Workers.SyncDebounce <= 0 {
		cfg.Workers.SyncDebounce = defaultSyncDebounce
	}
	if cfg.Workers.ProbeInterval <= 0 {
		cfg.Workers.ProbeInterval = defaultProbeInterval
	}
	if cfg.Workers.FlushInterval <= 0 {
		cfg.Workers.FlushInterval = defaultFlushInterval
	}

	return cfg, cfg.validate()
}
