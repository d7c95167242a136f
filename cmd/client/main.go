// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/daybook-sync/daybook/internal/adapter"
	"github.com/daybook-sync/daybook/internal/client"
	"github.com/daybook-sync/daybook/internal/config"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
	"github.com/daybook-sync/daybook/internal/store"
	"github.com/daybook-sync/daybook/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("daybook-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local queue database")
	}
	defer db.Close()

	queue, err := store.NewActionQueueStore(ctx, db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating action queue store")
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.ServerURL,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	services := service.NewClientServices(queue, serverAdapter, cfg.Workers, log)
	clientWorkers := workers.NewClientWorkers(services, cfg.Workers, log)

	app, err := client.NewApp(services, serverAdapter, clientWorkers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
