// Command projector projects stored records into JSON:API documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/custodia-labs/projector/internal/adapters/driven/config/env"
	"github.com/custodia-labs/projector/internal/adapters/driven/config/file"
	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/adapters/driven/storage/retry"
	"github.com/custodia-labs/projector/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/projector/internal/adapters/driving/cli"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/services"
	"github.com/custodia-labs/projector/internal/example"
	"github.com/custodia-labs/projector/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetInitializer(initialise)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// initialise wires the driven adapters into the core services.
func initialise(opts cli.Options) (*cli.Services, func(), error) {
	logger.Section("Startup")

	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config file: %s", fileStore.Path())

	config, err := env.NewOverlay(fileStore)
	if err != nil {
		return nil, nil, fmt.Errorf("reading environment: %w", err)
	}

	registry, err := example.NewRegistry(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building schema: %w", err)
	}

	store, closeStore, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}
	store = retry.NewStore(store, retry.DefaultOptions())

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	settings := services.NewSettingsService(config)
	return &cli.Services{
		Projection: services.NewProjectionService(registry, store, settings, services.NewMetrics(promReg)),
		Schema:     services.NewSchemaService(registry, settings),
		Settings:   settings,
		Records:    services.NewRecordService(registry, store, settings),
		Store:      store,
		Watcher:    fileStore,
		Gatherer:   promReg,
	}, closeStore, nil
}

// openStore opens the SQLite database, or a seeded memory store when
// opts.Memory is set.
func openStore(opts cli.Options) (driven.RecordStore, func(), error) {
	if opts.Memory {
		store := memory.NewRecordStore()
		n, err := example.Seed(context.Background(), store)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("memory store seeded with %d records", n)
		return store, func() {}, nil
	}

	db, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening record store: %w", err)
	}
	logger.Debug("record store: %s", db.Path())
	return db.RecordStore(), func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing record store: %v", err)
		}
	}, nil
}
