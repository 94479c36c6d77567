package cmd

import (
	"fmt"

	"stock-sync/core/cache"
	"stock-sync/core/config"
	"stock-sync/core/database"
	"stock-sync/core/logger"
	"stock-sync/core/rowstore"
	"stock-sync/core/storage"
	"stock-sync/feature/inventory"
	"stock-sync/feature/inventory/remote"

	"go.uber.org/zap"
)

// runtime bundles everything a command needs after bootstrap.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   rowstore.Store
	service *inventory.Service
}

// newRuntime loads configuration and wires the logger, row store, remote
// client and inventory service. Every command goes through here so driver
// selection behaves identically for the server and the batch jobs.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := newRowStore(cfg, l)
	if err != nil {
		return nil, err
	}

	client, err := remote.NewClient(cfg.Remote, l)
	if err != nil {
		return nil, err
	}

	svc := inventory.NewService(store, client, cache.New(), l, cfg.Inventory)
	return &runtime{cfg: cfg, logger: l, store: store, service: svc}, nil
}

// newRowStore builds the configured row store driver.
func newRowStore(cfg *config.Config, l *zap.Logger) (rowstore.Store, error) {
	if !cfg.Store.IsValidDriver() {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	switch cfg.Store.Driver {
	case rowstore.DriverMemory:
		l.Warn("Using in-memory row store, data will not survive the process")
		return rowstore.NewMemoryStore(), nil

	case rowstore.DriverMySQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := rowstore.NewSQLStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate row store schema: %w", err)
		}
		return store, nil

	default:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return rowstore.NewObjectStore(client, cfg.Storage.Bucket, cfg.Store.Prefix), nil
	}
}
