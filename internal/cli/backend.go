package cli

import (
	"context"
	"fmt"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/storage/filestore"
	"todo/internal/storage/googletasks"
	"todo/internal/storage/sqlitestore"
)

// OpenStore opens the storage backend selected by cfg.Backend.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(cfg.DataPath(),
			filestore.WithMaxBytes(cfg.MaxBytes),
			filestore.WithLogger(cfg.Logger),
		), nil
	case config.BackendSQLite:
		return sqlitestore.Open(ctx, cfg.DBPath())
	case config.BackendGTasks:
		return googletasks.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.Backend)
	}
}

// OpenService is the default ServiceFactory: it opens the configured store and
// hydrates a session from it.
func OpenService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("opened store", "backend", cfg.Backend)

	svc, err := service.Open(ctx, store, service.WithLogger(cfg.Logger))
	if err != nil {
		store.Close()
		return nil, err
	}
	return svc, nil
}
