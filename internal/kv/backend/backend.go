// Package backend opens the key-value store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/database"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv/memory"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv/sqlstore"
)

// Open returns the configured store and a function releasing its resources.
func Open(cfg *config.Config) (kv.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		slog.Warn("using in-memory store, nothing will be persisted")
		return memory.New(), func() error { return nil }, nil

	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		slog.Info("using postgres store", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return sqlstore.New(db, sqlstore.DialectPostgres), db.Close, nil

	case config.BackendSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}

		slog.Info("using sqlite store", "path", cfg.Store.SQLitePath)

		return sqlstore.New(db, sqlstore.DialectSQLite), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
