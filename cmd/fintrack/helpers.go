package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/boltpappu0224/finance-tracker/internal/merchant"
	"github.com/boltpappu0224/finance-tracker/internal/storage"
)

// newRegistry builds the merchant registry from the static seed catalog.
func newRegistry() (*merchant.Registry, error) {
	registry, err := merchant.NewRegistry(merchant.SeedCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to load merchant catalog: %w", err)
	}
	return registry, nil
}

// openStorage opens the transaction database and ensures the schema exists.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}
