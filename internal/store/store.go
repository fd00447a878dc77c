package store

import (
	"context"
	"fmt"

	"pincheck/internal/config"
	"pincheck/internal/models"
)

// Store is the durable record sink shared by the collector and reporter.
// All writes are appends; prior entries are never rewritten or compacted.
type Store interface {
	AppendDetails(ctx context.Context, details []models.PincodeDetail) error
	AppendCheck(ctx context.Context, check models.PincodeCheck) error
	Details(ctx context.Context) ([]models.PincodeDetail, error)
	Checks(ctx context.Context) ([]models.PincodeCheck, error)
	HasSuccess(ctx context.Context, pincode string) (bool, error)
	Close() error
}

// Open selects a backend from config. The caller owns the open/close
// lifecycle.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "", "file":
		return OpenFileStore(cfg.StoreDir)
	case "postgres":
		return OpenDBStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
