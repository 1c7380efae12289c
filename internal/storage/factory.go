package storage

import (
	"fmt"

	"github.com/xtrnai/toolgate/internal/common"
	"github.com/xtrnai/toolgate/internal/config"
	"github.com/xtrnai/toolgate/internal/interfaces"
	"github.com/xtrnai/toolgate/internal/storage/badger"
	"github.com/xtrnai/toolgate/internal/storage/memory"
)

// NewStorageManager creates a new storage manager based on config.
func NewStorageManager(logger *common.Logger, cfg *config.Config) (interfaces.StorageManager, error) {
	switch cfg.Storage.Driver {
	case "", "badger":
		return badger.NewManager(logger, &cfg.Storage.Badger)
	case "memory":
		return memory.NewManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
