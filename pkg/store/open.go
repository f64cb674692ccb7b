package store

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// Open builds the backend selected by the configuration, wrapped in the LRU cache.
func Open(cfg *config.Config) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.StoreDriver {
	case config.StoreFile, "":
		backend, err = NewFileBackend(cfg.DataDir)
	case config.StoreMongo:
		backend, err = NewMongoBackend(cfg.MongoDBURL, cfg.DBName)
	case config.StoreRedis:
		backend, err = NewRedisBackend(cfg.RedisURL)
	case config.StoreMemory:
		backend = NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Almacenamiento '%s' listo", backend.Name()), "Store")

	// the memory driver gains nothing from a cache in front of it
	if cfg.StoreDriver == config.StoreMemory {
		return backend, nil
	}
	return NewCachedBackend(backend, cfg.CacheSize()), nil
}
