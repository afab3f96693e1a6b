package recordstore

import (
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	"hotelier/infras/s3"

	"github.com/rs/zerolog/log"
)

// NewBackend opens the backend selected by STORE_DRIVER.
func NewBackend(cfg *config.Config, ot otel.Otel) (Backend, error) {
	name := cfg.Store.DocumentName

	log.Info().Str("driver", cfg.Store.Driver).Str("document", name).Msg("Opening record store")

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return NewMemoryBackend(), nil
	case config.StoreDriverFile:
		return NewFileBackend(cfg.Store.FilePath)
	case config.StoreDriverPostgres:
		db, err := postgres.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres record store: %w", err)
		}

		return NewPostgresBackend(db, name), nil
	case config.StoreDriverRedis:
		client, err := redis.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis record store: %w", err)
		}

		return NewRedisBackend(client, name), nil
	case config.StoreDriverS3:
		client, err := s3.New(cfg, ot)
		if err != nil {
			return nil, fmt.Errorf("failed to open s3 record store: %w", err)
		}

		return NewS3Backend(client, name), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
