package di

import (
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/redis"
	"hotelier/shared/cache"

	"github.com/rs/zerolog/log"
)

// provideCache falls back to a cache that always misses when caching is off or Redis is unreachable.
func provideCache(cfg *config.Config, ot otel.Otel) cache.RedisCache {
	if !cfg.Cache.Enable {
		return cache.NewNoopCache()
	}

	client, err := redis.New(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Cache disabled, Redis is unreachable")

		return cache.NewNoopCache()
	}

	return cache.NewRedisCache(client, ot)
}

func provideEvents(cfg *config.Config) kafka.Client {
	if !cfg.External.Kafka.Enable || len(cfg.External.Kafka.Brokers) == 0 {
		return kafka.NewNoop()
	}

	return kafka.New(cfg)
}
