package bootstrap

import (
	"github.com/eleven-am/video-rooms/internal/provider"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func ProvideVendorClient(cfg *Config) (provider.Client, error) {
	return provider.New(cfg.ProviderConfig())
}

var InfrastructureModule = fx.Options(
	fx.Provide(
		ProvideRedisClient,
		ProvideVendorClient,
	),
)
