package bootstrap

import (
	"log/slog"

	"github.com/eleven-am/video-rooms/internal/events"
	"github.com/eleven-am/video-rooms/internal/stats"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

func ProvideStatsStore(redisClient *redis.Client) *stats.Store {
	return stats.NewStore(redisClient)
}

func ProvideEventsBridge(redisClient *redis.Client, cfg *Config, logger *slog.Logger) *events.Bridge {
	return events.NewBridge(redisClient, cfg.EventsChannel, logger)
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideStatsStore,
		ProvideEventsBridge,
	),
)
