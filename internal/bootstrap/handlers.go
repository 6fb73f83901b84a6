package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/video-rooms/internal/events"
	"github.com/eleven-am/video-rooms/internal/provider"
	"github.com/eleven-am/video-rooms/internal/room"
	"github.com/eleven-am/video-rooms/internal/stats"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	RoomHandler   *room.Handler
	EventsHandler *events.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	rooms := e.Group("/rooms")
	params.EventsHandler.RegisterRoutes(rooms)
	params.RoomHandler.RegisterRoutes(rooms)

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideRoomHandler(client provider.Client, bridge *events.Bridge, store *stats.Store, logger *slog.Logger) *room.Handler {
	return room.NewHandler(client, bridge, store, logger.With("handler", "room"))
}

func ProvideEventsHandler(bridge *events.Bridge, logger *slog.Logger) *events.Handler {
	return events.NewHandler(bridge, logger.With("handler", "events"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideRoomHandler,
		ProvideEventsHandler,
	),
	fx.Invoke(RegisterRoutes),
)
