package events

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/eleven-am/video-rooms/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	bridge *Bridge
	logger *slog.Logger
}

func NewHandler(bridge *Bridge, logger *slog.Logger) *Handler {
	return &Handler{
		bridge: bridge,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/events", h.HandleConnect)
}

// HandleConnect godoc
// @Summary      Stream room events
// @Description  Streams room.created and room.completed events. Sends Server-Sent Events when the client accepts text/event-stream, otherwise upgrades to a WebSocket carrying one JSON event per message.
// @Tags         rooms
// @Produce      text/event-stream
// @Success      200  {object}  events.Event
// @Failure      500  {object}  shared.ErrorEnvelope
// @Router       /rooms/events [get]
func (h *Handler) HandleConnect(c echo.Context) error {
	accept := c.Request().Header.Get("Accept")
	if strings.Contains(accept, "text/event-stream") {
		return h.handleSSE(c)
	}
	return h.handleWebSocket(c)
}

func (h *Handler) handleSSE(c echo.Context) error {
	ctx := c.Request().Context()

	conn, err := NewSSEConn(c.Response())
	if err != nil {
		return shared.InternalError("Unable to open event stream", err.Error())
	}

	sub, err := h.bridge.Subscribe(ctx)
	if err != nil {
		h.logger.Error("failed to subscribe to room events", "error", err)
		return shared.InternalError("Unable to subscribe to room events", err.Error())
	}
	defer sub.Close()

	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	h.logger.Info("event stream connected (SSE)", "remote", c.RealIP())
	_ = conn.Run(ctx, sub.Events())
	h.logger.Info("event stream disconnected (SSE)", "remote", c.RealIP())
	return nil
}

func (h *Handler) handleWebSocket(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.bridge.Subscribe(ctx)
	if err != nil {
		h.logger.Error("failed to subscribe to room events", "error", err)
		return shared.InternalError("Unable to subscribe to room events", err.Error())
	}
	defer sub.Close()

	ws, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return nil
	}

	conn := NewWSConn(ws, h.logger)

	h.logger.Info("event stream connected (WebSocket)", "remote", c.RealIP())
	conn.Run(ctx, sub.Events())
	h.logger.Info("event stream disconnected (WebSocket)", "remote", c.RealIP())
	return nil
}
