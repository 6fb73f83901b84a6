// Package room serves the /rooms HTTP surface on top of a provider.Client.
package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eleven-am/video-rooms/internal/dto"
	"github.com/eleven-am/video-rooms/internal/events"
	"github.com/eleven-am/video-rooms/internal/provider"
	"github.com/eleven-am/video-rooms/internal/shared"
	"github.com/eleven-am/video-rooms/internal/stats"
	"github.com/labstack/echo/v4"
)

const (
	ActiveRoomsLimit = 20

	noActiveRoomsMessage = "No active rooms found"
)

type EventPublisher interface {
	Publish(ctx context.Context, evt *events.Event) error
}

type CallRecorder interface {
	Record(ctx context.Context, op string, elapsed time.Duration, callErr error) error
}

type Handler struct {
	client provider.Client
	events EventPublisher
	stats  CallRecorder
	logger *slog.Logger
}

// NewHandler accepts nil publisher and recorder; the matching side effects
// are then skipped.
func NewHandler(client provider.Client, publisher EventPublisher, recorder CallRecorder, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		events: publisher,
		stats:  recorder,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/token", h.Token)
	g.POST("/create", h.Create)
	g.POST("/participants", h.Participants)
	g.GET("", h.List)
	g.GET("/", h.List)
	g.GET("/:sid", h.Fetch)
	g.POST("/:sid/complete", h.Complete)
}

// Token godoc
// @Summary      Issue an access token
// @Description  Signs a token that lets username join roomName. The request body is echoed back with the token added.
// @Tags         rooms
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request  body      dto.TokenRequest  true  "Room and identity"
// @Success      200      {object}  dto.TokenResponse
// @Failure      400      {object}  shared.ErrorEnvelope
// @Failure      500      {object}  shared.ErrorEnvelope
// @Router       /rooms/token [post]
func (h *Handler) Token(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return shared.BadRequest("Invalid request body", err.Error())
	}

	roomName := shared.StringField(body, "roomName")
	username := shared.StringField(body, "username")

	started := time.Now()
	token, err := h.client.IssueToken(roomName, username)
	h.record(c.Request().Context(), stats.OpIssueToken, started, err)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err, "room_name", roomName)
		return shared.InternalError(fmt.Sprintf("Unable to issue token for room=%s", roomName), provider.Describe(err))
	}

	body["token"] = token
	return c.JSON(http.StatusOK, body)
}

// Create godoc
// @Summary      Create a room
// @Description  Creates a group room. An empty roomName lets the vendor assign the name. tracks and token are accepted and ignored.
// @Tags         rooms
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request  body      dto.CreateRoomRequest  true  "Room details"
// @Success      200      {object}  dto.RoomRecord
// @Failure      400      {object}  shared.ErrorEnvelope
// @Router       /rooms/create [post]
func (h *Handler) Create(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return shared.BadRequest("Unable to create new room with name=", err.Error())
	}
	roomName := shared.StringField(body, "roomName")

	ctx := c.Request().Context()

	started := time.Now()
	rec, err := h.client.CreateRoom(ctx, roomName)
	h.record(ctx, stats.OpCreateRoom, started, err)
	if err != nil {
		h.logger.Error("failed to create room", "error", err, "room_name", roomName)
		return shared.BadRequest(fmt.Sprintf("Unable to create new room with name=%s", roomName), provider.Describe(err))
	}

	h.publish(ctx, events.TypeRoomCreated, toSummary(rec))
	return c.JSON(http.StatusOK, toRecord(rec))
}

// List godoc
// @Summary      List active rooms
// @Description  Returns up to 20 in-progress rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  dto.ActiveRoomsResponse
// @Failure      400  {object}  shared.ErrorEnvelope
// @Router       /rooms/ [get]
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()

	started := time.Now()
	records, err := h.client.ListActiveRooms(ctx, ActiveRoomsLimit)
	h.record(ctx, stats.OpListRooms, started, err)
	if err != nil {
		h.logger.Error("failed to list active rooms", "error", err)
		return shared.BadRequest("Unable to list active rooms", provider.Describe(err))
	}

	if len(records) > ActiveRoomsLimit {
		records = records[:ActiveRoomsLimit]
	}

	if len(records) == 0 {
		return c.JSON(http.StatusOK, dto.ActiveRoomsResponse{
			Message:     noActiveRoomsMessage,
			ActiveRooms: []dto.Room{},
		})
	}

	rooms := make([]dto.Room, len(records))
	for i := range records {
		rooms[i] = toSummary(&records[i])
	}

	return c.JSON(http.StatusOK, dto.ActiveRoomsResponse{ActiveRooms: rooms})
}

// Fetch godoc
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        sid  path      string  true  "Room sid"
// @Success      200  {object}  dto.RoomResponse
// @Failure      400  {object}  shared.ErrorEnvelope
// @Router       /rooms/{sid} [get]
func (h *Handler) Fetch(c echo.Context) error {
	sid := c.Param("sid")
	ctx := c.Request().Context()

	started := time.Now()
	rec, err := h.client.FetchRoom(ctx, sid)
	h.record(ctx, stats.OpFetchRoom, started, err)
	if err != nil {
		h.logger.Error("failed to fetch room", "error", err, "sid", sid)
		return shared.BadRequest(fmt.Sprintf("Unable to get room with sid=%s", sid), provider.Describe(err))
	}

	return c.JSON(http.StatusOK, dto.RoomResponse{Room: toRecord(rec)})
}

// Complete godoc
// @Summary      Complete a room
// @Description  Ends an in-progress room. Completing a room twice fails.
// @Tags         rooms
// @Produce      json
// @Param        sid  path      string  true  "Room sid"
// @Success      200  {object}  dto.ClosedRoomResponse
// @Failure      400  {object}  shared.ErrorEnvelope
// @Router       /rooms/{sid}/complete [post]
func (h *Handler) Complete(c echo.Context) error {
	sid := c.Param("sid")
	ctx := c.Request().Context()

	started := time.Now()
	rec, err := h.client.CompleteRoom(ctx, sid)
	h.record(ctx, stats.OpCompleteRoom, started, err)
	if err != nil {
		h.logger.Error("failed to complete room", "error", err, "sid", sid)
		return shared.BadRequest(fmt.Sprintf("Unable to complete room with sid=%s", sid), provider.Describe(err))
	}

	closed := toSummary(rec)
	h.publish(ctx, events.TypeRoomCompleted, closed)
	return c.JSON(http.StatusOK, dto.ClosedRoomResponse{ClosedRoom: closed})
}

// Participants godoc
// @Summary      List connected participants
// @Tags         rooms
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        request  body      dto.ParticipantsRequest  true  "Room name"
// @Success      200      {object}  dto.ParticipantsResponse
// @Failure      400      {object}  shared.ErrorEnvelope
// @Failure      500      {object}  shared.ErrorEnvelope
// @Router       /rooms/participants [post]
func (h *Handler) Participants(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return shared.BadRequest("Invalid request body", err.Error())
	}
	roomName := shared.StringField(body, "roomName")

	ctx := c.Request().Context()

	started := time.Now()
	participants, err := h.client.ListConnectedParticipants(ctx, roomName)
	h.record(ctx, stats.OpListParticipants, started, err)
	if err != nil {
		h.logger.Error("failed to list participants", "error", err, "room_name", roomName)
		return shared.InternalError(fmt.Sprintf("Unable to list participants for room=%s", roomName), provider.Describe(err))
	}

	resp := dto.ParticipantsResponse{Participants: make([]dto.Participant, len(participants))}
	for i, p := range participants {
		resp.Participants[i] = toParticipant(p)
	}

	return c.JSON(http.StatusOK, resp)
}

// decodeBody reads a JSON or form-encoded body. Every field is kept so the
// token reply can echo it back.
func decodeBody(c echo.Context) (map[string]any, error) {
	req := c.Request()

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		if err := req.ParseForm(); err != nil {
			return nil, err
		}
		return formBody(req.PostForm), nil
	}

	body := map[string]any{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// formBody flattens single-valued fields to strings; repeated fields become
// arrays.
func formBody(form url.Values) map[string]any {
	body := make(map[string]any, len(form))
	for key, values := range form {
		if len(values) == 1 {
			body[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		body[key] = list
	}
	return body
}

// publish outlives the request so a client hanging up does not drop the event.
func (h *Handler) publish(ctx context.Context, t events.Type, room dto.Room) {
	if h.events == nil {
		return
	}
	evt := events.NewEvent(t, room)
	if err := h.events.Publish(context.WithoutCancel(ctx), evt); err != nil {
		h.logger.Warn("failed to publish room event", "error", err, "type", t, "sid", room.Sid)
	}
}

func (h *Handler) record(ctx context.Context, op string, started time.Time, callErr error) {
	if h.stats == nil {
		return
	}
	if err := h.stats.Record(context.WithoutCancel(ctx), op, time.Since(started), callErr); err != nil {
		h.logger.Warn("failed to record call stats", "error", err, "operation", op)
	}
}
