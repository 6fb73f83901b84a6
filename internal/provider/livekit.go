package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eleven-am/video-rooms/internal/shared"
	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/twitchtv/twirp"
)

const (
	liveKitRoomType       = "group"
	liveKitAdminTokenTTL  = time.Minute
	liveKitRequestTimeout = 30 * time.Second
)

type LiveKitConfig struct {
	URL       string
	APIKey    string
	APISecret string
	TokenTTL  time.Duration
}

func (c LiveKitConfig) validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "url")
	}
	if c.APIKey == "" {
		missing = append(missing, "api key")
	}
	if c.APISecret == "" {
		missing = append(missing, "api secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: livekit %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// LiveKit has no completed-room state: rooms are looked up by sid through
// the active room list and completing a room deletes it.
type LiveKit struct {
	cfg   LiveKitConfig
	rooms livekit.RoomService
	now   func() time.Time
}

func NewLiveKit(cfg LiveKitConfig) (*LiveKit, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: liveKitRequestTimeout}
	return newLiveKit(cfg, livekit.NewRoomServiceProtobufClient(apiURL(cfg.URL), httpClient)), nil
}

func newLiveKit(cfg LiveKitConfig, rooms livekit.RoomService) *LiveKit {
	return &LiveKit{
		cfg:   cfg,
		rooms: rooms,
		now:   time.Now,
	}
}

func (l *LiveKit) Name() string {
	return NameLiveKit
}

func (l *LiveKit) IssueToken(roomName, identity string) (string, error) {
	at := auth.NewAccessToken(l.cfg.APIKey, l.cfg.APISecret)

	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}

	at.SetIdentity(identity).
		SetValidFor(tokenTTL(l.cfg.TokenTTL)).
		SetVideoGrant(grant)

	token, err := at.ToJWT()
	if err != nil {
		return "", fmt.Errorf("sign livekit access token: %w", err)
	}
	return token, nil
}

func (l *LiveKit) CreateRoom(ctx context.Context, name string) (*RoomRecord, error) {
	if name == "" {
		name = "room_" + shared.NewID("")
	}

	ctx, err := l.authorize(ctx, &auth.VideoGrant{RoomCreate: true})
	if err != nil {
		return nil, err
	}

	room, err := l.rooms.CreateRoom(ctx, &livekit.CreateRoomRequest{Name: name})
	if err != nil {
		return nil, translateLiveKitError(err)
	}
	return liveKitRecord(room, StatusInProgress), nil
}

func (l *LiveKit) ListActiveRooms(ctx context.Context, limit int) ([]RoomRecord, error) {
	rooms, err := l.listRooms(ctx)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(rooms) > limit {
		rooms = rooms[:limit]
	}

	records := make([]RoomRecord, 0, len(rooms))
	for _, room := range rooms {
		records = append(records, *liveKitRecord(room, StatusInProgress))
	}
	return records, nil
}

func (l *LiveKit) FetchRoom(ctx context.Context, sid string) (*RoomRecord, error) {
	room, err := l.findRoom(ctx, sid)
	if err != nil {
		return nil, err
	}
	return liveKitRecord(room, StatusInProgress), nil
}

func (l *LiveKit) CompleteRoom(ctx context.Context, sid string) (*RoomRecord, error) {
	room, err := l.findRoom(ctx, sid)
	if err != nil {
		return nil, err
	}

	ctx, err = l.authorize(ctx, &auth.VideoGrant{RoomCreate: true})
	if err != nil {
		return nil, err
	}

	if _, err := l.rooms.DeleteRoom(ctx, &livekit.DeleteRoomRequest{Room: room.GetName()}); err != nil {
		return nil, translateLiveKitError(err)
	}

	rec := liveKitRecord(room, StatusCompleted)
	ended := l.now().UTC()
	rec.EndTime = &ended
	rec.DateUpdated = &ended
	if rec.DateCreated != nil {
		rec.Duration = int(ended.Sub(*rec.DateCreated).Seconds())
	}
	return rec, nil
}

func (l *LiveKit) ListConnectedParticipants(ctx context.Context, roomName string) ([]Participant, error) {
	ctx, err := l.authorize(ctx, &auth.VideoGrant{RoomAdmin: true, Room: roomName})
	if err != nil {
		return nil, err
	}

	resp, err := l.rooms.ListParticipants(ctx, &livekit.ListParticipantsRequest{Room: roomName})
	if err != nil {
		return nil, translateLiveKitError(err)
	}

	participants := make([]Participant, 0, len(resp.GetParticipants()))
	for _, p := range resp.GetParticipants() {
		if !liveKitConnected(p.GetState()) {
			continue
		}
		participants = append(participants, Participant{
			Sid:      p.GetSid(),
			Identity: p.GetIdentity(),
			Status:   ParticipantConnected,
		})
	}
	return participants, nil
}

func (l *LiveKit) Ping(ctx context.Context) error {
	_, err := l.listRooms(ctx)
	return err
}

func (l *LiveKit) listRooms(ctx context.Context) ([]*livekit.Room, error) {
	ctx, err := l.authorize(ctx, &auth.VideoGrant{RoomList: true})
	if err != nil {
		return nil, err
	}

	resp, err := l.rooms.ListRooms(ctx, &livekit.ListRoomsRequest{})
	if err != nil {
		return nil, translateLiveKitError(err)
	}
	return resp.GetRooms(), nil
}

func (l *LiveKit) findRoom(ctx context.Context, sid string) (*livekit.Room, error) {
	rooms, err := l.listRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.GetSid() == sid {
			return room, nil
		}
	}
	return nil, notFound("room %s not found", sid)
}

// authorize attaches a short-lived admin token to the outgoing twirp request.
func (l *LiveKit) authorize(ctx context.Context, grant *auth.VideoGrant) (context.Context, error) {
	at := auth.NewAccessToken(l.cfg.APIKey, l.cfg.APISecret)
	at.SetVideoGrant(grant).SetValidFor(liveKitAdminTokenTTL)

	token, err := at.ToJWT()
	if err != nil {
		return nil, fmt.Errorf("sign livekit admin token: %w", err)
	}

	header := make(http.Header)
	header.Set("Authorization", "Bearer "+token)
	return twirp.WithHTTPRequestHeaders(ctx, header)
}

// liveKitConnected matches Twilio's "connected": JOINING participants have not
// finished signalling yet.
func liveKitConnected(state livekit.ParticipantInfo_State) bool {
	return state == livekit.ParticipantInfo_JOINED || state == livekit.ParticipantInfo_ACTIVE
}

func liveKitRecord(room *livekit.Room, status string) *RoomRecord {
	rec := &RoomRecord{
		Sid:             room.GetSid(),
		UniqueName:      room.GetName(),
		Status:          status,
		Type:            liveKitRoomType,
		MaxParticipants: int(room.GetMaxParticipants()),
	}
	if ts := room.GetCreationTime(); ts > 0 {
		created := time.Unix(ts, 0).UTC()
		rec.DateCreated = &created
	}
	return rec
}

func translateLiveKitError(err error) error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return &Error{
			Status:  twirp.ServerHTTPStatusFromErrorCode(twerr.Code()),
			Message: fmt.Sprintf("%s: %s", twerr.Code(), twerr.Msg()),
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{Message: err.Error()}
}

func apiURL(u string) string {
	switch {
	case strings.HasPrefix(u, "wss://"):
		return "https://" + strings.TrimPrefix(u, "wss://")
	case strings.HasPrefix(u, "ws://"):
		return "http://" + strings.TrimPrefix(u, "ws://")
	default:
		return u
	}
}
