package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	"github.com/twilio/twilio-go/client/jwt"
	video "github.com/twilio/twilio-go/rest/video/v1"
)

const twilioRoomType = "group"

// videoAPI is the subset of the Twilio Video v1 service the adapter calls.
type videoAPI interface {
	CreateRoom(params *video.CreateRoomParams) (*video.VideoV1Room, error)
	ListRoom(params *video.ListRoomParams) ([]video.VideoV1Room, error)
	FetchRoom(Sid string) (*video.VideoV1Room, error)
	UpdateRoom(Sid string, params *video.UpdateRoomParams) (*video.VideoV1Room, error)
	ListRoomParticipant(RoomSid string, params *video.ListRoomParticipantParams) ([]video.VideoV1RoomParticipant, error)
}

type TwilioConfig struct {
	AccountSID string
	APIKey     string
	APISecret  string
	TokenTTL   time.Duration
}

func (c TwilioConfig) validate() error {
	var missing []string
	if c.AccountSID == "" {
		missing = append(missing, "account sid")
	}
	if c.APIKey == "" {
		missing = append(missing, "api key")
	}
	if c.APISecret == "" {
		missing = append(missing, "api secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: twilio %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

type Twilio struct {
	cfg   TwilioConfig
	video videoAPI
}

func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.APIKey,
		Password:   cfg.APISecret,
		AccountSid: cfg.AccountSID,
	})
	return newTwilio(cfg, rest.VideoV1), nil
}

func newTwilio(cfg TwilioConfig, api videoAPI) *Twilio {
	return &Twilio{cfg: cfg, video: api}
}

func (t *Twilio) Name() string {
	return NameTwilio
}

func (t *Twilio) IssueToken(roomName, identity string) (string, error) {
	token := jwt.CreateAccessToken(jwt.AccessTokenParams{
		AccountSid:    t.cfg.AccountSID,
		SigningKeySid: t.cfg.APIKey,
		Secret:        t.cfg.APISecret,
		Identity:      identity,
		Ttl:           tokenTTL(t.cfg.TokenTTL).Seconds(),
	})
	token.AddGrant(&jwt.VideoGrant{Room: roomName})

	signed, err := token.ToJwt()
	if err != nil {
		return "", fmt.Errorf("sign twilio access token: %w", err)
	}
	return signed, nil
}

// CreateRoom leaves the unique name unset when name is empty so Twilio
// assigns the room sid as its name.
func (t *Twilio) CreateRoom(ctx context.Context, name string) (*RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &video.CreateRoomParams{}
	if name != "" {
		params.SetUniqueName(name)
	}
	params.SetType(twilioRoomType)

	room, err := t.video.CreateRoom(params)
	if err != nil {
		return nil, translateTwilioError(err)
	}
	return decodeTwilioRoom(room)
}

func (t *Twilio) ListActiveRooms(ctx context.Context, limit int) ([]RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &video.ListRoomParams{}
	params.SetStatus(StatusInProgress)
	params.SetLimit(limit)
	params.SetPageSize(limit)

	rooms, err := t.video.ListRoom(params)
	if err != nil {
		return nil, translateTwilioError(err)
	}

	records := make([]RoomRecord, 0, len(rooms))
	for i := range rooms {
		rec, err := decodeTwilioRoom(&rooms[i])
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (t *Twilio) FetchRoom(ctx context.Context, sid string) (*RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	room, err := t.video.FetchRoom(sid)
	if err != nil {
		return nil, translateTwilioError(err)
	}
	return decodeTwilioRoom(room)
}

func (t *Twilio) CompleteRoom(ctx context.Context, sid string) (*RoomRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &video.UpdateRoomParams{}
	params.SetStatus(StatusCompleted)

	room, err := t.video.UpdateRoom(sid, params)
	if err != nil {
		return nil, translateTwilioError(err)
	}
	return decodeTwilioRoom(room)
}

func (t *Twilio) ListConnectedParticipants(ctx context.Context, roomName string) ([]Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &video.ListRoomParticipantParams{}
	params.SetStatus(ParticipantConnected)

	participants, err := t.video.ListRoomParticipant(roomName, params)
	if err != nil {
		return nil, translateTwilioError(err)
	}

	result := make([]Participant, 0, len(participants))
	for i := range participants {
		result = append(result, decodeTwilioParticipant(&participants[i]))
	}
	return result, nil
}

func (t *Twilio) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &video.ListRoomParams{}
	params.SetStatus(StatusInProgress)
	params.SetLimit(1)
	params.SetPageSize(1)

	if _, err := t.video.ListRoom(params); err != nil {
		return translateTwilioError(err)
	}
	return nil
}

// deref returns the zero value for fields Twilio omitted.
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func decodeTwilioRoom(room *video.VideoV1Room) (*RoomRecord, error) {
	if room == nil {
		return nil, &Error{Message: "empty room in vendor response"}
	}

	return &RoomRecord{
		Sid:             deref(room.Sid),
		UniqueName:      deref(room.UniqueName),
		Status:          string(deref(room.Status)),
		Type:            string(deref(room.Type)),
		MaxParticipants: room.MaxParticipants,
		Duration:        deref(room.Duration),
		DateCreated:     room.DateCreated,
		DateUpdated:     room.DateUpdated,
		EndTime:         room.EndTime,
		URL:             deref(room.Url),
	}, nil
}

func decodeTwilioParticipant(p *video.VideoV1RoomParticipant) Participant {
	return Participant{
		Sid:      deref(p.Sid),
		Identity: deref(p.Identity),
		Status:   string(deref(p.Status)),
	}
}

func translateTwilioError(err error) error {
	var restErr *twclient.TwilioRestError
	if errors.As(err, &restErr) {
		return &Error{
			Status:   restErr.Status,
			Code:     restErr.Code,
			Message:  restErr.Message,
			MoreInfo: restErr.MoreInfo,
		}
	}
	return &Error{Message: err.Error()}
}
