// Package provider adapts video-conferencing vendors behind a single Client
// used by every rooms handler. One Client is built at start-up and shared for
// the lifetime of the process.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	NameTwilio  = "twilio"
	NameLiveKit = "livekit"

	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	ParticipantConnected    = "connected"
	ParticipantDisconnected = "disconnected"

	DefaultTokenTTL = time.Hour
)

var (
	ErrMissingCredentials = errors.New("missing vendor credentials")
	ErrUnknownProvider    = errors.New("unknown video provider")
)

type Client interface {
	Name() string
	IssueToken(roomName, identity string) (string, error)
	CreateRoom(ctx context.Context, name string) (*RoomRecord, error)
	ListActiveRooms(ctx context.Context, limit int) ([]RoomRecord, error)
	FetchRoom(ctx context.Context, sid string) (*RoomRecord, error)
	CompleteRoom(ctx context.Context, sid string) (*RoomRecord, error)
	ListConnectedParticipants(ctx context.Context, roomName string) ([]Participant, error)
	Ping(ctx context.Context) error
}

type RoomRecord struct {
	Sid             string
	UniqueName      string
	Status          string
	Type            string
	MaxParticipants int
	Duration        int
	DateCreated     *time.Time
	DateUpdated     *time.Time
	EndTime         *time.Time
	URL             string
}

type Participant struct {
	Sid      string
	Identity string
	Status   string
}

// Error is a failed vendor call. Status carries the vendor's HTTP status when
// one was returned.
type Error struct {
	Status   int    `json:"status,omitempty"`
	Code     int    `json:"code,omitempty"`
	Message  string `json:"message"`
	MoreInfo string `json:"moreInfo,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("vendor error %d (status %d): %s", e.Code, e.Status, e.Message)
	}
	if e.Status != 0 {
		return fmt.Sprintf("vendor error (status %d): %s", e.Status, e.Message)
	}
	return "vendor error: " + e.Message
}

func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func notFound(format string, args ...any) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Describe returns the JSON-safe detail of err for error envelopes.
func Describe(err error) any {
	if err == nil {
		return nil
	}
	var vendorErr *Error
	if errors.As(err, &vendorErr) {
		return vendorErr
	}
	return &Error{Message: err.Error()}
}

// Config selects and configures the vendor implementation.
type Config struct {
	Provider string

	TwilioAccountSID string
	TwilioAPIKey     string
	TwilioAPISecret  string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	TokenTTL time.Duration
}

func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", NameTwilio:
		client, err := NewTwilio(TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			APIKey:     cfg.TwilioAPIKey,
			APISecret:  cfg.TwilioAPISecret,
			TokenTTL:   cfg.TokenTTL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case NameLiveKit:
		client, err := NewLiveKit(LiveKitConfig{
			URL:       cfg.LiveKitURL,
			APIKey:    cfg.LiveKitAPIKey,
			APISecret: cfg.LiveKitAPISecret,
			TokenTTL:  cfg.TokenTTL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func tokenTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTokenTTL
	}
	return ttl
}
