package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultChannel     = "rooms:events"
	subscriptionBuffer = 128
)

type Bridge struct {
	redis   *redis.Client
	channel string
	logger  *slog.Logger
}

func NewBridge(redisClient *redis.Client, channel string, logger *slog.Logger) *Bridge {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bridge{
		redis:   redisClient,
		channel: channel,
		logger:  logger.With("component", "events_bridge"),
	}
}

func (b *Bridge) Channel() string {
	return b.channel
}

func (b *Bridge) Publish(ctx context.Context, evt *Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := b.redis.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	b.logger.Debug("published room event",
		"event_id", evt.ID,
		"type", evt.Type,
		"room_sid", evt.Room.Sid)
	return nil
}

// Subscribe returns once Redis has confirmed the subscription, so events
// published after it returns are delivered.
func (b *Bridge) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := b.redis.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan *Event, subscriptionBuffer),
		logger: b.logger,
	}
	go sub.run()

	b.logger.Debug("subscribed to room events", "channel", b.channel)
	return sub, nil
}

type Subscription struct {
	pubsub    *redis.PubSub
	events    chan *Event
	logger    *slog.Logger
	closeOnce sync.Once
}

// Events is closed after Close or when the Redis connection is lost.
func (s *Subscription) Events() <-chan *Event {
	return s.events
}

func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.pubsub.Close()
	})
	return err
}

func (s *Subscription) run() {
	defer close(s.events)

	for msg := range s.pubsub.Channel() {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			s.logger.Error("unmarshal room event", "error", err)
			continue
		}

		select {
		case s.events <- &evt:
		default:
			s.logger.Warn("subscriber buffer full, dropping event", "event_id", evt.ID)
		}
	}
}
