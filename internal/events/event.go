// Package events fans room lifecycle changes out to subscribers through a
// Redis pub/sub channel.
package events

import (
	"time"

	"github.com/eleven-am/video-rooms/internal/dto"
	"github.com/eleven-am/video-rooms/internal/shared"
)

type Type string

const (
	TypeRoomCreated   Type = "room.created"
	TypeRoomCompleted Type = "room.completed"
)

type Event struct {
	ID         string    `json:"id" example:"evt_0f3c9a7e2b1d4c5e8f6a7b8c9d0e1f2a"`
	Type       Type      `json:"type" example:"room.created" enums:"room.created,room.completed"`
	Room       dto.Room  `json:"room"`
	OccurredAt time.Time `json:"occurredAt" example:"2024-01-15T10:30:00Z"`
}

func NewEvent(t Type, room dto.Room) *Event {
	return &Event{
		ID:         shared.NewID("evt_"),
		Type:       t,
		Room:       room,
		OccurredAt: time.Now().UTC(),
	}
}
