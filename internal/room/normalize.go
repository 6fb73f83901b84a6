package room

import (
	"time"

	"github.com/eleven-am/video-rooms/internal/dto"
	"github.com/eleven-am/video-rooms/internal/provider"
)

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func toRecord(rec *provider.RoomRecord) dto.RoomRecord {
	return dto.RoomRecord{
		Sid:             rec.Sid,
		UniqueName:      rec.UniqueName,
		Status:          rec.Status,
		Type:            rec.Type,
		MaxParticipants: rec.MaxParticipants,
		Duration:        rec.Duration,
		DateCreated:     formatTime(rec.DateCreated),
		DateUpdated:     formatTime(rec.DateUpdated),
		EndTime:         formatTime(rec.EndTime),
		URL:             rec.URL,
	}
}

func toSummary(rec *provider.RoomRecord) dto.Room {
	return dto.Room{
		Name: rec.UniqueName,
		Sid:  rec.Sid,
	}
}

func toParticipant(p provider.Participant) dto.Participant {
	return dto.Participant{
		Sid:      p.Sid,
		Identity: p.Identity,
		Status:   p.Status,
	}
}
