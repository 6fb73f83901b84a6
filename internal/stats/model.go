// Package stats keeps hourly counters of vendor calls in Redis.
package stats

import (
	"strconv"
)

const (
	OpIssueToken       = "issue_token"
	OpCreateRoom       = "create_room"
	OpListRooms        = "list_rooms"
	OpFetchRoom        = "fetch_room"
	OpCompleteRoom     = "complete_room"
	OpListParticipants = "list_participants"
)

const (
	fieldOK      = "ok"
	fieldError   = "error"
	fieldLatency = "latency_ms"
)

type OperationStats struct {
	Operation    string `json:"operation" example:"create_room"`
	OK           int64  `json:"ok" example:"12"`
	Errors       int64  `json:"errors" example:"1"`
	AvgLatencyMs int64  `json:"avgLatencyMs" example:"180"`
}

type HourStats struct {
	Date       string           `json:"date" example:"2024-01-15"`
	Hour       int              `json:"hour" example:"10"`
	Operations []OperationStats `json:"operations"`
}

func StatsRedisKey(date string, hour int) string {
	return "rooms:stats:" + date + ":" + strconv.Itoa(hour)
}

func field(op, suffix string) string {
	return op + ":" + suffix
}
