package dto

type TokenRequest struct {
	RoomName string `json:"roomName" form:"roomName" example:"standup"`
	Username string `json:"username" form:"username" example:"alice"`
}

// TokenResponse documents the token reply; the handler echoes every field
// of the request body alongside the token.
type TokenResponse struct {
	RoomName string `json:"roomName,omitempty" example:"standup"`
	Username string `json:"username,omitempty" example:"alice"`
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type CreateRoomRequest struct {
	RoomName string `json:"roomName" form:"roomName" example:"standup"`
	Tracks   []any  `json:"tracks,omitempty" form:"tracks" swaggertype:"array,object"`
	Token    string `json:"token,omitempty" form:"token"`
}

type ParticipantsRequest struct {
	RoomName string `json:"roomName" form:"roomName" example:"standup"`
}

type Room struct {
	Name string `json:"name" example:"standup"`
	Sid  string `json:"sid" example:"RM00000000000000000000000000000000"`
}

type RoomRecord struct {
	Sid             string  `json:"sid" example:"RM00000000000000000000000000000000"`
	UniqueName      string  `json:"uniqueName" example:"standup"`
	Status          string  `json:"status" example:"in-progress" enums:"in-progress,completed,failed"`
	Type            string  `json:"type,omitempty" example:"group"`
	MaxParticipants int     `json:"maxParticipants,omitempty" example:"50"`
	Duration        int     `json:"duration,omitempty" example:"0"`
	DateCreated     *string `json:"dateCreated,omitempty" example:"2024-01-15T10:30:00Z"`
	DateUpdated     *string `json:"dateUpdated,omitempty" example:"2024-01-15T10:30:00Z"`
	EndTime         *string `json:"endTime,omitempty" example:"2024-01-15T11:30:00Z"`
	URL             string  `json:"url,omitempty" example:"https://video.twilio.com/v1/Rooms/RM00000000000000000000000000000000"`
}

type RoomResponse struct {
	Room RoomRecord `json:"room"`
}

type ActiveRoomsResponse struct {
	Message     string `json:"message,omitempty" example:"No active rooms found"`
	ActiveRooms []Room `json:"activeRooms"`
}

type ClosedRoomResponse struct {
	ClosedRoom Room `json:"closedRoom"`
}

type Participant struct {
	Sid      string `json:"sid,omitempty" example:"PA00000000000000000000000000000000"`
	Identity string `json:"identity" example:"alice"`
	Status   string `json:"status" example:"connected"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}
