package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pokioni/roomserver/room"
)

// Frame types shared by the inbound and outbound protocol.
const (
	TypeJoin               = "join"
	TypeLeave              = "leave"
	TypeMove               = "move"
	TypeStartGame          = "startGame"
	TypeEndGame            = "endGame"
	TypeNewPlayer          = "new-player"
	TypePlayerLeft         = "player-left"
	TypeUpdateParticipants = "updateParticipants"
	TypeRoomDeleted        = "roomDeleted"
)

var (
	errMissingType     = errors.New("frame has no type")
	errMissingRoomID   = errors.New("join frame has no roomId")
	errMissingPosition = errors.New("move frame has no position")
)

// Frame is a decoded inbound message. Type discriminates the union; RoomID is
// set for join frames and Position for move frames.
type Frame struct {
	Type     string         `json:"type"`
	RoomID   string         `json:"roomId,omitempty"`
	Position *room.Position `json:"position,omitempty"`
}

// decodeFrame parses an inbound frame and checks the fields its type
// requires. Unknown types decode successfully and are dropped by the router.
func decodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("invalid frame JSON: %w", err)
	}

	switch {
	case f.Type == "":
		return Frame{}, errMissingType
	case f.Type == TypeJoin && f.RoomID == "":
		return Frame{}, errMissingRoomID
	case f.Type == TypeMove && f.Position == nil:
		return Frame{}, errMissingPosition
	}

	return f, nil
}

// joinReply is sent to the requester of a join, successful or not. PlayerID
// is omitted when the room does not exist.
type joinReply struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	RoomExists bool   `json:"roomExists"`
	PlayerID   string `json:"playerId,omitempty"`
}

// playerFrame carries a player identifier with a position, used both for
// new-player announcements and move updates.
type playerFrame struct {
	Type     string        `json:"type"`
	ID       string        `json:"id"`
	Position room.Position `json:"position"`
}

type playerLeftFrame struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type participantsFrame struct {
	Type             string `json:"type"`
	ParticipantCount int    `json:"participantCount"`
}

type eventFrame struct {
	Type string `json:"type"`
}

type roomDeletedFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// mustMarshal encodes an outbound frame. The frame structs above contain no
// unmarshalable values, so an error here is a programming bug.
func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("websocket: marshal outbound frame: %v", err))
	}
	return data
}
