package room

// Position is a 2D coordinate last reported by a client. The server never
// validates it (trusted-client model).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Conn is the transport handle a participant can be reached through. Send
// must not block; it reports whether the message was accepted for delivery.
// The store compares Conn values to match participants to their connection
// and never closes or otherwise owns them.
type Conn interface {
	Send(message []byte) bool
}

// Participant is a room's membership record for one connected client.
type Participant struct {
	PlayerID string
	Position Position
	Conn     Conn
}

// Room is a named, ephemeral group of participants. Participants are kept in
// join order, which is also the order newcomers receive the initial state
// sync in.
type Room struct {
	ID           string
	Participants []*Participant
}

// participantIndex returns the slice index of the participant owning conn,
// or -1.
func (r *Room) participantIndex(conn Conn) int {
	for i, p := range r.Participants {
		if p.Conn == conn {
			return i
		}
	}
	return -1
}
