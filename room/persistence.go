package room

// Persistence defines durable storage for the room list. The snapshot is
// advisory: it exists so room identifiers survive a process restart, not for
// crash recovery of live sessions. Implementations are expected to be fast
// (local file); a slower backend would need an explicit acknowledgment
// contract layered on top.
type Persistence interface {
	// Save writes the full ordered room list, replacing any previous snapshot.
	Save(rooms []PersistedRoom) error

	// Load returns the last saved room list, or nil when no snapshot exists.
	Load() ([]PersistedRoom, error)
}

// PersistedParticipant is the durable form of a participant. Live connection
// handles are never persisted.
type PersistedParticipant struct {
	PlayerID string   `json:"playerId"`
	Position Position `json:"position"`
}

// PersistedRoom is one record of the durable room list.
type PersistedRoom struct {
	RoomID       string                 `json:"roomId"`
	Participants []PersistedParticipant `json:"participants"`
}
