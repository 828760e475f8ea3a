package room

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrRoomNotFound is returned when an operation names an unknown room
	// identifier.
	ErrRoomNotFound = errors.New("room not found")

	// ErrNotParticipant is returned when the connection has no participant
	// entry in the named room.
	ErrNotParticipant = errors.New("connection is not a participant of the room")
)

// Store owns all rooms. Every mutation runs under a single lock so that
// concurrent joins, leaves, and position updates never produce lost updates;
// the HTTP room-creation path and the connection handlers share this
// serialization boundary.
type Store struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	order       []string // room creation order, preserved in snapshots
	persistence Persistence
	logger      *zap.SugaredLogger
}

// NewStore creates a room store backed by the given persistence layer.
// persistence may be nil, in which case no snapshots are written.
func NewStore(persistence Persistence, logger *zap.SugaredLogger) *Store {
	return &Store{
		rooms:       make(map[string]*Room),
		persistence: persistence,
		logger:      logger,
	}
}

// LoadSnapshot restores the room list from durable storage. Rooms come back
// with empty participant lists: persisted participants belonged to
// connections of a previous process lifetime and are meaningless now. A
// corrupt snapshot is logged and the store starts empty.
func (s *Store) LoadSnapshot() {
	if s.persistence == nil {
		return
	}

	records, err := s.persistence.Load()
	if err != nil {
		s.logger.Warnw("failed to load room snapshot, starting empty", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if rec.RoomID == "" {
			continue
		}
		if _, exists := s.rooms[rec.RoomID]; exists {
			continue
		}
		s.rooms[rec.RoomID] = &Room{ID: rec.RoomID}
		s.order = append(s.order, rec.RoomID)
	}

	if len(records) > 0 {
		s.logger.Infow("restored rooms from snapshot", "count", len(s.order))
	}
}

// Create allocates a fresh room with no participants and persists the
// updated room list before returning its identifier.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newRoomID()
	s.rooms[id] = &Room{ID: id}
	s.order = append(s.order, id)
	s.persistLocked()

	return id
}

// Find reports whether a room with the exact identifier exists.
func (s *Store) Find(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[roomID]
	return ok
}

// Join adds conn to the room as a new participant at position (0,0). It
// returns the assigned player identifier and a join-ordered snapshot of the
// other participants, so the caller can sync the newcomer.
func (s *Store) Join(roomID string, conn Conn) (string, []Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return "", nil, ErrRoomNotFound
	}

	others := make([]Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		others = append(others, *p)
	}

	playerID := newPlayerID()
	r.Participants = append(r.Participants, &Participant{
		PlayerID: playerID,
		Conn:     conn,
	})

	return playerID, others, nil
}

// Leave removes conn's participant entry from the room. When the last
// participant leaves, the room itself is removed. The updated room list is
// persisted before Leave returns. emptied reports whether the room was
// removed.
func (s *Store) Leave(roomID string, conn Conn) (playerID string, emptied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return "", false, ErrRoomNotFound
	}

	i := r.participantIndex(conn)
	if i < 0 {
		return "", false, ErrNotParticipant
	}

	playerID = r.Participants[i].PlayerID
	r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)

	if len(r.Participants) == 0 {
		delete(s.rooms, roomID)
		s.removeFromOrder(roomID)
		emptied = true
	}

	s.persistLocked()
	return playerID, emptied, nil
}

// UpdatePosition overwrites the stored position of conn's participant and
// returns its player identifier. Positions are not persisted.
func (s *Store) UpdatePosition(roomID string, conn Conn, pos Position) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return "", ErrRoomNotFound
	}

	i := r.participantIndex(conn)
	if i < 0 {
		return "", ErrNotParticipant
	}

	r.Participants[i].Position = pos
	return r.Participants[i].PlayerID, nil
}

// Participants returns a join-ordered snapshot of the room's participants.
func (s *Store) Participants(roomID string) ([]Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil, false
	}

	out := make([]Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		out = append(out, *p)
	}
	return out, true
}

// Count returns the number of rooms currently in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Snapshot returns the current room list in creation order, in the durable
// format.
func (s *Store) Snapshot() []PersistedRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// snapshotLocked builds the persisted room list. Callers must hold the lock.
func (s *Store) snapshotLocked() []PersistedRoom {
	records := make([]PersistedRoom, 0, len(s.order))
	for _, id := range s.order {
		r, ok := s.rooms[id]
		if !ok {
			continue
		}
		rec := PersistedRoom{RoomID: id, Participants: []PersistedParticipant{}}
		for _, p := range r.Participants {
			rec.Participants = append(rec.Participants, PersistedParticipant{
				PlayerID: p.PlayerID,
				Position: p.Position,
			})
		}
		records = append(records, rec)
	}
	return records
}

// persistLocked writes the snapshot to durable storage. A failed write is
// logged; the in-memory state stays authoritative for this process.
func (s *Store) persistLocked() {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.Save(s.snapshotLocked()); err != nil {
		s.logger.Warnw("failed to persist room list", "error", err)
	}
}

func (s *Store) removeFromOrder(roomID string) {
	for i, id := range s.order {
		if id == roomID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
