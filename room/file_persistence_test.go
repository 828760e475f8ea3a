package room

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	fp := NewFilePersistence(path)

	rooms := []PersistedRoom{
		{
			RoomID: "abc12345",
			Participants: []PersistedParticipant{
				{PlayerID: "p1x2y3z4a", Position: Position{X: 42, Y: 7}},
			},
		},
		{RoomID: "def67890", Participants: []PersistedParticipant{}},
	}

	require.NoError(t, fp.Save(rooms))

	loaded, err := fp.Load()
	require.NoError(t, err)
	assert.Equal(t, rooms, loaded)
}

func TestFilePersistenceLoadMissingFile(t *testing.T) {
	fp := NewFilePersistence(filepath.Join(t.TempDir(), "rooms.json"))

	loaded, err := fp.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFilePersistenceLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	fp := NewFilePersistence(path)
	_, err := fp.Load()
	assert.Error(t, err)
}

func TestFilePersistenceSaveNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	fp := NewFilePersistence(path)

	require.NoError(t, fp.Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStoreWithFilePersistenceSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")

	store := NewStore(NewFilePersistence(path), nopLogger())
	roomID := store.Create()
	keep := store.Create()

	conn := &fakeConn{}
	_, _, err := store.Join(roomID, conn)
	require.NoError(t, err)
	_, emptied, err := store.Leave(roomID, conn)
	require.NoError(t, err)
	require.True(t, emptied)

	// A new store over the same file sees only the surviving room.
	restarted := NewStore(NewFilePersistence(path), nopLogger())
	restarted.LoadSnapshot()

	assert.False(t, restarted.Find(roomID))
	assert.True(t, restarted.Find(keep))
	assert.Equal(t, 1, restarted.Count())
}
