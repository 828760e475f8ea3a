package room

import (
	"encoding/json"
	"fmt"
	"os"
)

// FilePersistence implements Persistence using a single JSON file holding the
// ordered room list.
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-based room list persistence layer.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// Save writes the room list as indented JSON, replacing the previous file.
func (fp *FilePersistence) Save(rooms []PersistedRoom) error {
	if rooms == nil {
		rooms = []PersistedRoom{}
	}

	data, err := json.MarshalIndent(rooms, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal room list: %w", err)
	}

	if err := os.WriteFile(fp.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rooms file: %w", err)
	}

	return nil
}

// Load reads the last saved room list. A missing file yields an empty list.
func (fp *FilePersistence) Load() ([]PersistedRoom, error) {
	data, err := os.ReadFile(fp.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rooms file: %w", err)
	}

	var rooms []PersistedRoom
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms file: %w", err)
	}

	return rooms, nil
}
