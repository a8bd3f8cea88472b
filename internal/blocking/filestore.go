package blocking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"timeout/internal/core"
)

// anonymousKey names the snapshot file used when no user is signed in.
const anonymousKey = "anon"

// FileStore persists one JSON snapshot file per user in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed snapshot store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blocklist dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(userID string) string {
	key := userID
	if key == "" {
		key = anonymousKey
	}
	return filepath.Join(s.dir, "blocking_"+key+".json")
}

// LoadSnapshot reads a user's snapshot. A missing file yields an empty
// snapshot, not an error.
func (s *FileStore) LoadSnapshot(_ context.Context, userID string) (*core.BlockingSnapshot, error) {
	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return core.EmptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot core.BlockingSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snapshot.Apps == nil {
		snapshot.Apps = []core.BlockedApp{}
	}
	if snapshot.Websites == nil {
		snapshot.Websites = []core.BlockedWebsite{}
	}
	return &snapshot, nil
}

// SaveSnapshot writes a user's snapshot atomically via a temp file.
func (s *FileStore) SaveSnapshot(_ context.Context, userID string, snapshot *core.BlockingSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	path := s.path(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
