package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
)

var _ league.Store = (*FileStore)(nil)

// FileStore keeps the league document in a single human readable JSON file.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		now:  time.Now,
	}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing or malformed file yields the default state.
func (s *FileStore) Load() (league.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("No league state file yet, using defaults", "path", s.path)
			return league.NewState(), nil
		}
		return league.State{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return decodeState(data, s.path), nil
}

// Save stamps UpdatedAt and replaces the file atomically: the document is
// written to a temporary file in the same directory and renamed over the old one.
func (s *FileStore) Save(state *league.State) error {
	stamp(state, s.now())
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("failed to encode league state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write league state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync league state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	log.Debug("League state saved", "path", s.path, "bytes", len(data))
	return nil
}
