// Package session persists table state between runs: chip balances, the
// dealer button and the hand counter. One store maps to one JSON file.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// State is the serialized session. Hand history is not persisted; the
// engine's history is an in-memory record of the current process only.
type State struct {
	Balances       map[string]int `json:"balances"`
	DealerPosition int            `json:"dealer_position"`
	HandsPlayed    int            `json:"hands_played"`
	SavedAt        time.Time      `json:"saved_at"`
}

// Store reads and writes session state at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted state. A missing file is not an error; it
// returns an empty state so a fresh session starts cleanly.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return State{Balances: map[string]int{}}, nil
	}
	if err != nil {
		return State{}, errors.Wrap(err, "reading session file")
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, errors.Wrapf(err, "parsing session file %s", s.path)
	}
	if state.Balances == nil {
		state.Balances = map[string]int{}
	}
	return state, nil
}

// Save writes the state atomically: the JSON goes to a temp file in the
// same directory, then renames over the target. Readers see either the old
// complete file or the new one, never a torn write.
func (s *Store) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating session directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if tmp != nil {
			tmp.Close()
		}
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Wrap(err, "writing temp session file")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp session file")
	}
	closeErr := tmp.Close()
	tmp = nil
	if closeErr != nil {
		return errors.Wrap(closeErr, "closing temp session file")
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errors.Wrap(err, "setting session file permissions")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrap(err, "renaming session file into place")
	}
	renamed = true
	return nil
}
