// Package localstore persists the session snapshot (bearer token, operator
// identity, day-open flag) across process restarts, the way the browser
// original kept them in local storage. Persisted state is optimistic: the
// session layer re-verifies it against the backend on startup.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/KaanCaman/simple-pos-full-stack/internal/domain/auth"
)

// State is the persisted session snapshot.
type State struct {
	Token   string    `json:"token"`
	User    auth.User `json:"user"`
	DayOpen bool      `json:"day_open"`
}

// Store reads and writes the session snapshot to a single JSON file.
type Store struct {
	path string
}

// New returns a Store writing to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the snapshot under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(dir, "pos-terminal", "session.json"), nil
}

// Load reads the snapshot. A missing file is not an error; it returns a nil
// state, meaning "no persisted session".
func (s *Store) Load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read session file")
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// A corrupt snapshot is treated as absent rather than fatal; the
		// operator just logs in again.
		return nil, nil
	}
	if state.Token == "" {
		return nil, nil
	}
	return &state, nil
}

// Save writes the snapshot. The file is mode 0600: it holds a live token.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace session file")
	}
	return nil
}

// Clear removes the snapshot. Clearing an absent snapshot is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}
