package staging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"agentdeck/internal/logging"
)

// snapshotFile is the on-disk schema of a staging snapshot.
type snapshotFile struct {
	Draft   DraftAgent     `json:"draft"`
	Items   []itemEnvelope `json:"items"`
	SavedAt time.Time      `json:"saved_at"`
}

// Store persists staging snapshots to a JSON file in the user data directory
// so a session survives restarts mid-wizard.
type Store struct {
	path string
}

// NewStore creates a store at the default snapshot path.
func NewStore() (*Store, error) {
	dataDir, err := getDataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dataDir, "staging.json")}, nil
}

// NewStoreAt creates a store writing to an explicit path. Used by tests.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (st *Store) Path() string {
	return st.path
}

// Save writes a snapshot atomically (temp file + rename).
func (st *Store) Save(snap Snapshot) error {
	file := snapshotFile{
		Draft:   snap.Draft,
		Items:   make([]itemEnvelope, 0, len(snap.Items)),
		SavedAt: snap.SavedAt,
	}
	for _, item := range snap.Items {
		env, err := envelope(item)
		if err != nil {
			return err
		}
		file.Items = append(file.Items, env)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := st.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, st.path)
}

// Load reads the last saved snapshot. Restore is fail-open: a missing,
// partial or corrupt file yields an empty snapshot and ok=false, never an
// error that blocks the user. ok distinguishes "no snapshot exists" from a
// real snapshot whose fields may be deliberately blank.
func (st *Store) Load() (Snapshot, bool) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("failed to read staging snapshot", "path", st.path, "error", err)
		}
		return Snapshot{}, false
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		logging.Warn("corrupt staging snapshot, starting empty", "path", st.path, "error", err)
		return Snapshot{}, false
	}

	snap := Snapshot{Draft: file.Draft, SavedAt: file.SavedAt}
	for _, env := range file.Items {
		item, err := env.item()
		if err != nil {
			logging.Warn("dropping unreadable staged item", "error", err)
			continue
		}
		snap.Items = append(snap.Items, item)
	}
	return snap, true
}

// Clear removes the snapshot file.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// getDataDir returns the data directory for staging snapshots.
func getDataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "agentdeck"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "agentdeck"), nil
}
