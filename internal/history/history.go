// Package history tracks recently picked words.
// This backs `sugg history` so past picks can be reviewed or piped.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Pick is one recorded selection.
type Pick struct {
	Word     string    `json:"word"`
	Term     string    `json:"term,omitempty"` // the query that produced it
	PickedAt time.Time `json:"picked_at"`
}

// History stores recent picks, newest first.
type History struct {
	Picks []Pick `json:"picks"`
}

// Path returns the path to the history file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sugg", "history.json")
}

// Load reads the history from disk. A missing or corrupted file yields
// an empty history.
func Load() (*History, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, err
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Record prepends a pick, removing earlier entries for the same word
// and truncating to size entries.
func (h *History) Record(p Pick, size int) {
	if p.PickedAt.IsZero() {
		p.PickedAt = time.Now()
	}

	picks := make([]Pick, 0, len(h.Picks)+1)
	picks = append(picks, p)
	for _, old := range h.Picks {
		if old.Word != p.Word {
			picks = append(picks, old)
		}
	}
	if size > 0 && len(picks) > size {
		picks = picks[:size]
	}
	h.Picks = picks
}

// Save writes the history to disk atomically.
func (h *History) Save() error {
	return h.saveTo(Path())
}

func (h *History) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// Clear removes the history file.
func Clear() error {
	err := os.Remove(Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
