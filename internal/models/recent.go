package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// maxRecentFiles caps how many entries the store keeps
const maxRecentFiles = 10

// RecentFile is one previously opened document
type RecentFile struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"openedAt"`
}

// RecentFiles is the persisted list of recently opened documents,
// most recent first. It is owned by whoever loads it; there is no
// process-wide instance.
type RecentFiles struct {
	Files []RecentFile `json:"files"`
}

func recentFilesPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "markdown-viewer", "recent.json"), nil
}

// LoadRecentFiles loads the store from the user config directory.
// A missing file yields an empty store, not an error.
func LoadRecentFiles() (*RecentFiles, error) {
	path, err := recentFilesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RecentFiles{Files: []RecentFile{}}, nil
		}
		return nil, err
	}

	var rf RecentFiles
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, err
	}
	return &rf, nil
}

// Save writes the store back to the user config directory
func (r *RecentFiles) Save() error {
	path, err := recentFilesPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Add records path as the most recently opened file. An existing entry
// for the same path moves to the front; the list is capped.
func (r *RecentFiles) Add(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	entry := RecentFile{Path: abs, OpenedAt: time.Now()}
	files := []RecentFile{entry}
	for _, f := range r.Files {
		if f.Path == abs {
			continue
		}
		files = append(files, f)
	}
	if len(files) > maxRecentFiles {
		files = files[:maxRecentFiles]
	}
	r.Files = files
}

// Remove drops the entry for path, if present
func (r *RecentFiles) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	files := r.Files[:0]
	for _, f := range r.Files {
		if f.Path != abs {
			files = append(files, f)
		}
	}
	r.Files = files
}

// Clear empties the store
func (r *RecentFiles) Clear() {
	r.Files = []RecentFile{}
}
