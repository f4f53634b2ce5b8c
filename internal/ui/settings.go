package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds the viewer settings
type Settings struct {
	// MaxWidth caps the content width in terminal cells; text wraps at
	// the smaller of this and the screen width. 0 means screen width.
	MaxWidth int `json:"maxWidth"`

	// Watch enables live reload when the viewed file changes on disk
	Watch bool `json:"watch"`
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		MaxWidth: 100,
		Watch:    true,
	}
}

// LoadSettings loads the settings from the config directory
func LoadSettings(configDir string) (*Settings, error) {
	settingsPath := filepath.Join(configDir, "settings.json")

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	if settings.MaxWidth < 0 {
		settings.MaxWidth = 0
	}

	return settings, nil
}

// SaveSettings saves the settings to the config directory
func SaveSettings(configDir string, settings *Settings) error {
	settingsPath := filepath.Join(configDir, "settings.json")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(settingsPath, data, 0644)
}
