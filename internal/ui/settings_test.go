package ui

import (
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := &Settings{MaxWidth: 72, Watch: false}
	if err := SaveSettings(dir, s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.MaxWidth != 72 || loaded.Watch {
		t.Errorf("Expected saved settings back, got %#v", loaded)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	loaded, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.MaxWidth != DefaultSettings().MaxWidth {
		t.Errorf("Expected defaults for missing file, got %#v", loaded)
	}
}
