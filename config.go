package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ─── Config ──────────────────────────────────────────────────────────────────

type config struct {
	IgnoreGlobs  []string `json:"ignore_globs,omitempty"` // dirent globs the scanner skips
	ConfirmWrite bool     `json:"confirm_write"`          // ask y/n before committing
	Watch        bool     `json:"watch"`                  // notice when the directory changes on disk
}

// newDefaultConfig returns a fresh default config. Must be a function (not a
// var) because json.Unmarshal can mutate slice elements in-place via the
// shared backing array from a shallow struct copy.
func newDefaultConfig() config {
	return config{
		IgnoreGlobs:  []string{".*"},
		ConfirmWrite: true,
		Watch:        true,
	}
}

func configPath() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(cfgDir, "mren", "config.json"), nil
}

// expandHome expands a leading "~/" to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// contractHome replaces the user's home directory prefix with "~/" for display.
func contractHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if rel, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~/" + rel
	}
	return path
}

// loadConfig reads the config file, falling back to defaults if it is
// unreadable.
func loadConfig() config {
	path, err := configPath()
	if err != nil {
		return newDefaultConfig()
	}
	return loadConfigFrom(path)
}

// loadConfigFrom reads one config file. On first run (no file yet) the
// defaults are written out so the operator has something to edit.
func loadConfigFrom(path string) config {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := newDefaultConfig()
		if err := saveConfig(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write default config: %v\n", err)
		}
		return cfg
	}
	if err != nil {
		return newDefaultConfig()
	}
	cfg := newDefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: corrupt config (%v), using defaults.\n", err)
		return newDefaultConfig()
	}
	return cfg
}

func saveConfig(path string, cfg config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	// Atomic write: write to temp file then rename, so a crash mid-write
	// can't leave a truncated config file that gets silently replaced with defaults.
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
