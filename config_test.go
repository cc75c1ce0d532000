package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := newDefaultConfig()
	if !cfg.ConfirmWrite {
		t.Error("confirm_write should default to true")
	}
	if !cfg.Watch {
		t.Error("watch should default to true")
	}
	if len(cfg.IgnoreGlobs) != 1 || cfg.IgnoreGlobs[0] != ".*" {
		t.Errorf("ignore_globs = %v, want [.*]", cfg.IgnoreGlobs)
	}
}

// Fields omitted from the config file keep their defaults.
func TestConfigPartialFileKeepsDefaults(t *testing.T) {
	cfg := newDefaultConfig()
	if err := json.Unmarshal([]byte(`{"ignore_globs":["*.tmp",".*"]}`), &cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.ConfirmWrite || !cfg.Watch {
		t.Errorf("omitted bools lost their defaults: %+v", cfg)
	}
	if len(cfg.IgnoreGlobs) != 2 || cfg.IgnoreGlobs[0] != "*.tmp" {
		t.Errorf("ignore_globs = %v", cfg.IgnoreGlobs)
	}
}

// The first run writes the defaults out so the operator has a file to edit.
func TestLoadConfigFirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mren", "config.json")

	cfg := loadConfigFrom(path)
	if !cfg.ConfirmWrite || !cfg.Watch {
		t.Errorf("first-run config = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	// A corrupt file yields defaults but is never overwritten.
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg = loadConfigFrom(path)
	if !cfg.ConfirmWrite || !cfg.Watch {
		t.Errorf("corrupt-file config = %+v, want defaults", cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{nope" {
		t.Error("corrupt config file was overwritten")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mren", "config.json")
	want := config{
		IgnoreGlobs:  []string{".*", "Thumbs.db"},
		ConfirmWrite: false,
		Watch:        true,
	}
	if err := saveConfig(path, want); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := newDefaultConfig()
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.ConfirmWrite != want.ConfirmWrite || got.Watch != want.Watch {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.IgnoreGlobs) != 2 || got.IgnoreGlobs[1] != "Thumbs.db" {
		t.Errorf("ignore_globs = %v", got.IgnoreGlobs)
	}

	// No leftover temp files from the atomic write.
	dirents, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range dirents {
		if strings.HasPrefix(d.Name(), ".config-") {
			t.Errorf("temp file %s left behind", d.Name())
		}
	}
}

func TestExpandContractHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	expanded := expandHome("~/manga")
	if expanded != filepath.Join(home, "manga") {
		t.Errorf("expandHome = %q", expanded)
	}
	if got := contractHome(expanded); got != "~/manga" {
		t.Errorf("contractHome = %q", got)
	}
	if got := expandHome("/absolute/path"); got != "/absolute/path" {
		t.Errorf("expandHome should leave non-home paths alone, got %q", got)
	}
}
