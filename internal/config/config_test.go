package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("SLATE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v; want defaults %+v", cfg, Default())
	}
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("dir: /tmp/notes\nsidebar:\n  width: 40\n  recent_cap: 10\nlog:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SLATE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != "/tmp/notes" {
		t.Fatalf("dir = %q; want %q", cfg.Dir, "/tmp/notes")
	}
	if cfg.Sidebar.Width != 40 || cfg.Sidebar.RecentCap != 10 {
		t.Fatalf("sidebar = %+v", cfg.Sidebar)
	}
	if cfg.Log.Enabled {
		t.Fatalf("log.enabled not read from file")
	}
	// Unset keys keep their defaults.
	if cfg.Sidebar.AnimationMS != Default().Sidebar.AnimationMS {
		t.Fatalf("animation_ms = %d; want default", cfg.Sidebar.AnimationMS)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("dir: /from/file\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SLATE_CONFIG", path)
	t.Setenv("SLATE_DIR", "/from/env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != "/from/env" {
		t.Fatalf("dir = %q; want env override", cfg.Dir)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("dir: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SLATE_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for a malformed config file")
	}
}

func TestNormalizeFloorsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("sidebar:\n  width: 3\n  recent_cap: -1\n  animation_ms: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SLATE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if cfg.Sidebar.Width != d.Sidebar.Width {
		t.Fatalf("width = %d; want floored to default", cfg.Sidebar.Width)
	}
	if cfg.Sidebar.RecentCap != d.Sidebar.RecentCap {
		t.Fatalf("recent_cap = %d; want floored to default", cfg.Sidebar.RecentCap)
	}
	if cfg.Sidebar.AnimationMS != d.Sidebar.AnimationMS {
		t.Fatalf("animation_ms = %d; want floored to default", cfg.Sidebar.AnimationMS)
	}
}
