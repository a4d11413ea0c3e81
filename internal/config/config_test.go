package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capacity != defaultCapacity {
		t.Fatalf("Capacity = %d, want %d", cfg.Capacity, defaultCapacity)
	}
	if cfg.Tick != defaultTick {
		t.Fatalf("Tick = %v, want %v", cfg.Tick, defaultTick)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}

	wantLogFile, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLogFile {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLogFile)
	}
	if cfg.Follow != "" {
		t.Fatalf("Follow = %q, want empty", cfg.Follow)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
capacity = 8
tick = " 1s "
buffer = "100ms"
modulus = 3
theme = "  Slate  "
log_level = "DEBUG"
follow = "  ~/feed.log  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capacity != 8 || cfg.Modulus != 3 {
		t.Fatalf("Capacity, Modulus = %d, %d, want 8, 3", cfg.Capacity, cfg.Modulus)
	}
	if cfg.Tick != time.Second || cfg.Buffer != 100*time.Millisecond {
		t.Fatalf("Tick, Buffer = %v, %v, want 1s, 100ms", cfg.Tick, cfg.Buffer)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, "Slate")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("SlogLevel = %v, want %v", cfg.SlogLevel(), slog.LevelDebug)
	}
	if cfg.Follow != filepath.Join(home, "feed.log") {
		t.Fatalf("Follow = %q, want it under HOME %q", cfg.Follow, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
theme = "   "
tick = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
	if cfg.Tick != defaultTick {
		t.Fatalf("Tick = %v, want %v", cfg.Tick, defaultTick)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid toml", `capacity = [`, "parse config"},
		{"bad duration", `tick = "soon"`, "parse tick"},
		{"negative buffer", `buffer = "-1s"`, "buffer must not be negative"},
		{"negative capacity", `capacity = -2`, "capacity must be positive"},
		{"negative modulus", `modulus = -1`, "modulus must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestSave_RoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Default()
	want.Capacity = 4
	want.Tick = 2 * time.Second
	want.Theme = "Kanagawa"

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Load after Save = %+v, want %+v", got, want)
	}
}

func TestSlogLevel_UnknownIsInfo(t *testing.T) {
	cfg := Config{LogLevel: "chatty"}
	if got := cfg.SlogLevel(); got != slog.LevelInfo {
		t.Fatalf("SlogLevel = %v, want %v", got, slog.LevelInfo)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
