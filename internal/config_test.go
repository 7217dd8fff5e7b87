package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Push.Enabled {
		t.Error("push must default to disabled")
	}
	if cfg.Push.Endpoint == "" {
		t.Error("default endpoint missing")
	}
	if cfg.Push.TimeoutSeconds <= 0 {
		t.Error("default timeout missing")
	}

	// Defaults are written back for the user to edit.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not persisted: %v", err)
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	want := &Config{
		Push: PushConfig{
			Enabled:        true,
			Endpoint:       "https://devlog.example.com/ingest",
			TimeoutSeconds: 10,
		},
		Server: ServerConfig{
			BindAddr: "127.0.0.1:9999",
			DBPath:   "/var/lib/devlog/sessions.db",
		},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *got != *want {
		t.Errorf("LoadConfig() = %+v, want %+v", got, want)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("push: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() accepted invalid yaml")
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadConfig_ZeroTimeoutGetsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "push:\n  enabled: true\n  endpoint: http://localhost:8080/ingest\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Push.TimeoutSeconds != DefaultConfig().Push.TimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d", cfg.Push.TimeoutSeconds)
	}
}
