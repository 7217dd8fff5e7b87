package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk devlog configuration. It is loaded once at
// command startup and passed explicitly into components; nothing in the
// pipeline reads it ambiently.
type Config struct {
	Push   PushConfig   `yaml:"push"`
	Server ServerConfig `yaml:"server"`
}

// PushConfig controls the optional relay of ingested sessions
type PushConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ServerConfig controls the devlog serve receiver
type ServerConfig struct {
	BindAddr string `yaml:"bind_addr"`
	DBPath   string `yaml:"db_path"`
}

// DefaultConfig returns the configuration written on first use
func DefaultConfig() *Config {
	return &Config{
		Push: PushConfig{
			Enabled:        false,
			Endpoint:       "http://localhost:8080/ingest",
			TimeoutSeconds: 30,
		},
		Server: ServerConfig{
			BindAddr: "0.0.0.0:8080",
			DBPath:   "devlog.db",
		},
	}
}

// DefaultConfigPath returns ~/.devlog/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".devlog", "config.yaml"), nil
}

// LoadConfig reads the configuration from path. A missing file is not an
// error: defaults are written back so the user has something to edit.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := SaveConfig(path, cfg); saveErr != nil {
			LogWarn("Failed to write default config: %v", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if cfg.Push.TimeoutSeconds <= 0 {
		cfg.Push.TimeoutSeconds = DefaultConfig().Push.TimeoutSeconds
	}
	return &cfg, nil
}

// SaveConfig writes the configuration to path, creating the directory
// if needed.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}
