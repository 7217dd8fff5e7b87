package internal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MachineID returns a stable identifier for this machine: the hostname
// when available, otherwise a generated id persisted under ~/.devlog so
// repeated ingestions from the same machine stay keyed together.
func MachineID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return uuid.NewString()
	}

	idPath := filepath.Join(home, ".devlog", "machine-id")
	if data, err := os.ReadFile(idPath); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(idPath), 0755); err == nil {
		if err := os.WriteFile(idPath, []byte(id+"\n"), 0644); err != nil {
			LogDebug("Failed to persist machine id: %v", err)
		}
	}
	return id
}
