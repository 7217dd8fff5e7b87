package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteTranscriptFixture writes a line-delimited transcript fixture and
// returns its path
func WriteTranscriptFixture(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write transcript fixture: %v", err)
	}
	return path
}

// UserLine builds a transcript line for a user turn
func UserLine(t *testing.T, content string) string {
	t.Helper()
	return transcriptLine(t, map[string]interface{}{
		"type":    "human",
		"message": map[string]interface{}{"content": content},
	})
}

// AssistantLine builds a transcript line for an assistant turn
func AssistantLine(t *testing.T, content string) string {
	t.Helper()
	return transcriptLine(t, map[string]interface{}{
		"type":    "assistant",
		"message": map[string]interface{}{"content": content},
	})
}

// ToolUseLine builds a transcript line for a tool invocation
func ToolUseLine(t *testing.T, tool string, input map[string]interface{}) string {
	t.Helper()
	return transcriptLine(t, map[string]interface{}{
		"type":  "tool_use",
		"tool":  tool,
		"input": input,
	})
}

func transcriptLine(t *testing.T, record map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to marshal transcript line: %v", err)
	}
	return string(data)
}

// WriteDevlogFixture writes a devlog document fixture under dir and
// returns its path
func WriteDevlogFixture(t *testing.T, dir, name string, doc interface{}) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal devlog fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write devlog fixture: %v", err)
	}
	return path
}
