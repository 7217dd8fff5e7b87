package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/devlog/internal"
	"github.com/iksnae/devlog/testutil"
)

func TestSessionIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/dev/.claude/projects/x/abc123.jsonl", "abc123"},
		{"session.jsonl", "session"},
		{"/tmp/no-extension", "no-extension"},
	}
	for _, tt := range tests {
		if got := sessionIDFromPath(tt.path); got != tt.want {
			t.Errorf("sessionIDFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolveProjectDir_EnvOverride(t *testing.T) {
	t.Setenv("CLAUDE_PROJECT_DIR", "/custom/project")
	if got := resolveProjectDir(); got != "/custom/project" {
		t.Errorf("resolveProjectDir() = %q", got)
	}
}

func TestIngestCommand_EndToEnd(t *testing.T) {
	projectDir := testutil.CreateTempDir(t)
	t.Setenv("CLAUDE_PROJECT_DIR", projectDir)

	transcript := testutil.WriteTranscriptFixture(t, projectDir, "session-e2e.jsonl", []string{
		testutil.UserLine(t, "add auth"),
		testutil.AssistantLine(t, "ok, editing"),
		testutil.ToolUseLine(t, "Edit", map[string]interface{}{"path": "src/auth.go"}),
		testutil.ToolUseLine(t, "Bash", map[string]interface{}{"command": "go build ./..."}),
	})

	configFile := filepath.Join(testutil.CreateTempDir(t), "config.yaml")
	rootCmd.SetArgs([]string{"ingest", transcript, "--config", configFile})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(projectDir, internal.OutputDirName))
	if err != nil {
		t.Fatalf("output directory not created: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d artifacts, want 1", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(projectDir, internal.OutputDirName, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	var doc internal.SessionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("artifact not valid JSON: %v", err)
	}

	if doc.SessionID != "session-e2e" {
		t.Errorf("SessionID = %q, want session-e2e", doc.SessionID)
	}
	if len(doc.Conversation) != 3 {
		t.Fatalf("conversation = %+v, want 3 entries", doc.Conversation)
	}
	if doc.Conversation[2].Type != internal.EntryTypeToolSummary {
		t.Errorf("last entry = %+v, want tool_summary", doc.Conversation[2])
	}
}

func TestIngestCommand_MissingTranscript(t *testing.T) {
	rootCmd.SetArgs([]string{"ingest", "/nonexistent/session.jsonl"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err == nil {
		t.Error("ingest of a missing transcript should fail")
	}
}
