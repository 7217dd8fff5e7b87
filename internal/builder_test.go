package internal

import (
	"testing"
	"time"
)

func TestBuildSessionDocument(t *testing.T) {
	conversation := []ConversationEntry{
		NewUserEntry("2025-06-01T12:00:00Z", "hello"),
	}
	remote := "git@github.com:iksnae/devlog.git"
	git := &GitInfo{Remote: &remote, Branch: "main", Commit: "abc123"}

	doc := BuildSessionDocument(conversation, git, "session-1", "/home/dev/project")

	if doc.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %q, want %q", doc.SchemaVersion, SchemaVersion)
	}
	if doc.SessionID != "session-1" {
		t.Errorf("SessionID = %q", doc.SessionID)
	}
	if doc.ProjectDir != "/home/dev/project" {
		t.Errorf("ProjectDir = %q", doc.ProjectDir)
	}
	if doc.Git != git {
		t.Error("git context not attached")
	}
	if len(doc.Conversation) != 1 {
		t.Errorf("conversation length = %d", len(doc.Conversation))
	}
	if doc.MachineID != "" {
		t.Errorf("MachineID should be empty on a local document, got %q", doc.MachineID)
	}

	// The timestamp is ingestion time, stamped at build.
	ts, err := time.Parse(time.RFC3339, doc.Timestamp)
	if err != nil {
		t.Fatalf("timestamp not RFC3339: %v", err)
	}
	if d := time.Since(ts); d < 0 || d > time.Minute {
		t.Errorf("timestamp not current: %s", doc.Timestamp)
	}
}

func TestBuildSessionDocument_NilGit(t *testing.T) {
	doc := BuildSessionDocument(nil, nil, "s", "/p")
	if doc.Git != nil {
		t.Errorf("Git = %+v, want nil", doc.Git)
	}
	if doc.Conversation != nil {
		t.Errorf("Conversation = %+v, want nil", doc.Conversation)
	}
}
