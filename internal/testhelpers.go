package internal

import "time"

// CreateTestDocument creates a test session document with sample data
func CreateTestDocument(sessionID string) *SessionDocument {
	return &SessionDocument{
		SchemaVersion: SchemaVersion,
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ProjectDir:    "/home/dev/test-project",
		Conversation: []ConversationEntry{
			NewUserEntry("2025-01-01T10:00:00Z", "add auth"),
			NewAssistantEntry("2025-01-01T10:00:05Z", "ok, editing"),
			NewToolSummary([]string{"edited src/auth.go", "ran go test ./..."}),
		},
	}
}

// CreateTestDocumentWithConversation creates a test session document with
// a custom conversation
func CreateTestDocumentWithConversation(sessionID string, conversation []ConversationEntry) *SessionDocument {
	return &SessionDocument{
		SchemaVersion: SchemaVersion,
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ProjectDir:    "/home/dev/test-project",
		Conversation:  conversation,
	}
}
