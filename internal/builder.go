package internal

import "time"

// BuildSessionDocument assembles the final session document. Pure
// assembly: the ingestion timestamp is stamped here, everything else is
// passed in by the caller.
func BuildSessionDocument(conversation []ConversationEntry, git *GitInfo, sessionID, projectDir string) *SessionDocument {
	return &SessionDocument{
		SchemaVersion: SchemaVersion,
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		ProjectDir:    projectDir,
		Git:           git,
		Conversation:  conversation,
	}
}
