package internal

// SchemaVersion is stamped on every session document this tool produces.
const SchemaVersion = "1.0"

// RawRecord is one decoded transcript line. The upstream format is
// externally controlled, so records stay untyped and fields are looked up
// defensively at classification time.
type RawRecord map[string]interface{}

// EntryKind identifies the classified variant of a raw record
type EntryKind int

const (
	KindOther EntryKind = iota
	KindUser
	KindAssistant
	KindToolInvocation
	KindToolResult
)

// ClassifiedEntry is the typed view of a raw record
type ClassifiedEntry struct {
	Kind      EntryKind
	Timestamp string
	Content   string
	Tool      string
	Input     map[string]interface{}
}

// Conversation entry types as they appear in the output document
const (
	EntryTypeUser        = "user"
	EntryTypeAssistant   = "assistant"
	EntryTypeToolSummary = "tool_summary"
)

// ConversationEntry is one retained unit of the output conversation:
// a user turn, an assistant turn, or a collapsed tool summary.
type ConversationEntry struct {
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp,omitempty"`
	Content   string   `json:"content,omitempty"`
	Actions   []string `json:"actions,omitempty"`
}

// NewUserEntry creates a user conversation entry
func NewUserEntry(timestamp, content string) ConversationEntry {
	return ConversationEntry{Type: EntryTypeUser, Timestamp: timestamp, Content: content}
}

// NewAssistantEntry creates an assistant conversation entry
func NewAssistantEntry(timestamp, content string) ConversationEntry {
	return ConversationEntry{Type: EntryTypeAssistant, Timestamp: timestamp, Content: content}
}

// NewToolSummary creates a tool summary entry
func NewToolSummary(actions []string) ConversationEntry {
	return ConversationEntry{Type: EntryTypeToolSummary, Actions: actions}
}

// GitInfo holds repository metadata for the ingested project.
// Remote may be null; branch and commit are always both populated —
// if either is unavailable the whole GitInfo is dropped instead.
type GitInfo struct {
	Remote *string `json:"remote"`
	Branch string  `json:"branch"`
	Commit string  `json:"commit"`
}

// SessionDocument is the final artifact produced per ingested transcript
type SessionDocument struct {
	SchemaVersion string              `json:"schema_version"`
	SessionID     string              `json:"session_id"`
	Timestamp     string              `json:"timestamp"`
	MachineID     string              `json:"machine_id,omitempty"`
	ProjectDir    string              `json:"project_dir"`
	Git           *GitInfo            `json:"git"`
	Conversation  []ConversationEntry `json:"conversation"`
}
