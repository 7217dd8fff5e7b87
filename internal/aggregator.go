package internal

import "fmt"

// Truncation limits for action strings
const (
	maxCommandLen = 50
	maxPatternLen = 40
	maxURLLen     = 40
)

// Aggregator accumulates classified entries into the output conversation,
// collapsing consecutive tool invocations into a single summary entry.
// It is a two-state machine: idle when no actions are pending, collecting
// while buffered actions await the next user or assistant turn.
type Aggregator struct {
	conversation []ConversationEntry
	pending      []string
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add feeds one classified entry into the aggregator. A user or assistant
// entry flushes any pending tool actions into a summary placed before it,
// so a summary always reflects the actions taken after the previous turn.
// Tool results and unclassified entries neither buffer nor flush.
func (a *Aggregator) Add(entry ClassifiedEntry) {
	switch entry.Kind {
	case KindUser:
		a.flush()
		if entry.Content != "" {
			a.conversation = append(a.conversation, NewUserEntry(entry.Timestamp, entry.Content))
		}
	case KindAssistant:
		a.flush()
		if entry.Content != "" {
			a.conversation = append(a.conversation, NewAssistantEntry(entry.Timestamp, entry.Content))
		}
	case KindToolInvocation:
		a.pending = append(a.pending, FormatToolAction(entry.Tool, entry.Input))
	}
}

// Finish flushes any trailing tool actions and returns the conversation
// in transcript order. The aggregator must not be reused afterwards.
func (a *Aggregator) Finish() []ConversationEntry {
	a.flush()
	return a.conversation
}

func (a *Aggregator) flush() {
	if len(a.pending) == 0 {
		return
	}
	a.conversation = append(a.conversation, NewToolSummary(a.pending))
	a.pending = nil
}

// FormatToolAction renders a tool invocation as a short human-readable
// action string. Unrecognized tools fall back to "used <name>" so new
// tool types degrade instead of breaking ingestion.
func FormatToolAction(tool string, input map[string]interface{}) string {
	switch tool {
	case "Edit", "MultiEdit":
		return "edited " + inputPath(input)
	case "Write":
		return "created " + inputPath(input)
	case "Read":
		return "read " + inputPath(input)
	case "Bash":
		return "ran " + truncate(inputString(input, "command", "<command>"), maxCommandLen)
	case "Glob", "Grep":
		return "searched for " + truncate(inputString(input, "pattern", "<pattern>"), maxPatternLen)
	case "Task":
		return "used subagent"
	case "WebSearch":
		return "used WebSearch"
	case "WebFetch":
		return "fetched " + truncate(inputString(input, "url", "<url>"), maxURLLen)
	case "TodoWrite":
		return "updated todo list"
	default:
		return fmt.Sprintf("used %s", tool)
	}
}

func inputPath(input map[string]interface{}) string {
	if path, ok := input["file_path"].(string); ok {
		return path
	}
	return inputString(input, "path", "<unknown>")
}

func inputString(input map[string]interface{}, key, fallback string) string {
	if s, ok := input[key].(string); ok {
		return s
	}
	return fallback
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
