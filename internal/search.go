package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SearchScope selects which conversation entries a search inspects
type SearchScope int

const (
	// ScopeConversations searches user and assistant turns (default)
	ScopeConversations SearchScope = iota
	// ScopePrompts searches user turns only
	ScopePrompts
	// ScopeEverything additionally searches tool summaries
	ScopeEverything
)

// ParseSearchScope maps the CLI flag value to a scope
func ParseSearchScope(s string) SearchScope {
	switch s {
	case "prompts":
		return ScopePrompts
	case "all":
		return ScopeEverything
	default:
		return ScopeConversations
	}
}

// SearchResult is one matching conversation entry with its context
type SearchResult struct {
	SessionID   string
	SessionFile string
	Machine     string
	Project     string
	Timestamp   string
	EntryType   string
	Snippet     string
}

// SearchOptions controls a devlog search
type SearchOptions struct {
	Scope SearchScope
	Days  int // 0 means no cutoff
	Limit int
}

// SearchDevlogs scans dir recursively for devlog artifacts and returns
// entries whose content contains query (case-insensitive), most recent
// sessions first. Unreadable or non-devlog JSON files are skipped.
func SearchDevlogs(dir, query string, opts SearchOptions) ([]SearchResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	var cutoff time.Time
	if opts.Days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -opts.Days)
	}
	queryLower := strings.ToLower(query)

	var results []SearchResult
	err := walkDevlogs(dir, func(path string, doc *SessionDocument) bool {
		if !cutoff.IsZero() {
			if ts, err := time.Parse(time.RFC3339, doc.Timestamp); err == nil && ts.Before(cutoff) {
				return true
			}
		}

		for _, entry := range doc.Conversation {
			match, entryType := matchEntry(entry, queryLower, opts.Scope)
			if !match {
				continue
			}
			results = append(results, SearchResult{
				SessionID:   doc.SessionID,
				SessionFile: filepath.Base(path),
				Machine:     doc.MachineID,
				Project:     doc.ProjectDir,
				Timestamp:   doc.Timestamp,
				EntryType:   entryType,
				Snippet:     makeSnippet(entryText(entry), queryLower),
			})
			if len(results) >= opts.Limit {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Timestamp > results[j].Timestamp
	})
	return results, nil
}

// walkDevlogs invokes fn for each parseable devlog artifact under dir.
// fn returns false to stop the walk early.
func walkDevlogs(dir string, fn func(path string, doc *SessionDocument) bool) error {
	stop := false
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || stop {
			if stop {
				return filepath.SkipAll
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var doc SessionDocument
		if err := json.Unmarshal(data, &doc); err != nil || doc.SchemaVersion == "" {
			return nil
		}
		if !fn(path, &doc) {
			stop = true
		}
		return nil
	})
}

func matchEntry(entry ConversationEntry, queryLower string, scope SearchScope) (bool, string) {
	switch entry.Type {
	case EntryTypeUser:
		return strings.Contains(strings.ToLower(entry.Content), queryLower), "user"
	case EntryTypeAssistant:
		if scope == ScopePrompts {
			return false, ""
		}
		return strings.Contains(strings.ToLower(entry.Content), queryLower), "assistant"
	case EntryTypeToolSummary:
		if scope != ScopeEverything {
			return false, ""
		}
		joined := strings.Join(entry.Actions, " | ")
		return strings.Contains(strings.ToLower(joined), queryLower), "tool"
	}
	return false, ""
}

func entryText(entry ConversationEntry) string {
	if entry.Type == EntryTypeToolSummary {
		return strings.Join(entry.Actions, " | ")
	}
	return entry.Content
}

// makeSnippet returns the matched text with surrounding context
func makeSnippet(content, queryLower string) string {
	const contextChars = 80

	pos := strings.Index(strings.ToLower(content), queryLower)
	if pos < 0 {
		if len(content) > 2*contextChars {
			return content[:2*contextChars] + "..."
		}
		return content
	}

	start := 0
	if pos > contextChars {
		start = pos - contextChars
		if sp := strings.IndexByte(content[start:], ' '); sp >= 0 && start+sp < pos {
			start += sp + 1
		}
	}
	end := pos + len(queryLower) + contextChars
	if end > len(content) {
		end = len(content)
	}

	snippet := strings.ReplaceAll(content[start:end], "\n", " ")
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}
