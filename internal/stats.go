package internal

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ProjectStats aggregates session activity for one project on one machine
type ProjectStats struct {
	Machine       string `json:"machine"`
	Project       string `json:"project"`
	SessionCount  int    `json:"session_count"`
	PromptCount   int    `json:"prompt_count"`
	ToolCalls     int    `json:"tool_calls"`
	FilesTouched  int    `json:"files_touched"`
	PromptWords   int    `json:"prompt_words"`
	ResponseWords int    `json:"response_words"`
	LastActivity  string `json:"last_activity"`
}

// SessionStats summarizes a single session document
type SessionStats struct {
	Prompts       int
	ToolCalls     int
	FilesTouched  int
	PromptWords   int
	ResponseWords int
}

// AnalyzeSession derives activity counters from one session document
func AnalyzeSession(doc *SessionDocument) SessionStats {
	var stats SessionStats
	files := make(map[string]struct{})

	for _, entry := range doc.Conversation {
		switch entry.Type {
		case EntryTypeUser:
			stats.Prompts++
			stats.PromptWords += len(strings.Fields(entry.Content))
		case EntryTypeAssistant:
			stats.ResponseWords += len(strings.Fields(entry.Content))
		case EntryTypeToolSummary:
			stats.ToolCalls += len(entry.Actions)
			for _, action := range entry.Actions {
				if file, ok := fileFromAction(action); ok {
					files[file] = struct{}{}
				}
			}
		}
	}

	stats.FilesTouched = len(files)
	return stats
}

// fileFromAction recovers a file path from action strings like
// "edited src/main.go" or "read config.yaml".
func fileFromAction(action string) (string, bool) {
	for _, prefix := range []string{"edited ", "read ", "created "} {
		if strings.HasPrefix(action, prefix) {
			return action[len(prefix):], true
		}
	}
	return "", false
}

// GatherProjectStats scans dir recursively for devlog artifacts and
// aggregates activity per (machine, project), sorted by prompt count
// descending. days bounds the window; 0 means everything.
func GatherProjectStats(dir string, days int) ([]ProjectStats, error) {
	var cutoff time.Time
	if days > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -days)
	}

	byKey := make(map[string]*ProjectStats)
	err := walkDevlogs(dir, func(path string, doc *SessionDocument) bool {
		if !cutoff.IsZero() {
			if ts, err := time.Parse(time.RFC3339, doc.Timestamp); err == nil && ts.Before(cutoff) {
				return true
			}
		}

		project := filepath.Base(doc.ProjectDir)
		key := doc.MachineID + "\x00" + project
		entry, ok := byKey[key]
		if !ok {
			entry = &ProjectStats{Machine: doc.MachineID, Project: project}
			byKey[key] = entry
		}

		session := AnalyzeSession(doc)
		entry.SessionCount++
		entry.PromptCount += session.Prompts
		entry.ToolCalls += session.ToolCalls
		entry.FilesTouched += session.FilesTouched
		entry.PromptWords += session.PromptWords
		entry.ResponseWords += session.ResponseWords
		if doc.Timestamp > entry.LastActivity {
			entry.LastActivity = doc.Timestamp
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	result := make([]ProjectStats, 0, len(byKey))
	for _, entry := range byKey {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PromptCount > result[j].PromptCount
	})
	return result, nil
}
