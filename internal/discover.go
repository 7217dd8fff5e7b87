package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// TranscriptFromHookInput parses the JSON payload an assistant hook
// writes to stdin and returns the transcript path it names, if any.
func TranscriptFromHookInput(r io.Reader) (string, bool) {
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return "", false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}

	for _, key := range []string{"transcript_path", "session_file"} {
		if path, ok := payload[key].(string); ok && path != "" {
			return path, true
		}
	}
	return "", false
}

// FindMostRecentTranscript walks ~/.claude/projects for the most recently
// modified .jsonl transcript.
func FindMostRecentTranscript() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	root := filepath.Join(home, ".claude", "projects")
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("no transcript directory at %s", root)
	}

	path, err := mostRecentFile(root, ".jsonl", true)
	if err != nil {
		return "", fmt.Errorf("no transcripts found under %s", root)
	}
	return path, nil
}

// FindMostRecentDevlog returns the newest artifact in dir's .devlog folder
func FindMostRecentDevlog(dir string) (string, error) {
	devlogDir := filepath.Join(dir, OutputDirName)
	if _, err := os.Stat(devlogDir); err != nil {
		return "", fmt.Errorf("no %s directory in %s", OutputDirName, dir)
	}

	path, err := mostRecentFile(devlogDir, ".json", false)
	if err != nil {
		return "", fmt.Errorf("no devlog files found in %s", devlogDir)
	}
	return path, nil
}

func mostRecentFile(root, ext string, recurse bool) (string, error) {
	var bestPath string
	var bestTime time.Time

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if d.IsDir() {
			if !recurse && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ext {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if bestPath == "" || info.ModTime().After(bestTime) {
			bestPath, bestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if bestPath == "" {
		return "", os.ErrNotExist
	}
	return bestPath, nil
}
