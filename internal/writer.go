package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// OutputDirName is the project-relative directory devlog artifacts live in
const OutputDirName = ".devlog"

// shortIDLen is how much of the session id makes it into the filename
const shortIDLen = 8

// WriteOutput persists the session document under <project>/.devlog,
// creating the directory if needed, and returns the written path.
// Unlike the rest of the pipeline, a failure here is fatal to the
// invocation: the local artifact is the authoritative record.
func WriteOutput(doc *SessionDocument) (string, error) {
	outputDir := filepath.Join(doc.ProjectDir, OutputDirName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", &WriteError{Path: outputDir, Op: "mkdir", Err: err}
	}

	outputPath := filepath.Join(outputDir, outputFilename(doc.SessionID, time.Now().UTC()))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &WriteError{Path: outputPath, Op: "encode", Err: err}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return "", &WriteError{Path: outputPath, Op: "write", Err: err}
	}

	return outputPath, nil
}

// outputFilename derives a human-sortable, collision-resistant name:
// <UTC date>-<UTC time>-<short session id>.json
func outputFilename(sessionID string, now time.Time) string {
	shortID := sessionID
	if len(shortID) > shortIDLen {
		shortID = shortID[:shortIDLen]
	}
	return now.Format("2006-01-02-150405") + "-" + shortID + ".json"
}
