package internal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single transcript line; assistant turns can carry
// large embedded content.
const maxLineSize = 10 * 1024 * 1024

// ReadTranscript streams line-delimited records from r, invoking fn for
// each line that decodes to a JSON object. Blank lines are skipped and
// undecodable lines are logged and skipped — a bad line never aborts the
// stream. The returned error reflects only a failure of the source itself.
func ReadTranscript(r io.Reader, fn func(line int, rec RawRecord)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec RawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			perr := &ParseError{Line: lineNum, Err: err}
			LogWarn("Skipping line %d: %v", lineNum, perr.Err)
			continue
		}

		fn(lineNum, rec)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read transcript at line %d: %w", lineNum+1, err)
	}

	return nil
}
