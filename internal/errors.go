package internal

import "fmt"

// ParseError represents a failure to decode a single transcript line
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError represents errors persisting the output artifact
type WriteError struct {
	Path string
	Op   string // "mkdir", "encode", "write"
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// PushError represents errors relaying a session to the remote endpoint
type PushError struct {
	Endpoint string
	Err      error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("push error [%s]: %v", e.Endpoint, e.Err)
}

func (e *PushError) Unwrap() error {
	return e.Err
}

// ConfigError represents errors loading or saving the config file
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
