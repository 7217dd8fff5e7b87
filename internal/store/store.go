// Package store persists pushed session documents in SQLite, keyed
// uniquely by (machine_id, session_id).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iksnae/devlog/internal"
)

// Store wraps the sessions database
type Store struct {
	db *sql.DB
}

// StoredSession is one persisted session record with its receipt metadata
type StoredSession struct {
	SessionID     string          `json:"session_id"`
	MachineID     string          `json:"machine_id"`
	ProjectDir    string          `json:"project_dir"`
	Timestamp     string          `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	GitRemote     *string         `json:"git_remote"`
	GitBranch     *string         `json:"git_branch"`
	GitCommit     *string         `json:"git_commit"`
	Conversation  json.RawMessage `json:"conversation"`
	ReceivedAt    string          `json:"received_at"`
}

// Filter narrows session listings
type Filter struct {
	Machine string
	Project string
	Remote  string
	Since   time.Time
	Limit   int
}

// Open opens (creating if needed) the sessions database at path and runs
// migrations. SQLite serializes writers, so the store is safe for
// concurrent pushes from multiple machines.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Concurrent upserts contend on the write lock; a single connection
	// queues them instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			machine_id TEXT NOT NULL,
			project_dir TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			schema_version TEXT,
			git_remote TEXT,
			git_branch TEXT,
			git_commit TEXT,
			conversation TEXT NOT NULL,
			received_at TEXT NOT NULL,
			UNIQUE(machine_id, session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_machine_timestamp ON sessions(machine_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_project ON sessions(project_dir)`,
		`CREATE INDEX IF NOT EXISTS idx_git_remote ON sessions(git_remote)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// Upsert stores doc under (doc.MachineID, doc.SessionID). A re-push of an
// existing pair replaces the stored record and refreshes received_at; the
// uniqueness is enforced by the table constraint in a single statement,
// so concurrent retries can never produce duplicate rows. The returned
// flag reports whether an existing record was replaced.
func (s *Store) Upsert(ctx context.Context, doc *internal.SessionDocument) (bool, error) {
	if doc.MachineID == "" || doc.SessionID == "" {
		return false, fmt.Errorf("machine_id and session_id are required")
	}

	conversation, err := json.Marshal(doc.Conversation)
	if err != nil {
		return false, fmt.Errorf("failed to serialize conversation: %w", err)
	}

	var gitRemote, gitBranch, gitCommit *string
	if doc.Git != nil {
		gitRemote = doc.Git.Remote
		gitBranch = &doc.Git.Branch
		gitCommit = &doc.Git.Commit
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Existence check is informational only; correctness rests on the
	// UNIQUE constraint driving the ON CONFLICT clause below.
	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE machine_id = ? AND session_id = ?`,
		doc.MachineID, doc.SessionID,
	).Scan(&existing)
	if err != nil {
		return false, fmt.Errorf("failed to check existing session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (
			session_id, machine_id, project_dir, timestamp,
			schema_version, git_remote, git_branch, git_commit,
			conversation, received_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(machine_id, session_id) DO UPDATE SET
			project_dir = excluded.project_dir,
			timestamp = excluded.timestamp,
			schema_version = excluded.schema_version,
			git_remote = excluded.git_remote,
			git_branch = excluded.git_branch,
			git_commit = excluded.git_commit,
			conversation = excluded.conversation,
			received_at = excluded.received_at`,
		doc.SessionID, doc.MachineID, doc.ProjectDir, doc.Timestamp,
		doc.SchemaVersion, gitRemote, gitBranch, gitCommit,
		string(conversation), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return existing > 0, nil
}

// ListSessions returns stored sessions matching the filter, most recently
// received first.
func (s *Store) ListSessions(ctx context.Context, filter Filter) ([]StoredSession, error) {
	query := `SELECT session_id, machine_id, project_dir, timestamp,
		schema_version, git_remote, git_branch, git_commit, conversation, received_at
		FROM sessions`

	var conds []string
	var args []interface{}
	if filter.Machine != "" {
		conds = append(conds, "machine_id = ?")
		args = append(args, filter.Machine)
	}
	if filter.Project != "" {
		conds = append(conds, "project_dir = ?")
		args = append(args, filter.Project)
	}
	if filter.Remote != "" {
		conds = append(conds, "git_remote = ?")
		args = append(args, filter.Remote)
	}
	if !filter.Since.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY received_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var sessions []StoredSession
	for rows.Next() {
		var sess StoredSession
		var conversation string
		if err := rows.Scan(
			&sess.SessionID, &sess.MachineID, &sess.ProjectDir, &sess.Timestamp,
			&sess.SchemaVersion, &sess.GitRemote, &sess.GitBranch, &sess.GitCommit,
			&conversation, &sess.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		sess.Conversation = json.RawMessage(conversation)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return sessions, nil
}

// ProjectStats aggregates activity per (machine, project) across stored
// sessions received since the cutoff (zero time means everything).
func (s *Store) ProjectStats(ctx context.Context, since time.Time) ([]internal.ProjectStats, error) {
	sessions, err := s.ListSessions(ctx, Filter{Since: since})
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*internal.ProjectStats)
	var order []string
	for _, sess := range sessions {
		var conversation []internal.ConversationEntry
		if err := json.Unmarshal(sess.Conversation, &conversation); err != nil {
			continue
		}
		doc := internal.SessionDocument{
			SessionID:    sess.SessionID,
			MachineID:    sess.MachineID,
			ProjectDir:   sess.ProjectDir,
			Timestamp:    sess.Timestamp,
			Conversation: conversation,
		}

		key := sess.MachineID + "\x00" + sess.ProjectDir
		entry, ok := byKey[key]
		if !ok {
			entry = &internal.ProjectStats{Machine: sess.MachineID, Project: sess.ProjectDir}
			byKey[key] = entry
			order = append(order, key)
		}

		session := internal.AnalyzeSession(&doc)
		entry.SessionCount++
		entry.PromptCount += session.Prompts
		entry.ToolCalls += session.ToolCalls
		entry.FilesTouched += session.FilesTouched
		entry.PromptWords += session.PromptWords
		entry.ResponseWords += session.ResponseWords
		if sess.Timestamp > entry.LastActivity {
			entry.LastActivity = sess.Timestamp
		}
	}

	result := make([]internal.ProjectStats, 0, len(order))
	for _, key := range order {
		result = append(result, *byKey[key])
	}
	return result, nil
}
