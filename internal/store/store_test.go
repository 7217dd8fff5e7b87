package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/iksnae/devlog/internal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func pushableDocument(sessionID, machineID string) *internal.SessionDocument {
	doc := internal.CreateTestDocument(sessionID)
	doc.MachineID = machineID
	return doc
}

func TestStore_UpsertAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	replaced, err := st.Upsert(ctx, pushableDocument("s1", "machine-a"))
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if replaced {
		t.Error("first upsert reported replaced")
	}

	sessions, err := st.ListSessions(ctx, Filter{})
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	sess := sessions[0]
	if sess.SessionID != "s1" || sess.MachineID != "machine-a" {
		t.Errorf("stored session = %+v", sess)
	}
	if sess.ReceivedAt == "" {
		t.Error("received_at not assigned")
	}

	// The conversation payload stays queryable as structured data.
	var conversation []internal.ConversationEntry
	if err := json.Unmarshal(sess.Conversation, &conversation); err != nil {
		t.Fatalf("conversation not decodable: %v", err)
	}
	if len(conversation) != 3 {
		t.Errorf("conversation length = %d, want 3", len(conversation))
	}
}

func TestStore_UpsertIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Upsert(ctx, pushableDocument("s1", "machine-a")); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	first, err := st.ListSessions(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}

	replaced, err := st.Upsert(ctx, pushableDocument("s1", "machine-a"))
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if !replaced {
		t.Error("re-push not reported as replaced")
	}

	second, err := st.ListSessions(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 {
		t.Fatalf("got %d sessions after re-push, want exactly 1", len(second))
	}

	// The replacement's receipt timestamp is strictly later.
	before, err := time.Parse(time.RFC3339Nano, first[0].ReceivedAt)
	if err != nil {
		t.Fatalf("bad received_at %q: %v", first[0].ReceivedAt, err)
	}
	after, err := time.Parse(time.RFC3339Nano, second[0].ReceivedAt)
	if err != nil {
		t.Fatalf("bad received_at %q: %v", second[0].ReceivedAt, err)
	}
	if !after.After(before) {
		t.Errorf("received_at not refreshed: %s then %s", before, after)
	}
}

func TestStore_SameSessionDifferentMachines(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Upsert(ctx, pushableDocument("s1", "machine-a")); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Upsert(ctx, pushableDocument("s1", "machine-b")); err != nil {
		t.Fatal(err)
	}

	sessions, err := st.ListSessions(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Errorf("got %d sessions, want 2 (uniqueness is per machine)", len(sessions))
	}
}

func TestStore_UpsertRequiresIdentity(t *testing.T) {
	st := openTestStore(t)

	doc := internal.CreateTestDocument("s1") // no machine id
	if _, err := st.Upsert(context.Background(), doc); err == nil {
		t.Error("Upsert() accepted a document without machine_id")
	}
}

func TestStore_ConcurrentUpserts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := st.Upsert(ctx, pushableDocument("s1", "machine-a"))
			errs <- err
		}()
	}
	for i := 0; i < workers; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent Upsert() error = %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Errorf("got %d sessions after concurrent retries, want exactly 1", len(sessions))
	}
}

func TestStore_ListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	remote := "git@github.com:iksnae/alpha.git"
	docA := pushableDocument("s1", "machine-a")
	docA.ProjectDir = "/home/dev/alpha"
	docA.Git = &internal.GitInfo{Remote: &remote, Branch: "main", Commit: "abc"}
	docA.Timestamp = time.Now().UTC().Format(time.RFC3339)

	docB := pushableDocument("s2", "machine-b")
	docB.ProjectDir = "/home/dev/beta"
	docB.Timestamp = time.Now().UTC().AddDate(0, 0, -30).Format(time.RFC3339)

	for _, doc := range []*internal.SessionDocument{docA, docB} {
		if _, err := st.Upsert(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by machine", Filter{Machine: "machine-a"}, []string{"s1"}},
		{"by project", Filter{Project: "/home/dev/beta"}, []string{"s2"}},
		{"by remote", Filter{Remote: remote}, []string{"s1"}},
		{"by time window", Filter{Since: time.Now().UTC().AddDate(0, 0, -7)}, []string{"s1"}},
		{"machine and time", Filter{Machine: "machine-b", Since: time.Now().UTC().AddDate(0, 0, -60)}, []string{"s2"}},
		{"no match", Filter{Machine: "machine-z"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := st.ListSessions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListSessions() error = %v", err)
			}
			if len(sessions) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(sessions), len(tt.want))
			}
			for i, id := range tt.want {
				if sessions[i].SessionID != id {
					t.Errorf("session %d = %q, want %q", i, sessions[i].SessionID, id)
				}
			}
		})
	}
}

func TestStore_ProjectStats(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	doc := pushableDocument("s1", "machine-a")
	doc.ProjectDir = "/home/dev/alpha"
	doc.Timestamp = time.Now().UTC().Format(time.RFC3339)
	if _, err := st.Upsert(ctx, doc); err != nil {
		t.Fatal(err)
	}

	stats, err := st.ProjectStats(ctx, time.Now().UTC().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("ProjectStats() error = %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d projects, want 1", len(stats))
	}
	if stats[0].SessionCount != 1 || stats[0].PromptCount != 1 {
		t.Errorf("stats = %+v", stats[0])
	}
}
