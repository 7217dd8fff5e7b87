package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Pusher relays session documents to a configured remote endpoint.
// Pushing is strictly best-effort: local persistence is authoritative
// and a failed push never propagates beyond a log line.
type Pusher struct {
	cfg    PushConfig
	client *http.Client
}

// NewPusher creates a pusher with a bounded request timeout
func NewPusher(cfg PushConfig) *Pusher {
	return &Pusher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Push transmits doc, tagged with machineID, to the configured endpoint.
// It returns an error for callers that want to report the outcome (the
// standalone push command); the ingest path logs it and moves on.
func (p *Pusher) Push(ctx context.Context, doc *SessionDocument, machineID string) error {
	if !p.cfg.Enabled {
		LogDebug("Push is disabled in config")
		return nil
	}

	payload := *doc
	payload.MachineID = machineID

	body, err := json.Marshal(&payload)
	if err != nil {
		return &PushError{Endpoint: p.cfg.Endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &PushError{Endpoint: p.cfg.Endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	LogInfo("Pushing session %s to %s", doc.SessionID, p.cfg.Endpoint)

	resp, err := p.client.Do(req)
	if err != nil {
		return &PushError{Endpoint: p.cfg.Endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &PushError{
			Endpoint: p.cfg.Endpoint,
			Err:      fmt.Errorf("remote returned %s: %s", resp.Status, string(msg)),
		}
	}

	LogInfo("Session %s pushed successfully", doc.SessionID)
	return nil
}
