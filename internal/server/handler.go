// Package server exposes the ingestion store over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iksnae/devlog/internal"
	"github.com/iksnae/devlog/internal/store"
)

// Handler handles receiver HTTP requests
type Handler struct {
	store *store.Store
}

// NewHandler creates a handler backed by the given store
func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes registers receiver routes with the echo server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ingest", h.Ingest)
	e.GET("/health", h.Health)
	e.GET("/sessions", h.ListSessions)
	e.GET("/stats", h.Stats)
}

// Health reports reachability only; it touches neither the store nor
// any credentials.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ingest accepts one session document per call and stores it
// idempotently: a repeated push of the same (machine_id, session_id)
// replaces the stored record instead of duplicating it.
func (h *Handler) Ingest(c echo.Context) error {
	var doc internal.SessionDocument
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status": "error",
			"error":  "invalid session document",
		})
	}
	if doc.MachineID == "" || doc.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status": "error",
			"error":  "machine_id and session_id are required",
		})
	}

	replaced, err := h.store.Upsert(c.Request().Context(), &doc)
	if err != nil {
		internal.LogError("Failed to store session %s from %s: %v", doc.SessionID, doc.MachineID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}

	status := "stored"
	if replaced {
		status = "updated"
	}
	internal.LogInfo("Session %s from machine %s %s", doc.SessionID, doc.MachineID, status)
	return c.JSON(http.StatusOK, map[string]string{
		"status":     status,
		"session_id": doc.SessionID,
	})
}

// ListSessions returns stored sessions filtered by machine, project,
// remote, and/or days.
func (h *Handler) ListSessions(c echo.Context) error {
	filter := store.Filter{
		Machine: c.QueryParam("machine"),
		Project: c.QueryParam("project"),
		Remote:  c.QueryParam("remote"),
		Limit:   50,
	}
	if days := queryDays(c); days > 0 {
		filter.Since = time.Now().UTC().AddDate(0, 0, -days)
	}

	sessions, err := h.store.ListSessions(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}
	if sessions == nil {
		sessions = []store.StoredSession{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions})
}

// Stats returns per-project activity aggregated across machines
func (h *Handler) Stats(c echo.Context) error {
	days := queryDays(c)
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	stats, err := h.store.ProjectStats(c.Request().Context(), since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
	}
	if stats == nil {
		stats = []internal.ProjectStats{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"days":     days,
		"projects": stats,
	})
}

func queryDays(c echo.Context) int {
	days := 0
	if v := c.QueryParam("days"); v != "" {
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0
			}
			days = days*10 + int(r-'0')
		}
	}
	return days
}
