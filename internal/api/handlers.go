package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxCommandBytes caps the POST /v1/command body size.
const maxCommandBytes = 4096

// HealthzResponse is the GET /healthz payload.
type HealthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Commands      int    `json:"commands"`
}

// CommandsResponse is the GET /v1/commands payload.
type CommandsResponse struct {
	Commands []string `json:"commands"`
}

// AuditRecord is one entry in the GET /v1/audit payload.
type AuditRecord struct {
	ID        string    `json:"id"`
	Line      string    `json:"line"`
	Command   string    `json:"command"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditResponse is the GET /v1/audit payload.
type AuditResponse struct {
	Entries []AuditRecord `json:"entries"`
}

// ErrorResponse is the error payload for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealthz handles GET /healthz (no auth).
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Commands:      len(s.console.Commands()),
	})
}

// handleCommand handles POST /v1/command. The body is one raw console line;
// the response body is the report text it produced.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	line := strings.TrimSpace(string(body))
	if line == "" {
		s.writeError(w, http.StatusBadRequest, "empty command line")
		return
	}

	s.mu.Lock()
	s.recorder.Drain()
	s.console.Dispatch(line)
	messages := s.recorder.Drain()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for _, msg := range messages {
		io.WriteString(w, msg)
		io.WriteString(w, "\n")
	}
}

// handleCommands handles GET /v1/commands.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CommandsResponse{Commands: s.console.Commands()})
}

// handleAudit handles GET /v1/audit?limit=N.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		s.writeError(w, http.StatusNotFound, "audit trail is disabled")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := s.audit.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to read audit trail", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read audit trail")
		return
	}

	records := make([]AuditRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, AuditRecord{
			ID:        entry.ID,
			Line:      entry.Line,
			Command:   entry.Command,
			Outcome:   entry.Outcome,
			CreatedAt: entry.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, AuditResponse{Entries: records})
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
