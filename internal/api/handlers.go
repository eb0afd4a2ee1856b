// HTTP handlers for the conversation endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/flow"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/store"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/util"
)

// turnResult is the wire form of one conversation turn.
type turnResult struct {
	SessionID  string           `json:"session_id"`
	Message    string           `json:"message,omitempty"`
	Options    []catalog.Option `json:"options,omitempty"`
	Phase      models.Phase     `json:"phase"`
	Complete   bool             `json:"complete"`
	Document   string           `json:"document,omitempty"`
	Disclaimer string           `json:"disclaimer,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func turnResultFrom(sessionID string, turn flow.Turn) turnResult {
	return turnResult{
		SessionID:  sessionID,
		Message:    turn.Message,
		Options:    turn.Options,
		Phase:      turn.State.Phase,
		Complete:   turn.Complete,
		Document:   turn.Document,
		Disclaimer: turn.Disclaimer,
		Error:      turn.Error,
	}
}

// sessionsHandler handles POST /sessions (create) and GET /sessions (list).
func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	switch r.Method {
	case http.MethodPost:
		s.createSessionHandler(w, r)
	case http.MethodGet:
		s.listSessionsHandler(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		slog.Warn("Server.sessionsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.createSessionHandler: processing create request")

	var req models.SessionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("Server.createSessionHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.createSessionHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	greeting := s.engine.Greeting()
	now := time.Now()
	session := models.Session{
		ID:          util.GenerateSessionID(),
		DealContext: req.DealContext,
		State:       greeting.State,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.st.SaveSession(session); err != nil {
		slog.Error("Server.createSessionHandler: save failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to create session"))
		return
	}

	slog.Info("Server.createSessionHandler: session created", "session", session.ID)
	writeJSONResponse(w, http.StatusCreated, models.SuccessWithMessage("Session created", turnResultFrom(session.ID, greeting)))
}

func (s *Server) listSessionsHandler(w http.ResponseWriter, _ *http.Request) {
	summaries, err := s.st.ListSessions()
	if err != nil {
		slog.Error("Server.listSessionsHandler: list failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list sessions"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(summaries))
}

// sessionHandler routes /sessions/{id}, /sessions/{id}/messages, and
// /sessions/{id}/documents by path segment.
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/sessions/"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session id required"))
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.getSessionHandler(w, id)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.deleteSessionHandler(w, id)
	case len(parts) == 2 && parts[1] == "messages" && r.Method == http.MethodPost:
		s.postMessageHandler(w, r, id)
	case len(parts) == 2 && parts[1] == "documents" && r.Method == http.MethodGet:
		s.getDocumentsHandler(w, id)
	default:
		slog.Warn("Server.sessionHandler: no route", "method", r.Method, "path", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) getSessionHandler(w http.ResponseWriter, id string) {
	session, err := s.st.GetSession(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	if err != nil {
		slog.Error("Server.getSessionHandler: lookup failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(session))
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, id string) {
	err := s.st.DeleteSession(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	if err != nil {
		slog.Error("Server.deleteSessionHandler: delete failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to delete session"))
		return
	}
	slog.Info("Server.deleteSessionHandler: session deleted", "session", id)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session deleted", nil))
}

// postMessageHandler advances the conversation by one turn and persists the
// successor state. A completed turn also records the generated document.
func (s *Server) postMessageHandler(w http.ResponseWriter, r *http.Request, id string) {
	session, err := s.st.GetSession(id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	if err != nil {
		slog.Error("Server.postMessageHandler: lookup failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session"))
		return
	}

	var req models.SessionMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.postMessageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.postMessageHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	turn, err := s.engine.Advance(r.Context(), session.State, req.Message, session.DealContext)
	if err != nil {
		slog.Error("Server.postMessageHandler: engine rejected state", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Conversation state is corrupted; start a new session"))
		return
	}

	session.State = turn.State
	session.UpdatedAt = time.Now()
	if err := s.st.SaveSession(*session); err != nil {
		slog.Error("Server.postMessageHandler: save failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to persist session"))
		return
	}

	if turn.Complete && turn.Document != "" {
		doc := models.GeneratedDocument{
			ID:           util.GenerateDocumentID(),
			SessionID:    session.ID,
			DocumentType: session.State.DocumentType,
			Content:      turn.Document,
			Disclaimer:   turn.Disclaimer,
			CreatedAt:    time.Now(),
		}
		if err := s.st.AddDocument(doc); err != nil {
			// The user already has the document in this response; losing the
			// audit row is logged, not fatal.
			slog.Error("Server.postMessageHandler: document save failed", "error", err, "session", id)
		} else {
			slog.Info("Server.postMessageHandler: document generated", "session", id, "document", doc.ID, "type", doc.DocumentType)
		}
	}

	writeJSONResponse(w, http.StatusOK, models.Success(turnResultFrom(session.ID, turn)))
}

func (s *Server) getDocumentsHandler(w http.ResponseWriter, id string) {
	if _, err := s.st.GetSession(id); errors.Is(err, store.ErrNotFound) {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	} else if err != nil {
		slog.Error("Server.getDocumentsHandler: lookup failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session"))
		return
	}

	docs, err := s.st.GetDocuments(id)
	if err != nil {
		slog.Error("Server.getDocumentsHandler: query failed", "error", err, "session", id)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load documents"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(docs))
}

// documentTypesHandler handles GET /document-types.
func (s *Server) documentTypesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.catalog.Types()))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("ok", nil))
}

// statsHandler reports session counts by phase plus the catalog size.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	summaries, err := s.st.ListSessions()
	if err != nil {
		slog.Error("Server.statsHandler: list failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to compute stats"))
		return
	}
	byPhase := make(map[models.Phase]int)
	for _, sum := range summaries {
		byPhase[sum.Phase]++
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]interface{}{
		"sessions":          len(summaries),
		"sessions_by_phase": byPhase,
		"document_types":    len(s.catalog.Types()),
	}))
}
