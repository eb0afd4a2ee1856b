package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/flow"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/store"
)

// stubGenerator returns canned content or a configured error.
type stubGenerator struct {
	err   error
	calls int
}

func (g *stubGenerator) GenerateDocument(_ context.Context, documentType, _ string, _ models.DealContext) (*models.GeneratedContent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &models.GeneratedContent{
		Content:    "DRAFT " + documentType,
		Disclaimer: "stub disclaimer",
	}, nil
}

func newTestServer(gen *stubGenerator) *Server {
	cat := catalog.Default()
	return NewServer(store.NewInMemoryStore(), flow.NewEngine(cat, gen), cat)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type wireTurn struct {
	SessionID  string           `json:"session_id"`
	Message    string           `json:"message"`
	Options    []catalog.Option `json:"options"`
	Phase      models.Phase     `json:"phase"`
	Complete   bool             `json:"complete"`
	Document   string           `json:"document"`
	Disclaimer string           `json:"disclaimer"`
	Error      string           `json:"error"`
}

func decodeTurn(t *testing.T, rec *httptest.ResponseRecorder) wireTurn {
	t.Helper()
	var resp struct {
		Status string   `json:"status"`
		Result wireTurn `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	if resp.Status != "ok" {
		t.Fatalf("status = %q, body: %s", resp.Status, rec.Body.String())
	}
	return resp.Result
}

func createSession(t *testing.T, h http.Handler, dealCtx models.DealContext) wireTurn {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/sessions", models.SessionCreateRequest{DealContext: dealCtx})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d, body: %s", rec.Code, rec.Body.String())
	}
	return decodeTurn(t, rec)
}

func sendMessage(t *testing.T, h http.Handler, sessionID, msg string) wireTurn {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sessionID+"/messages", models.SessionMessageRequest{Message: msg})
	if rec.Code != http.StatusOK {
		t.Fatalf("send %q: status %d, body: %s", msg, rec.Code, rec.Body.String())
	}
	return decodeTurn(t, rec)
}

func TestCreateSessionReturnsGreeting(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	turn := createSession(t, h, models.DealContext{"deal": "Project Acacia"})

	if turn.SessionID == "" || !strings.HasPrefix(turn.SessionID, "s_") {
		t.Errorf("session id = %q", turn.SessionID)
	}
	if turn.Phase != models.PhaseSelectingType {
		t.Errorf("phase = %s, want selecting_type", turn.Phase)
	}
	if len(turn.Options) != len(catalog.Default().Types()) {
		t.Errorf("greeting options = %d", len(turn.Options))
	}
}

func TestCreateSessionEmptyBody(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("empty body should create a session, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateSessionRejectsOversizedContext(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	dealCtx := models.DealContext{}
	for i := 0; i <= models.MaxDealContextEntries; i++ {
		dealCtx[fmt.Sprintf("k%d", i)] = "v"
	}
	rec := doJSON(t, h, http.MethodPost, "/sessions", models.SessionCreateRequest{DealContext: dealCtx})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFullConversationOverHTTP(t *testing.T) {
	gen := &stubGenerator{}
	h := newTestServer(gen).Handler()

	sess := createSession(t, h, models.DealContext{"deal": "Project Acacia"})

	turn := sendMessage(t, h, sess.SessionID, "I need an NDA")
	if turn.Phase != models.PhaseGathering {
		t.Fatalf("phase = %s after type selection", turn.Phase)
	}

	for _, msg := range []string{"mutual", "1", "2 years", "nsw"} {
		turn = sendMessage(t, h, sess.SessionID, msg)
	}
	if turn.Phase != models.PhaseConfirming {
		t.Fatalf("phase = %s after answering all questions\nmessage: %s", turn.Phase, turn.Message)
	}

	turn = sendMessage(t, h, sess.SessionID, "generate")
	if !turn.Complete || turn.Phase != models.PhaseComplete {
		t.Fatalf("generation turn: %+v", turn)
	}
	if turn.Document != "DRAFT Non-Disclosure Agreement" {
		t.Errorf("document = %q", turn.Document)
	}
	if turn.Disclaimer != "stub disclaimer" {
		t.Errorf("disclaimer = %q", turn.Disclaimer)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d", gen.calls)
	}

	// The generated document was persisted for the session.
	rec := doJSON(t, h, http.MethodGet, "/sessions/"+sess.SessionID+"/documents", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("documents: status %d", rec.Code)
	}
	var docsResp struct {
		Result []models.GeneratedDocument `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &docsResp); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if len(docsResp.Result) != 1 || docsResp.Result[0].DocumentType != "Non-Disclosure Agreement" {
		t.Errorf("documents = %+v", docsResp.Result)
	}
}

func TestGenerationFailureSurfacesError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream down")}
	h := newTestServer(gen).Handler()

	sess := createSession(t, h, nil)
	for _, msg := range []string{"nda", "mutual", "1", "2 years", "nsw"} {
		sendMessage(t, h, sess.SessionID, msg)
	}

	turn := sendMessage(t, h, sess.SessionID, "generate")
	if turn.Error == "" {
		t.Error("expected error field on failed generation")
	}
	if turn.Phase != models.PhaseConfirming {
		t.Errorf("phase = %s, want confirming for retry", turn.Phase)
	}
}

func TestPostMessageValidation(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()
	sess := createSession(t, h, nil)

	rec := doJSON(t, h, http.MethodPost, "/sessions/"+sess.SessionID+"/messages", models.SessionMessageRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty message: status = %d, want 400", rec.Code)
	}

	long := models.SessionMessageRequest{Message: strings.Repeat("a", models.MaxMessageLength+1)}
	rec = doJSON(t, h, http.MethodPost, "/sessions/"+sess.SessionID+"/messages", long)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized message: status = %d, want 400", rec.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()
	sess := createSession(t, h, nil)

	rec := doJSON(t, h, http.MethodGet, "/sessions/"+sess.SessionID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get session: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/sessions", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("list sessions: status %d", rec.Code)
	}
	var listResp struct {
		Result []models.SessionSummary `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Result) != 1 {
		t.Errorf("list = %+v", listResp.Result)
	}

	rec = doJSON(t, h, http.MethodDelete, "/sessions/"+sess.SessionID, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete session: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/sessions/"+sess.SessionID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted session: status %d, want 404", rec.Code)
	}
}

func TestUnknownSessionRoutes(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/sessions/s_missing"},
		{http.MethodDelete, "/sessions/s_missing"},
		{http.MethodGet, "/sessions/s_missing/documents"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: status %d, want 404", tc.method, tc.path, rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodPost, "/sessions/s_missing/messages", models.SessionMessageRequest{Message: "hi"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("message to missing session: status %d, want 404", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	rec := doJSON(t, h, http.MethodPut, "/sessions", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /sessions: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/document-types", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /document-types: status %d", rec.Code)
	}
}

func TestDocumentTypesEndpoint(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()

	rec := doJSON(t, h, http.MethodGet, "/document-types", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Result []catalog.DocumentType `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Result) != len(catalog.Default().Types()) {
		t.Errorf("types = %d", len(resp.Result))
	}
}

func TestHealthAndStats(t *testing.T) {
	h := newTestServer(&stubGenerator{}).Handler()
	createSession(t, h, nil)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: status %d", rec.Code)
	}
	var resp struct {
		Result struct {
			Sessions      int `json:"sessions"`
			DocumentTypes int `json:"document_types"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Result.Sessions != 1 {
		t.Errorf("sessions = %d, want 1", resp.Result.Sessions)
	}
	if resp.Result.DocumentTypes != len(catalog.Default().Types()) {
		t.Errorf("document_types = %d", resp.Result.DocumentTypes)
	}
}
