// Package api provides HTTP handlers and the main API server logic for the
// deal-flow document service.
//
// It exposes RESTful endpoints for running requirement-gathering conversations
// and retrieving generated documents. The API integrates the flow engine,
// the generation client, and the store modules.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/catalog"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/flow"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/genai"
	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/store"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds server configuration.
type Opts struct {
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the HTTP listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server wires the flow engine, catalog, and store behind HTTP handlers.
type Server struct {
	st      store.Store
	engine  *flow.Engine
	catalog *catalog.Catalog
	addr    string
}

// NewServer creates a server over explicit collaborators; used directly by
// tests and by Run.
func NewServer(st store.Store, engine *flow.Engine, cat *catalog.Catalog, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{st: st, engine: engine, catalog: cat, addr: cfg.Addr}
}

// Run assembles the production configuration and serves until the listener
// fails: the store chosen by DSN (in-memory when none is given), the OpenAI
// generation client, and the shipped catalog.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, apiOpts []Option) error {
	st, err := buildStore(storeOpts)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	gen, err := genai.NewClient(genaiOpts...)
	if err != nil {
		return fmt.Errorf("initialize generation client: %w", err)
	}

	cat := catalog.Default()
	srv := NewServer(st, flow.NewEngine(cat, gen), cat, apiOpts...)

	slog.Info("Server.Run: API listening", "addr", srv.addr)
	return http.ListenAndServe(srv.addr, srv.Handler())
}

// buildStore selects a backend from the configured DSN.
func buildStore(opts []store.Option) (store.Store, error) {
	var cfg store.Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Info("Server.buildStore: no DSN configured, using in-memory store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(cfg.DSN) == "postgres" {
		return store.NewPostgresStore(opts...)
	}
	return store.NewSQLiteStore(opts...)
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", s.sessionsHandler)
	mux.HandleFunc("/sessions/", s.sessionHandler)
	mux.HandleFunc("/document-types", s.documentTypesHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	return mux
}
