package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// Opts holds configuration shared by the SQL-backed stores.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithSQLiteDSN sets the SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN sets the PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite3". Anything that is
// not recognizably a Postgres URL or key-value connection string is treated
// as a SQLite file path.
func DetectDSNType(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "postgres"
	}
	if strings.Contains(lower, "host=") || strings.Contains(lower, "dbname=") {
		return "postgres"
	}
	return "sqlite3"
}

// marshalSession serializes the JSON columns of a session row.
func marshalSession(s models.Session) (dealCtx, state string, err error) {
	ctxJSON, err := json.Marshal(s.DealContext)
	if err != nil {
		return "", "", fmt.Errorf("marshal deal context for session %s: %w", s.ID, err)
	}
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return "", "", fmt.Errorf("marshal state for session %s: %w", s.ID, err)
	}
	return string(ctxJSON), string(stateJSON), nil
}

// rowScanner abstracts sql.Row and sql.Rows for the session scan helper.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession reads one session row: id, deal_context, state, created_at,
// updated_at.
func scanSession(row rowScanner) (models.Session, error) {
	var s models.Session
	var ctxJSON, stateJSON string
	if err := row.Scan(&s.ID, &ctxJSON, &stateJSON, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(ctxJSON), &s.DealContext); err != nil {
		return s, fmt.Errorf("unmarshal deal context for session %s: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(stateJSON), &s.State); err != nil {
		return s, fmt.Errorf("unmarshal state for session %s: %w", s.ID, err)
	}
	return s, nil
}

// scanDocument reads one document row: id, session_id, document_type,
// content, disclaimer, created_at.
func scanDocument(rows *sql.Rows) (models.GeneratedDocument, error) {
	var d models.GeneratedDocument
	err := rows.Scan(&d.ID, &d.SessionID, &d.DocumentType, &d.Content, &d.Disclaimer, &d.CreatedAt)
	if err != nil {
		return d, fmt.Errorf("scan document row: %w", err)
	}
	return d, nil
}
