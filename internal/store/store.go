// Package store provides storage backends for conversation sessions and
// generated documents.
//
// It includes an in-memory store for tests and single-process use, plus
// SQLite and PostgreSQL backends selected by DSN.
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract shared by all backends. Sessions are
// upserted whole: the conversation state is opaque JSON to the store.
type Store interface {
	SaveSession(s models.Session) error
	GetSession(id string) (*models.Session, error)
	ListSessions() ([]models.SessionSummary, error)
	DeleteSession(id string) error
	AddDocument(d models.GeneratedDocument) error
	GetDocuments(sessionID string) ([]models.GeneratedDocument, error)
	Close() error
}

// InMemoryStore keeps sessions and documents in maps guarded by a mutex.
type InMemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]models.Session
	documents map[string][]models.GeneratedDocument // keyed by session id
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions:  make(map[string]models.Session),
		documents: make(map[string][]models.GeneratedDocument),
	}
}

func (s *InMemoryStore) SaveSession(sess models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *InMemoryStore) GetSession(id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *InMemoryStore) ListSessions() ([]models.SessionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summaries := make([]models.SessionSummary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		summaries = append(summaries, sess.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *InMemoryStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	delete(s.documents, id)
	return nil
}

func (s *InMemoryStore) AddDocument(d models.GeneratedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[d.SessionID]; !ok {
		return ErrNotFound
	}
	s.documents[d.SessionID] = append(s.documents[d.SessionID], d)
	return nil
}

func (s *InMemoryStore) GetDocuments(sessionID string) ([]models.GeneratedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.documents[sessionID]
	out := make([]models.GeneratedDocument, len(docs))
	copy(out, docs)
	return out, nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
