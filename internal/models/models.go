// Package models defines the core data structures for the dealflow
// document-requirements service.
//
// It includes conversation state, answer values, session records, and the API
// response envelope shared across modules.
package models

import (
	"errors"
	"time"
)

// Phase represents the coarse state of a requirements conversation.
type Phase string

const (
	// PhaseSelectingType means no document type has been chosen yet.
	PhaseSelectingType Phase = "selecting_type"
	// PhaseGathering means the conversation is walking the question flow.
	PhaseGathering Phase = "gathering"
	// PhaseConfirming means all required questions are answered and the user
	// must choose between generating and modifying.
	PhaseConfirming Phase = "confirming"
	// PhaseGenerating means a generation call is in flight.
	PhaseGenerating Phase = "generating"
	// PhaseComplete means generation succeeded; the conversation is terminal.
	PhaseComplete Phase = "complete"
)

// IsValidPhase checks if the given phase is supported.
func IsValidPhase(p Phase) bool {
	switch p {
	case PhaseSelectingType, PhaseGathering, PhaseConfirming, PhaseGenerating, PhaseComplete:
		return true
	default:
		return false
	}
}

// Answer is the tagged value stored for one answered question. Option-derived
// answers carry the option's canonical value; custom answers carry the user's
// raw text with Custom set, so downstream formatting never has to guess which
// kind it holds.
type Answer struct {
	Value  string `json:"value"`
	Custom bool   `json:"custom,omitempty"`
}

// ConversationState is the full state of one requirements conversation. It is
// never shared between conversations; each turn derives a new value from the
// previous one, and the caller persists it between turns.
type ConversationState struct {
	Phase         Phase             `json:"phase"`
	DocumentType  string            `json:"document_type,omitempty"` // canonical catalog name, empty until chosen
	Answers       map[string]Answer `json:"answers,omitempty"`       // question id -> answer
	QuestionIndex int               `json:"question_index"`          // cursor into the flow, meaningful in gathering
}

// NewConversationState returns a fresh state at the start of a session.
func NewConversationState() ConversationState {
	return ConversationState{
		Phase:   PhaseSelectingType,
		Answers: make(map[string]Answer),
	}
}

// Clone returns a deep copy of the state. Advance works on a clone so the
// caller's value is never mutated in place.
func (s ConversationState) Clone() ConversationState {
	out := s
	out.Answers = make(map[string]Answer, len(s.Answers))
	for id, a := range s.Answers {
		out.Answers[id] = a
	}
	return out
}

// DealContext is the opaque key-value bundle describing the surrounding
// business transaction. It is injected verbatim into generation prompts and
// never validated here.
type DealContext map[string]string

// Session ties a conversation state to an id and the deal context supplied at
// enrollment. The store persists sessions between turns.
type Session struct {
	ID          string            `json:"id"`
	DealContext DealContext       `json:"deal_context,omitempty"`
	State       ConversationState `json:"state"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	ID           string    `json:"id"`
	Phase        Phase     `json:"phase"`
	DocumentType string    `json:"document_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary derives the listing view from a session.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:           s.ID,
		Phase:        s.State.Phase,
		DocumentType: s.State.DocumentType,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// GeneratedContent is what the generation collaborator returns for one call.
type GeneratedContent struct {
	Content    string `json:"content"`
	Disclaimer string `json:"disclaimer"`
}

// GeneratedDocument is the stored audit record of one successful generation.
type GeneratedDocument struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	DocumentType string    `json:"document_type"`
	Content      string    `json:"content"`
	Disclaimer   string    `json:"disclaimer"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validation constants for input validation
const (
	// MaxMessageLength defines the maximum allowed length for one user message.
	MaxMessageLength = 4096
	// MaxDealContextEntries defines the maximum number of deal context pairs.
	MaxDealContextEntries = 64
	// MaxDealContextValueLength defines the maximum length of one deal context value.
	MaxDealContextValueLength = 4096
)

// Error variables for better error handling and testability
var (
	ErrEmptyMessage             = errors.New("message cannot be empty")
	ErrMessageTooLong           = errors.New("message exceeds maximum length")
	ErrTooManyContextEntries    = errors.New("too many deal context entries")
	ErrContextValueTooLong      = errors.New("deal context value exceeds maximum length")
	ErrEmptyContextKey          = errors.New("deal context key cannot be empty")
	ErrInvalidConversationState = errors.New("conversation state is malformed")
)

// SessionCreateRequest is the payload for creating a session.
type SessionCreateRequest struct {
	DealContext DealContext `json:"deal_context,omitempty"`
}

// Validate validates a SessionCreateRequest.
func (r *SessionCreateRequest) Validate() error {
	if len(r.DealContext) > MaxDealContextEntries {
		return ErrTooManyContextEntries
	}
	for k, v := range r.DealContext {
		if k == "" {
			return ErrEmptyContextKey
		}
		if len(v) > MaxDealContextValueLength {
			return ErrContextValueTooLong
		}
	}
	return nil
}

// SessionMessageRequest is the payload for advancing a session by one turn.
type SessionMessageRequest struct {
	Message string `json:"message"`
}

// Validate validates a SessionMessageRequest.
func (r *SessionMessageRequest) Validate() error {
	if r.Message == "" {
		return ErrEmptyMessage
	}
	if len(r.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}
