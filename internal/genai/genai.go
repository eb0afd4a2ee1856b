// Package genai generates document drafts from formatted requirement bundles
// using the OpenAI API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// ErrNoChoicesReturned indicates the API response contained no completion
// choices.
var ErrNoChoicesReturned = errors.New("no choices returned from completion")

// Disclaimer accompanies every generated draft.
const Disclaimer = "This draft was generated automatically from your answers. It is not legal advice; have a qualified lawyer review it before signing."

const systemPrompt = `You are a commercial lawyer drafting Australian business-deal documents. ` +
	`You receive a document type and a structured list of requirements gathered from the client. ` +
	`Produce a complete, professionally formatted draft of the requested document that reflects every requirement. ` +
	`Use plain Australian legal English and include standard boilerplate appropriate to the document type.`

// chatService defines the minimal interface for chat completions, allowing
// tests to substitute a mock.
type chatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client wraps the OpenAI chat completion service for document generation.
// It satisfies flow.Generator.
type Client struct {
	chat   chatService
	model  openai.ChatModel
	apiKey string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the OpenAI API key explicitly, overriding the environment.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithModel overrides the default completion model.
func WithModel(model openai.ChatModel) Option {
	return func(c *Client) { c.model = model }
}

// withChatService substitutes the completion backend; used by tests.
func withChatService(cs chatService) Option {
	return func(c *Client) { c.chat = cs }
}

// NewClient initializes a client using the OPENAI_API_KEY environment
// variable unless a backend is injected via options.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{model: openai.ChatModelGPT4o}
	for _, opt := range opts {
		opt(c)
	}
	if c.chat == nil {
		if c.apiKey == "" {
			c.apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		cli := openai.NewClient(option.WithAPIKey(c.apiKey))
		c.chat = &cli.Chat.Completions
	}
	return c, nil
}

// GenerateDocument produces a draft of the named document type from the
// formatted requirements bundle and deal context.
func (c *Client) GenerateDocument(ctx context.Context, documentType, requirements string, dealCtx models.DealContext) (*models.GeneratedContent, error) {
	userPrompt := buildUserPrompt(documentType, requirements, dealCtx)

	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		slog.Error("Client.GenerateDocument: completion failed", "type", documentType, "error", err)
		return nil, fmt.Errorf("generate %s: %w", documentType, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generate %s: %w", documentType, ErrNoChoicesReturned)
	}

	slog.Debug("Client.GenerateDocument: draft generated", "type", documentType, "length", len(resp.Choices[0].Message.Content))
	return &models.GeneratedContent{
		Content:    resp.Choices[0].Message.Content,
		Disclaimer: Disclaimer,
	}, nil
}

// buildUserPrompt assembles the completion prompt. Deal context keys are
// sorted so identical inputs always produce identical prompts.
func buildUserPrompt(documentType, requirements string, dealCtx models.DealContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Draft a %s.\n\nRequirements:\n%s", documentType, requirements)
	if len(dealCtx) > 0 {
		b.WriteString("\nAdditional deal context:\n")
		keys := make([]string, 0, len(dealCtx))
		for k := range dealCtx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, dealCtx[k])
		}
	}
	return b.String()
}
