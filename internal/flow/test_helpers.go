package flow

import (
	"context"

	"github.com/Samuelreve/deal-flow-australia-hq-sub000/internal/models"
)

// mockGenerator records the last generation request and returns canned output.
type mockGenerator struct {
	content  *models.GeneratedContent
	err      error
	calls    int
	lastType string
	lastReqs string
	lastDeal models.DealContext
}

func (m *mockGenerator) GenerateDocument(_ context.Context, documentType, requirements string, dealCtx models.DealContext) (*models.GeneratedContent, error) {
	m.calls++
	m.lastType = documentType
	m.lastReqs = requirements
	m.lastDeal = dealCtx
	if m.err != nil {
		return nil, m.err
	}
	if m.content != nil {
		return m.content, nil
	}
	return &models.GeneratedContent{Content: "generated document body", Disclaimer: "test disclaimer"}, nil
}
