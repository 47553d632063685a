package mocks

import (
	"context"
)

// MockGenerationService is a mock implementation of GenerationService for testing
type MockGenerationService struct {
	response string
	failNext bool

	// Captured arguments from the last Generate call
	LastSystemPrompt string
	LastContext      string
	LastQuery        string
	Calls            int
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		response: "This is a mock generated answer.",
	}
}

func (m *MockGenerationService) Generate(ctx context.Context, systemPrompt, contextBlock, query string) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", context.DeadlineExceeded
	}

	m.LastSystemPrompt = systemPrompt
	m.LastContext = contextBlock
	m.LastQuery = query
	m.Calls++

	return m.response, nil
}

func (m *MockGenerationService) Model() string {
	return "mock-generation-model"
}

func (m *MockGenerationService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockGenerationService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockGenerationService) SetResponse(text string) {
	m.response = text
}

func (m *MockGenerationService) SetFailNext(fail bool) {
	m.failNext = fail
}
