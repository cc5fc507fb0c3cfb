package adapters

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

var mockResponses = []string{
	"This is a mock response from the AI assistant. To get real AI responses, please configure a Gemini API key.",
	"Hello! I'm a demo AI assistant. Configure an API key to connect to the real Gemini backend.",
	"I'm here to help! This is a simulated response since no API key is configured yet.",
	"Thanks for your message! Please configure your Gemini API key to enable real AI conversations.",
}

// MockProvider returns canned responses. It backs demo mode when no API key
// is configured.
type MockProvider struct{}

// NewMockProvider creates a canned-response provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) GenerateResponse(ctx context.Context, prompt, modelName string, opts ports.Options) (string, error) {
	resp := mockResponses[rand.Intn(len(mockResponses))]
	return fmt.Sprintf("%s\n\n(Using %s model)", resp, modelName), nil
}

func (p *MockProvider) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	words := strings.Fields(firstMessage)
	if len(words) > 4 {
		words = words[:4]
	}
	if len(words) == 0 {
		return "Demo Chat", nil
	}
	return strings.Join(words, " "), nil
}

// Ensure MockProvider implements the Provider interface.
var _ ports.Provider = (*MockProvider)(nil)
