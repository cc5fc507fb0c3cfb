package chatports

import "context"

// Options controls a single generation request.
type Options struct {
	Temperature float64
	// MaxTokens caps the generated output length; 0 means provider default.
	MaxTokens int
	// Images are attachment references included alongside the prompt.
	Images []string
	// WebSearchEnabled asks the provider to ground the response with web
	// search. Callers must gate this on the selected model's capability.
	WebSearchEnabled bool
}

// Provider is the abstraction for the generative model backend.
// Responses are delivered whole; there is no streaming surface.
type Provider interface {
	// GenerateResponse produces the assistant reply for a prompt.
	GenerateResponse(ctx context.Context, prompt string, modelName string, opts Options) (string, error)
	// GenerateTitle produces a short conversation title from the first
	// user message.
	GenerateTitle(ctx context.Context, firstMessage string) (string, error)
}
