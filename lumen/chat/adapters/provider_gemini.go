package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiConfig holds connection settings for the Gemini REST API.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// TitleModel is used for conversation title generation.
	TitleModel string
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// GeminiProvider implements the model Provider against the
// generativelanguage.googleapis.com REST API. Responses are delivered whole;
// request timeouts are the HTTP client's business.
type GeminiProvider struct {
	apiKey     string
	baseURL    string
	titleModel string
	client     *http.Client
}

// NewGeminiProvider creates a provider from connection settings.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	titleModel := cfg.TitleModel
	if titleModel == "" {
		titleModel = "gemini-2.5-pro"
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &GeminiProvider{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		titleModel: titleModel,
		client:     client,
	}
}

// Request/response payloads for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
	Tools            []geminiTool            `json:"tools,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiTool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt, modelName string, opts ports.Options) (string, error) {
	parts := []geminiPart{{Text: prompt}}
	for _, img := range opts.Images {
		// Attachment references are base64-encoded image payloads.
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: "image/jpeg",
			Data:     img,
		}})
	}

	req := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if opts.WebSearchEnabled {
		req.Tools = []geminiTool{{GoogleSearch: &struct{}{}}}
	}

	return p.generateContent(ctx, modelName, req)
}

func (p *GeminiProvider) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a short, concise title (3-5 words) for a chat conversation that starts with this message: %q. Only return the title, no quotes or extra text.",
		firstMessage)

	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	title, err := p.generateContent(ctx, p.titleModel, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

func (p *GeminiProvider) generateContent(ctx context.Context, modelName string, payload geminiRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, modelName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read gemini response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini API error %d: %s", parsed.Error.Code, parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// Ensure GeminiProvider implements the Provider interface.
var _ ports.Provider = (*GeminiProvider)(nil)
