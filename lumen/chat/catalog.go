package chat

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// ModelConfig is an immutable catalog entry describing a selectable backend
// model and its capability flags.
type ModelConfig struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	Description       string `json:"description"`
	SupportsImages    bool   `json:"supports_images"`
	SupportsWebSearch bool   `json:"supports_web_search"`
	MaxTokens         int    `json:"max_tokens"`
}

// Settings is the currently selected generation configuration. Selection is a
// settings concern; the orchestrator only consumes it as an input.
type Settings struct {
	SelectedModel    ModelConfig
	Temperature      float64
	MaxTokens        int
	WebSearchEnabled bool
}

// DefaultCatalog lists the Gemini models the client can select from.
var DefaultCatalog = []ModelConfig{
	{
		ID:                "gemini-2.5-pro",
		Name:              "gemini-2.5-pro",
		DisplayName:       "Gemini 2.5 Pro",
		Description:       "State-of-the-art thinking model with reasoning capabilities for complex problems",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         1048576,
	},
	{
		ID:                "gemini-2.5-flash",
		Name:              "gemini-2.5-flash",
		DisplayName:       "Gemini 2.5 Flash",
		Description:       "Best price-performance model optimized for large scale processing and low latency",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         1048576,
	},
	{
		ID:                "gemini-2.5-flash-lite",
		Name:              "gemini-2.5-flash-lite",
		DisplayName:       "Gemini 2.5 Flash Lite",
		Description:       "Fast, low-cost, high-performance model for efficient processing",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         1048576,
	},
	{
		ID:                "gemini-2.0-flash",
		Name:              "gemini-2.0-flash",
		DisplayName:       "Gemini 2.0 Flash",
		Description:       "Next-gen model with superior speed and native tool use",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         1048576,
	},
	{
		ID:                "gemini-1.5-pro",
		Name:              "gemini-1.5-pro",
		DisplayName:       "Gemini 1.5 Pro",
		Description:       "Enhanced model with 2M token context window",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         2097152,
	},
	{
		ID:                "gemini-1.5-flash",
		Name:              "gemini-1.5-flash",
		DisplayName:       "Gemini 1.5 Flash",
		Description:       "Faster, lighter model for quick responses",
		SupportsImages:    true,
		SupportsWebSearch: true,
		MaxTokens:         1048576,
	},
}

// DefaultSettings mirrors the original settings screen defaults: first
// catalog entry, temperature 0.7, 2048 output tokens, web search off.
func DefaultSettings() Settings {
	return Settings{
		SelectedModel:    DefaultCatalog[0],
		Temperature:      0.7,
		MaxTokens:        2048,
		WebSearchEnabled: false,
	}
}

// ModelByID looks up a catalog entry by id.
func ModelByID(catalog []ModelConfig, id string) (ModelConfig, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModelConfig{}, false
}

// catalogSchema validates externally supplied model catalogs before they are
// trusted.
var catalogSchema = []byte(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["id", "name", "display_name", "max_tokens"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1},
			"display_name": {"type": "string", "minLength": 1},
			"description": {"type": "string"},
			"supports_images": {"type": "boolean"},
			"supports_web_search": {"type": "boolean"},
			"max_tokens": {"type": "integer", "minimum": 1}
		},
		"additionalProperties": false
	}
}`)

// ParseCatalog validates and decodes a JSON model catalog.
func ParseCatalog(data []byte) ([]ModelConfig, error) {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid model catalog: %v", result.Errors())
	}

	var catalog []ModelConfig
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode model catalog: %w", err)
	}
	return catalog, nil
}

// LoadCatalog reads a model catalog from disk, falling back to the built-in
// catalog when path is empty.
func LoadCatalog(path string) ([]ModelConfig, error) {
	if path == "" {
		return DefaultCatalog, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}
