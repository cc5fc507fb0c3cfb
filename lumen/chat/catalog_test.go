package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "gemini-2.5-pro", s.SelectedModel.ID)
	assert.InDelta(t, 0.7, s.Temperature, 0.0001)
	assert.Equal(t, 2048, s.MaxTokens)
	assert.False(t, s.WebSearchEnabled)
}

func TestModelByID(t *testing.T) {
	model, ok := ModelByID(DefaultCatalog, "gemini-1.5-pro")
	require.True(t, ok)
	assert.Equal(t, "Gemini 1.5 Pro", model.DisplayName)
	assert.Equal(t, 2097152, model.MaxTokens)

	_, ok = ModelByID(DefaultCatalog, "no-such-model")
	assert.False(t, ok)
}

func TestParseCatalog_Valid(t *testing.T) {
	data := []byte(`[
		{
			"id": "custom-model",
			"name": "custom-model",
			"display_name": "Custom Model",
			"description": "A private deployment",
			"supports_images": false,
			"supports_web_search": true,
			"max_tokens": 32768
		}
	]`)

	catalog, err := ParseCatalog(data)

	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "custom-model", catalog[0].ID)
	assert.True(t, catalog[0].SupportsWebSearch)
	assert.False(t, catalog[0].SupportsImages)
}

func TestParseCatalog_RejectsMissingFields(t *testing.T) {
	data := []byte(`[{"id": "x"}]`)

	_, err := ParseCatalog(data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model catalog")
}

func TestParseCatalog_RejectsUnknownFields(t *testing.T) {
	data := []byte(`[
		{
			"id": "x", "name": "x", "display_name": "X", "max_tokens": 10,
			"bogus": true
		}
	]`)

	_, err := ParseCatalog(data)

	require.Error(t, err)
}

func TestLoadCatalog_EmptyPathFallsBackToBuiltin(t *testing.T) {
	catalog, err := LoadCatalog("")

	require.NoError(t, err)
	assert.Len(t, catalog, len(DefaultCatalog))
}
