package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	internal "github.com/JunaidWali/lumen-chat/lumen"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	// Save original directory
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	// Create temporary directory for testing
	tempDir, err := os.MkdirTemp("", "lumen-config-test-*")
	require.NoError(suite.T(), err)
	suite.tempDir = tempDir

	// Change to temp directory
	err = os.Chdir(tempDir)
	require.NoError(suite.T(), err)

	// Each test starts from a clean viper instance
	viper.Reset()
}

func (suite *ConfigTestSuite) TearDownTest() {
	// Change back to original directory
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}

	// Clean up temporary directory
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	// Load config without config file (should use defaults)
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "gemini-2.5-pro", cfg.Chat.SelectedModel)
	assert.InDelta(suite.T(), 0.7, cfg.Chat.Temperature, 0.0001)
	assert.Equal(suite.T(), 2048, cfg.Chat.MaxTokens)
	assert.False(suite.T(), cfg.Chat.WebSearchEnabled)
	assert.Equal(suite.T(), internal.DefaultOwnerID, cfg.Chat.OwnerID)

	assert.Equal(suite.T(), internal.DefaultDatabaseDSN, cfg.Database.DSN)
	assert.Equal(suite.T(), internal.DefaultDatabaseDir, cfg.Database.LibSQLDataDir)

	assert.Equal(suite.T(), "https://generativelanguage.googleapis.com/v1beta", cfg.Gemini.BaseURL)
	assert.Equal(suite.T(), 60*time.Second, cfg.Gemini.Timeout)
	assert.True(suite.T(), cfg.Tracing.Enabled)
}

func (suite *ConfigTestSuite) TestLoadConfigFromFile() {
	configYAML := `
chat:
  selected_model: gemini-1.5-flash
  temperature: 0.2
  web_search_enabled: true
gemini:
  api_key: test-key
  timeout: 30s
database:
  dsn: /tmp/test-chat.db
`
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	require.NoError(suite.T(), os.WriteFile(configPath, []byte(configYAML), 0o644))

	cfg, err := LoadConfig(configPath)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "gemini-1.5-flash", cfg.Chat.SelectedModel)
	assert.InDelta(suite.T(), 0.2, cfg.Chat.Temperature, 0.0001)
	assert.True(suite.T(), cfg.Chat.WebSearchEnabled)
	assert.Equal(suite.T(), "test-key", cfg.Gemini.APIKey)
	assert.Equal(suite.T(), 30*time.Second, cfg.Gemini.Timeout)
	assert.Equal(suite.T(), "/tmp/test-chat.db", cfg.Database.DSN)

	// Unspecified fields keep their defaults
	assert.Equal(suite.T(), 2048, cfg.Chat.MaxTokens)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	require.NoError(suite.T(), os.WriteFile(configPath, []byte("chat: [not, a, map"), 0o644))

	_, err := LoadConfig(configPath)

	assert.Error(suite.T(), err)
}
