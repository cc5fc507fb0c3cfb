package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	internal "github.com/JunaidWali/lumen-chat/lumen"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Chat     ChatConfig     `mapstructure:"chat"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Database DatabaseConfig `mapstructure:"database"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

// ChatConfig stores the user-facing chat settings.
type ChatConfig struct {
	SelectedModel    string  `mapstructure:"selected_model"`     // model catalog id
	Temperature      float64 `mapstructure:"temperature"`        // sampling temperature
	MaxTokens        int     `mapstructure:"max_tokens"`         // max output tokens
	WebSearchEnabled bool    `mapstructure:"web_search_enabled"` // user toggle; gated by model capability
	OwnerID          string  `mapstructure:"owner_id"`           // stand-in user identity
	CatalogPath      string  `mapstructure:"catalog_path"`       // optional external model catalog (JSON)
}

// GeminiConfig stores the model provider connection details.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// TitleModel is the model used for conversation title generation.
	TitleModel string `mapstructure:"title_model"`
}

// DatabaseConfig stores database connection details.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
	// Embedded-only configuration
	LibSQLDataDir string `mapstructure:"libsql_data_dir"` // Directory for database files
}

// TracingConfig stores observability settings.
type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"` // zerolog level: "debug", "info", ...
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Chat defaults match the original settings screen
	viper.SetDefault("chat.selected_model", "gemini-2.5-pro")
	viper.SetDefault("chat.temperature", 0.7)
	viper.SetDefault("chat.max_tokens", 2048)
	viper.SetDefault("chat.web_search_enabled", false)
	viper.SetDefault("chat.owner_id", internal.DefaultOwnerID)
	viper.SetDefault("chat.catalog_path", "")

	// Provider defaults
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.title_model", "gemini-2.5-pro")

	// LibSQL embedded defaults only
	viper.SetDefault("database.dsn", internal.DefaultDatabaseDSN)
	viper.SetDefault("database.libsql_data_dir", internal.DefaultDatabaseDir)

	// Tracing defaults
	viper.SetDefault("tracing.enabled", true)
	viper.SetDefault("tracing.level", "info")

	viper.AutomaticEnv()
	// Replace dots with underscores in env var names e.g. gemini.api_key becomes GEMINI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}

var watchOnce sync.Once

// Watch re-unmarshals the configuration whenever the config file changes on
// disk and invokes onChange with the fresh snapshot. Safe to call once after
// LoadConfig; subsequent calls are no-ops.
func Watch(onChange func(*Config)) {
	watchOnce.Do(func() {
		if viper.ConfigFileUsed() == "" {
			// Nothing on disk to watch; defaults/env only.
			return
		}
		viper.OnConfigChange(func(e fsnotify.Event) {
			var next Config
			if err := viper.Unmarshal(&next); err != nil {
				return
			}
			AppConfig = next
			if onChange != nil {
				onChange(&AppConfig)
			}
		})
		viper.WatchConfig()
	})
}
