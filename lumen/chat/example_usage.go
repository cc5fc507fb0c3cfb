package chat

import (
	"context"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/JunaidWali/lumen-chat/lumen/chat/adapters"
	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
	"github.com/JunaidWali/lumen-chat/lumen/config"
	"github.com/JunaidWali/lumen-chat/lumen/db"
)

// ExampleBasicChatUsage is the canonical wiring: config, db, adapters, state,
// orchestrator, one send, then a list refresh.
func ExampleBasicChatUsage() {
	// Step 1: Load configuration (file, env, or defaults)
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal(err)
	}

	// Step 2: Open the embedded database and prepare the repository
	conn, err := db.ConnectToDB(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	repo, err := adapters.NewLibSQLRepository(conn)
	if err != nil {
		log.Fatal(err)
	}

	// Step 3: Pick a provider; fall back to demo mode without an API key
	var provider ports.Provider
	if cfg.Gemini.APIKey != "" {
		provider = adapters.NewGeminiProvider(adapters.GeminiConfig{
			APIKey:     cfg.Gemini.APIKey,
			BaseURL:    cfg.Gemini.BaseURL,
			Timeout:    cfg.Gemini.Timeout,
			TitleModel: cfg.Gemini.TitleModel,
		})
	} else {
		provider = adapters.NewMockProvider()
	}

	// Step 4: Resolve generation settings from the model catalog
	catalog, err := LoadCatalog(cfg.Chat.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}
	settings := DefaultSettings()
	if model, ok := ModelByID(catalog, cfg.Chat.SelectedModel); ok {
		settings.SelectedModel = model
	}
	settings.Temperature = cfg.Chat.Temperature
	settings.MaxTokens = cfg.Chat.MaxTokens
	settings.WebSearchEnabled = cfg.Chat.WebSearchEnabled

	// Step 5: Wire the orchestrator and run one exchange
	var tracer ports.Tracer
	if cfg.Tracing.Enabled {
		level, lerr := zerolog.ParseLevel(cfg.Tracing.Level)
		if lerr != nil {
			level = zerolog.InfoLevel
		}
		logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		tracer = adapters.NewZerologTracer(logger)
	}
	state := NewState()
	orchestrator := NewOrchestrator(provider, repo, state, tracer, cfg.Chat.OwnerID)

	ctx := context.Background()
	if err := orchestrator.SendMessage(ctx, "Hello!", nil, "", settings); err != nil {
		log.Fatal(err)
	}
	if err := orchestrator.Refresh(ctx); err != nil {
		log.Fatal(err)
	}

	for _, conv := range state.Conversations() {
		log.Printf("%s (%d messages): %s", conv.Title, conv.MessageCount, TruncateText(conv.LastMessage, 50))
	}
}
