package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/sim-order-desk/internal/catalog"
	"github.com/joseph-ayodele/sim-order-desk/internal/common"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm/gemini"
	"github.com/joseph-ayodele/sim-order-desk/internal/llm/openai"
	"github.com/joseph-ayodele/sim-order-desk/internal/location"
)

// loadConfig reads an optional .env file, then the environment.
func loadConfig() (*common.Config, error) {
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newExtractor builds the configured provider. The returned func releases it.
func newExtractor(ctx context.Context, cfg *common.Config, c catalog.Catalog, logger *slog.Logger) (llm.FieldExtractor, func(), error) {
	switch cfg.LLM.Provider {
	case common.ProviderOpenAI:
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.OpenAIAPIKey,
			BaseURL:     cfg.LLM.OpenAIURL,
			Model:       cfg.LLM.OpenAIModel,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		return client, func() {}, nil
	case common.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.LLM.GeminiAPIKey,
			Model:       cfg.LLM.GeminiModel,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, c, logger)
		if err != nil {
			return nil, func() {}, common.WrapError(err, "gemini extractor")
		}
		return client, client.Close, nil
	}
	return nil, func() {}, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
}

func newLocator(cfg *common.Config, logger *slog.Logger) (location.Locator, error) {
	if cfg.Location.Lat != "" {
		static, err := location.NewStatic(cfg.Location.Lat, cfg.Location.Lon)
		if err != nil {
			return nil, common.WrapError(err, "LOCATION_LAT/LOCATION_LON")
		}
		return static, nil
	}
	return location.NewIPLocator(cfg.Location.Endpoint, cfg.Location.Timeout, logger), nil
}
