package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/catalog"
	"github.com/jonathan/hiresense/internal/config"
	"github.com/jonathan/hiresense/internal/llm"
)

// loadConfig reads --config, applies the environment and the --catalog flag, then validates
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCatalog returns the configured catalog or the embedded one
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

// buildProducer assembles the producer chain: Gemini first when configured and allowed,
// the deterministic engine always last. The returned cleanup releases the model client.
func buildProducer(ctx context.Context, cfg *config.Config, noAI bool) (analysis.Producer, func(), error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine := analysis.NewEngine(cat)
	noop := func() {}

	if noAI || !cfg.AIConfigured() {
		slog.Debug("using deterministic engine only", slog.Bool("no_ai", noAI))
		return engine, noop, nil
	}

	llmCfg := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model)
	client, err := llm.NewClient(ctx, llmCfg, cfg.GeminiAPIKey)
	if err != nil {
		slog.Warn("gemini client unavailable, using deterministic engine", slog.Any("error", err))
		return engine, noop, nil
	}

	ai := analysis.NewAIProducer(client, analysis.WithTimeout(cfg.AITimeout()))
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close gemini client", slog.Any("error", err))
		}
	}
	return analysis.WithFallback(ai, engine), cleanup, nil
}
