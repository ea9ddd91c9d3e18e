package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/hiresense/internal/config"
	"github.com/jonathan/hiresense/internal/db"
	"github.com/jonathan/hiresense/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /analyze, the analysis history under /analyses and
GET /health. History is enabled when DATABASE_URL is set; bearer auth when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT and the config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	producer, cleanup, err := buildProducer(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	jwtCfg, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	if jwtCfg == nil {
		slog.Warn("JWT_SECRET not set, API authentication disabled")
	}

	var store db.Store
	if cfg.DatabaseURL != "" {
		store, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
	}

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		Producer:           producer,
		Store:              store,
		JWT:                jwtCfg,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AIConfigured:       cfg.AIConfigured(),
		UseBrowser:         cfg.UseBrowser,
		AllowProfileURLs:   cfg.AllowProfileURLs,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
