// Package main provides the hiresense CLI: one-off analyses, the HTTP API, the queue worker
// and the MCP tool server.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var (
	configPath  string
	catalogPath string
	verbose     bool
	logFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "hiresense",
	Short: "HireSense skill-gap analyzer",
	Long: `HireSense compares a learner's resume or skills list with a target career goal and
produces a structured skill-gap report: detected skills by proficiency, missing skills,
category scores, a four-phase learning roadmap, career readiness and project ideas.

Reports come from Gemini when GEMINI_API_KEY is set, with a deterministic keyword engine
as the fallback.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd.ErrOrStderr(), logFormat, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a JSON skill catalog (overrides catalog_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.Version = version
}

// setupLogging installs the default slog logger
func setupLogging(w io.Writer, format string, debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
