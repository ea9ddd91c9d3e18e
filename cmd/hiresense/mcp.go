package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/hiresense/internal/mcptool"
	"github.com/spf13/cobra"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the skill_gap_analysis tool over MCP",
	Long: `Run a Model Context Protocol server exposing the skill_gap_analysis tool. Serves over
stdio by default; --http serves the streamable HTTP transport instead. Logs go to stderr.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "Listen address for the streamable HTTP transport, e.g. :8090")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer, cleanup, err := buildProducer(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	server := mcptool.NewServer(version, producer)

	if mcpHTTPAddr == "" {
		return mcptool.ServeStdio(ctx, server)
	}

	httpServer := &http.Server{
		Addr:              mcpHTTPAddr,
		Handler:           mcptool.HTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("mcp server starting", slog.String("addr", mcpHTTPAddr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}
