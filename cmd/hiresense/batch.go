package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonathan/hiresense/internal/analysis"
	"github.com/jonathan/hiresense/internal/types"
	"github.com/spf13/cobra"
)

// maxBatchLine bounds one JSONL request line
const maxBatchLine = 4 << 20

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a JSONL file of requests",
	Long: `Read one analysis request per line ({"career_goal", "resume_text", "skills_text"}),
analyze them concurrently and write one response envelope per line in input order.`,
	RunE: runBatch,
}

var (
	batchIn          string
	batchOut         string
	batchConcurrency int
	batchNoAI        bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchIn, "in", "i", "", "Path to the JSONL request file (required)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Path to the JSONL response file (default stdout)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, "Maximum analyses in flight")
	batchCmd.Flags().BoolVar(&batchNoAI, "no-ai", false, "Skip Gemini and use the deterministic engine")

	_ = batchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(batchIn)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reqs, err := readRequests(f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	producer, cleanup, err := buildProducer(ctx, cfg, batchNoAI)
	if err != nil {
		return err
	}
	defer cleanup()

	responses, err := analysis.AnalyzeBatch(ctx, producer, reqs, batchConcurrency)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	failed := 0
	for _, r := range responses {
		if !r.Success {
			failed++
		}
	}
	slog.Info("batch completed", slog.Int("requests", len(reqs)), slog.Int("failed", failed))

	return writeOutput(cmd.OutOrStdout(), batchOut, func(w io.Writer) error {
		return writeResponses(w, responses)
	})
}

// readRequests parses JSONL requests, skipping blank lines
func readRequests(r io.Reader) ([]types.AnalysisRequest, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxBatchLine)

	var reqs []types.AnalysisRequest
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var req types.AnalysisRequest
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, fmt.Errorf("invalid request on line %d: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests: %w", err)
	}
	return reqs, nil
}

// writeResponses writes one compact JSON envelope per line
func writeResponses(w io.Writer, responses []types.AnalysisResponse) error {
	enc := json.NewEncoder(w)
	for _, r := range responses {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	return nil
}
