package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hiresense/internal/types"
	"golang.org/x/sync/errgroup"
)

// MsgAnalysisFailed is returned to callers when no producer could build a report
const MsgAnalysisFailed = "Analysis failed. Please try again."

// Run validates the request, runs the producer and wraps the outcome in a response
// envelope with a fresh id. It never returns an error: failures are reported in the envelope.
func Run(ctx context.Context, p Producer, req types.AnalysisRequest) types.AnalysisResponse {
	req = req.Trimmed()
	if err := req.Validate(); err != nil {
		return types.Failed(err.Error())
	}

	start := time.Now()
	report, source, err := analyzeWithSource(ctx, p, req)
	if err != nil {
		slog.Error("analysis failed",
			slog.String("producer", p.Name()),
			slog.String("career_goal", req.CareerGoal),
			slog.Any("error", err))
		return types.Failed(MsgAnalysisFailed)
	}

	resp := types.AnalysisResponse{
		Success:   true,
		ID:        uuid.New(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Data:      report,
	}
	slog.Debug("analysis completed",
		slog.String("id", resp.ID.String()),
		slog.String("source", source),
		slog.Int("overall_score", report.CareerReadiness.OverallScore),
		slog.Duration("duration", time.Since(start)))
	return resp
}

// AnalyzeBatch runs requests concurrently with at most concurrency in flight.
// Responses are returned in request order. The only error is context cancellation.
func AnalyzeBatch(ctx context.Context, p Producer, reqs []types.AnalysisRequest, concurrency int) ([]types.AnalysisResponse, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	responses := make([]types.AnalysisResponse, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return fmt.Errorf("batch cancelled at request %d: %w", i, err)
			}
			responses[i] = Run(gCtx, p, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}
