// Package analysis runs skill-gap analyses. Reports come from interchangeable producers:
// the deterministic Engine, which always succeeds, and the AI producer, which may fail and
// is normally chained in front of the Engine.
package analysis

import (
	"context"
	"log/slog"

	"github.com/jonathan/hiresense/internal/types"
)

// Producer builds a report for a validated request
type Producer interface {
	// Name identifies the producer in responses and logs
	Name() string
	// Analyze builds the report. Implementations must not modify req.
	Analyze(ctx context.Context, req types.AnalysisRequest) (*types.Report, error)
}

// sourcedProducer is implemented by producers that delegate and know which delegate answered
type sourcedProducer interface {
	analyzeSourced(ctx context.Context, req types.AnalysisRequest) (*types.Report, string, error)
}

// Chain tries the primary producer and falls back when it fails
type Chain struct {
	primary  Producer
	fallback Producer
}

// WithFallback returns a producer that uses primary and, on any failure, fallback.
// A nil primary yields a chain that always uses fallback.
func WithFallback(primary, fallback Producer) *Chain {
	return &Chain{primary: primary, fallback: fallback}
}

// Name reports the primary producer's name
func (c *Chain) Name() string {
	if c.primary != nil {
		return c.primary.Name()
	}
	return c.fallback.Name()
}

// Analyze implements Producer
func (c *Chain) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.Report, error) {
	report, _, err := c.analyzeSourced(ctx, req)
	return report, err
}

func (c *Chain) analyzeSourced(ctx context.Context, req types.AnalysisRequest) (*types.Report, string, error) {
	if c.primary != nil {
		report, source, err := analyzeWithSource(ctx, c.primary, req)
		if err == nil {
			return report, source, nil
		}
		slog.Warn("primary producer failed, using fallback",
			slog.String("producer", c.primary.Name()),
			slog.String("fallback", c.fallback.Name()),
			slog.Any("error", err))
	}
	return analyzeWithSource(ctx, c.fallback, req)
}

func analyzeWithSource(ctx context.Context, p Producer, req types.AnalysisRequest) (*types.Report, string, error) {
	if sp, ok := p.(sourcedProducer); ok {
		return sp.analyzeSourced(ctx, req)
	}
	report, err := p.Analyze(ctx, req)
	return report, p.Name(), err
}
