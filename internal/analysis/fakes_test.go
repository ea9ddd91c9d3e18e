package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/jonathan/hiresense/internal/llm"
	"github.com/jonathan/hiresense/internal/types"
)

type fakeClient struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	block    bool
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

type stubProducer struct {
	name   string
	report *types.Report
	err    error
	calls  int
}

func (s *stubProducer) Name() string { return s.name }

func (s *stubProducer) Analyze(context.Context, types.AnalysisRequest) (*types.Report, error) {
	s.calls++
	return s.report, s.err
}

var errUnavailable = errors.New("model unavailable")
