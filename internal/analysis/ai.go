package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/hiresense/internal/llm"
	"github.com/jonathan/hiresense/internal/prompts"
	"github.com/jonathan/hiresense/internal/schemas"
	"github.com/jonathan/hiresense/internal/types"
)

const (
	// DefaultAITimeout bounds a single model call
	DefaultAITimeout = 60 * time.Second

	// MaxResumeRunes is how much resume text is sent to the model
	MaxResumeRunes = 3000

	// maxLoggedResponse limits how much of a bad response is kept on the error
	maxLoggedResponse = 500
)

// ErrNotConfigured is returned by an AIProducer without a model client
var ErrNotConfigured = errors.New("AI analysis is not configured")

// MalformedResponseError is returned when the model answer is not a valid report
type MalformedResponseError struct {
	Response string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// AIProducer asks a generative model for the report
type AIProducer struct {
	client  llm.Client
	tier    llm.ModelTier
	timeout time.Duration
}

// AIOption configures an AIProducer
type AIOption func(*AIProducer)

// WithTimeout overrides the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) AIOption {
	return func(p *AIProducer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithTier selects the model tier
func WithTier(tier llm.ModelTier) AIOption {
	return func(p *AIProducer) {
		p.tier = tier
	}
}

// NewAIProducer creates a producer over client. A nil client yields a producer that
// always fails with ErrNotConfigured.
func NewAIProducer(client llm.Client, opts ...AIOption) *AIProducer {
	p := &AIProducer{
		client:  client,
		tier:    llm.TierStandard,
		timeout: DefaultAITimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Producer
func (p *AIProducer) Name() string {
	return types.SourceAI
}

// Configured reports whether the producer has a model client
func (p *AIProducer) Configured() bool {
	return p != nil && p.client != nil
}

// Analyze implements Producer
func (p *AIProducer) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.Report, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.client.GenerateJSON(ctx, prompt, p.tier)
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}

	return ParseReport(raw)
}

// BuildPrompt renders the analysis prompt. The resume is cut to MaxResumeRunes.
func BuildPrompt(req types.AnalysisRequest) (string, error) {
	skillsText := req.SkillsText
	if skillsText == "" {
		skillsText = prompts.MustGet(prompts.AnalysisFile, prompts.KeySkillsMissing)
	}

	prompt, err := prompts.Render(prompts.AnalysisFile, prompts.KeySkillGapAnalysis, map[string]string{
		"ResumeText": llm.TruncateRunes(req.ResumeText, MaxResumeRunes),
		"SkillsText": skillsText,
		"CareerGoal": req.CareerGoal,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build analysis prompt: %w", err)
	}
	return prompt, nil
}

// ParseReport validates a model answer against the report schema and decodes it
func ParseReport(raw string) (*types.Report, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateReport([]byte(cleaned)); err != nil {
		return nil, &MalformedResponseError{Response: llm.TruncateRunes(cleaned, maxLoggedResponse), Cause: err}
	}

	var report types.Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, &MalformedResponseError{Response: llm.TruncateRunes(cleaned, maxLoggedResponse), Cause: err}
	}
	report.Normalize()
	return &report, nil
}
