package analysis

import (
	"context"

	"github.com/jonathan/hiresense/internal/catalog"
	"github.com/jonathan/hiresense/internal/roadmap"
	"github.com/jonathan/hiresense/internal/scoring"
	"github.com/jonathan/hiresense/internal/skills"
	"github.com/jonathan/hiresense/internal/types"
)

// Engine is the deterministic producer. It never fails and holds no mutable state, so one
// Engine can serve concurrent requests.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine over cat, or the embedded catalog when cat is nil
func NewEngine(cat *catalog.Catalog) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{catalog: cat}
}

// Name implements Producer
func (e *Engine) Name() string {
	return types.SourceFallback
}

// Analyze implements Producer. The error is always nil.
func (e *Engine) Analyze(_ context.Context, req types.AnalysisRequest) (*types.Report, error) {
	report := e.Report(req)
	return &report, nil
}

// Report runs detection, classification, scoring and synthesis over the request text
func (e *Engine) Report(req types.AnalysisRequest) types.Report {
	text := skills.CombinedText(req.ResumeText, req.SkillsText, req.CareerGoal)
	det := skills.Detect(text, e.catalog)
	cls := skills.Classify(det, e.catalog, req.CareerGoal)

	return roadmap.Build(roadmap.Input{
		Classification: cls,
		Categories:     scoring.Categories(cls),
		Overall:        scoring.Readiness(cls),
		CareerGoal:     req.CareerGoal,
	})
}
