// Package roadmap assembles the final skill-gap report: truncated skill lists, the four
// learning phases, recommendations, readiness and project ideas.
package roadmap

import (
	"github.com/jonathan/hiresense/internal/scoring"
	"github.com/jonathan/hiresense/internal/skills"
	"github.com/jonathan/hiresense/internal/types"
)

// Display limits for the skill analysis block
const (
	MaxStrong   = 6
	MaxModerate = 5
	MaxWeak     = 5
	MaxMissing  = 8
)

const (
	learnerName     = "Learner"
	educationNote   = "Extracted from profile"
	timeToReady     = "3-6 months"
	marketDemand    = "High"
	fallbackArea    = "General Skills"
	maxHighlights   = 3
	maxRecommended  = 5
	experienceYears = 0
)

// Input carries everything the synthesizer needs. CareerGoal is used verbatim.
type Input struct {
	Classification skills.Classification
	Categories     []types.CategoryScore
	Overall        int
	CareerGoal     string
}

// Build assembles the report. It never fails: every positional access falls back to
// fixed text when the underlying list is short.
func Build(in Input) types.Report {
	cls := in.Classification
	missing := cls.Missing

	report := types.Report{
		ProfileSummary: types.ProfileSummary{
			Name:            learnerName,
			CurrentLevel:    scoring.CurrentLevel(in.Overall),
			Education:       educationNote,
			ExperienceYears: experienceYears,
			Domain:          in.CareerGoal,
		},
		SkillAnalysis: types.SkillAnalysis{
			StrongSkills:   head(cls.Strong, MaxStrong),
			ModerateSkills: head(cls.Moderate, MaxModerate),
			WeakSkills:     head(cls.Weak, MaxWeak),
			MissingSkills:  head(missing, MaxMissing),
		},
		SkillCategories: in.Categories,
		LearningRoadmap: types.LearningRoadmap{
			Phases: Phases(in.CareerGoal, missing),
		},
		PriorityRecommendations: Recommendations(in.CareerGoal, missing),
		CareerReadiness: types.CareerReadiness{
			OverallScore:         in.Overall,
			Strengths:            entryNames(head(cls.Strong, maxHighlights)),
			AreasToImprove:       orDefault(missingNames(head(missing, maxHighlights)), fallbackArea),
			EstimatedTimeToReady: timeToReady,
			MarketDemand:         marketDemand,
		},
		RecommendedProjects: Projects(in.CareerGoal, cls),
	}

	if len(report.SkillCategories) == 0 {
		report.SkillCategories = scoring.DefaultCategories()
	}
	report.Normalize()
	return report
}

// head returns a copy of at most n leading elements
func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// window returns s[from:to] clamped to the slice bounds
func window[T any](s []T, from, to int) []T {
	if from >= len(s) {
		return nil
	}
	return head(s[from:], to-from)
}

func entryNames(entries []types.SkillEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func missingNames(missing []types.MissingSkill) []string {
	names := make([]string, 0, len(missing))
	for _, m := range missing {
		names = append(names, m.Name)
	}
	return names
}

func orDefault(names []string, fallback ...string) []string {
	if len(names) == 0 {
		return fallback
	}
	return names
}
