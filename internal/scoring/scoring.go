// Package scoring aggregates classified skills into category scores and an overall readiness score.
package scoring

import (
	"github.com/jonathan/hiresense/internal/skills"
	"github.com/jonathan/hiresense/internal/types"
)

const (
	// RequiredScore is the target score for every category
	RequiredScore = 85

	// DefaultReadiness is used when no skills were classified
	DefaultReadiness = 35

	missingOnlyScore = 10
	emptyCategory    = 15
)

// Level labels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// defaultCategories is reported when nothing could be grouped
var defaultCategories = []struct {
	name    string
	current int
}{
	{"Programming", 40},
	{"Frameworks", 30},
	{"Tools & DevOps", 25},
	{"Soft Skills", 60},
	{"Domain Knowledge", 35},
}

// Categories groups detected skills by category and scores each group by the integer mean
// of its levels. Categories that only hold missing skills score 10. Order is first seen:
// strong, moderate, weak, then missing.
func Categories(cls skills.Classification) []types.CategoryScore {
	var order []string
	levels := make(map[string][]int)

	for _, s := range cls.Detected() {
		if _, ok := levels[s.Category]; !ok {
			order = append(order, s.Category)
		}
		levels[s.Category] = append(levels[s.Category], s.Level)
	}
	for _, m := range cls.Missing {
		if _, ok := levels[m.Category]; !ok {
			order = append(order, m.Category)
			levels[m.Category] = []int{missingOnlyScore}
		}
	}

	if len(order) == 0 {
		return DefaultCategories()
	}

	scores := make([]types.CategoryScore, 0, len(order))
	for _, name := range order {
		current := emptyCategory
		if vals := levels[name]; len(vals) > 0 {
			current = mean(vals)
		}
		scores = append(scores, NewCategoryScore(name, current))
	}
	return scores
}

// DefaultCategories returns the fixed category set used for degenerate input
func DefaultCategories() []types.CategoryScore {
	scores := make([]types.CategoryScore, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		scores = append(scores, NewCategoryScore(c.name, c.current))
	}
	return scores
}

// NewCategoryScore builds a score against RequiredScore. The gap never goes below zero.
func NewCategoryScore(name string, current int) types.CategoryScore {
	return types.CategoryScore{
		Name:          name,
		CurrentScore:  current,
		RequiredScore: RequiredScore,
		Gap:           max(0, RequiredScore-current),
	}
}

// Readiness is the integer mean of all strong, moderate and weak levels
func Readiness(cls skills.Classification) int {
	detected := cls.Detected()
	if len(detected) == 0 {
		return DefaultReadiness
	}
	levels := make([]int, 0, len(detected))
	for _, s := range detected {
		levels = append(levels, s.Level)
	}
	return mean(levels)
}

// CurrentLevel maps a readiness score to its label
func CurrentLevel(score int) string {
	switch {
	case score < 40:
		return LevelBeginner
	case score < 70:
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}

func mean(vals []int) int {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return sum / len(vals)
}
