package scoring

import (
	"testing"

	"github.com/jonathan/hiresense/internal/catalog"
	"github.com/jonathan/hiresense/internal/skills"
	"github.com/jonathan/hiresense/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_GroupsInFirstSeenOrder(t *testing.T) {
	cls := skills.Classification{
		Strong: []types.SkillEntry{
			{Name: "Python", Level: 85, Category: "Programming Languages"},
			{Name: "Communication", Level: 75, Category: "Soft Skills"},
		},
		Moderate: []types.SkillEntry{
			{Name: "Docker", Level: 60, Category: "Cloud & DevOps"},
			{Name: "Go", Level: 60, Category: "Programming Languages"},
		},
		Weak: []types.SkillEntry{
			{Name: "Git", Level: 35, Category: "Cloud & DevOps"},
		},
		Missing: []types.MissingSkill{
			{Name: "Java", Importance: types.ImportanceCritical, Category: "Core"},
			{Name: "Aws", Importance: types.ImportanceHigh, Category: "Advanced"},
			{Name: "Sql", Importance: types.ImportanceCritical, Category: "Core"},
		},
	}

	got := Categories(cls)

	assert.Equal(t, []types.CategoryScore{
		{Name: "Programming Languages", CurrentScore: 72, RequiredScore: 85, Gap: 13},
		{Name: "Soft Skills", CurrentScore: 75, RequiredScore: 85, Gap: 10},
		{Name: "Cloud & DevOps", CurrentScore: 47, RequiredScore: 85, Gap: 38},
		{Name: "Core", CurrentScore: 10, RequiredScore: 85, Gap: 75},
		{Name: "Advanced", CurrentScore: 10, RequiredScore: 85, Gap: 75},
	}, got)
}

func TestCategories_MissingInDetectedCategoryDoesNotLowerScore(t *testing.T) {
	cls := skills.Classification{
		Strong:  []types.SkillEntry{{Name: "Leadership", Level: 80, Category: "Soft Skills"}},
		Missing: []types.MissingSkill{{Name: "Communication", Category: "Soft Skills"}},
	}

	got := Categories(cls)
	require.Len(t, got, 1)
	assert.Equal(t, 80, got[0].CurrentScore)
}

func TestCategories_DefaultSetForEmptyInput(t *testing.T) {
	got := Categories(skills.Classification{})

	require.Len(t, got, 5)
	assert.Equal(t, DefaultCategories(), got)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
		assert.Equal(t, RequiredScore, c.RequiredScore)
		assert.Equal(t, RequiredScore-c.CurrentScore, c.Gap)
	}
	assert.Equal(t, []string{"Programming", "Frameworks", "Tools & DevOps", "Soft Skills", "Domain Knowledge"}, names)
}

func TestCategories_GapLawHoldsForRealInput(t *testing.T) {
	inputs := []string{
		"",
		"python python python python python docker docker",
		"leadership communication teamwork agile scrum react react react",
	}
	cat := catalog.Default()
	for _, text := range inputs {
		det := skills.Detect(skills.CombinedText(text, "", "Web Developer"), cat)
		for _, c := range Categories(skills.Classify(det, cat, "Web Developer")) {
			assert.GreaterOrEqual(t, c.Gap, 0)
			assert.Equal(t, max(0, 85-c.CurrentScore), c.Gap)
		}
	}
}

func TestNewCategoryScore_GapNeverNegative(t *testing.T) {
	assert.Equal(t, 0, NewCategoryScore("X", 90).Gap)
	assert.Equal(t, 0, NewCategoryScore("X", 85).Gap)
	assert.Equal(t, 85, NewCategoryScore("X", 0).Gap)
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name string
		cls  skills.Classification
		want int
	}{
		{"no skills", skills.Classification{}, 35},
		{
			"padded soft skills only",
			skills.Classification{Strong: []types.SkillEntry{{Level: 75}, {Level: 70}}},
			72,
		},
		{
			"mean across tiers",
			skills.Classification{
				Strong:   []types.SkillEntry{{Level: 90}},
				Moderate: []types.SkillEntry{{Level: 60}},
				Weak:     []types.SkillEntry{{Level: 35}, {Level: 35}},
			},
			55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Readiness(tt.cls))
		})
	}
}

func TestCurrentLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, LevelBeginner},
		{39, LevelBeginner},
		{40, LevelIntermediate},
		{69, LevelIntermediate},
		{70, LevelAdvanced},
		{100, LevelAdvanced},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentLevel(tt.score), "score %d", tt.score)
	}
}
