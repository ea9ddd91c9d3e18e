package roadmap

import (
	"fmt"

	"github.com/jonathan/hiresense/internal/skills"
	"github.com/jonathan/hiresense/internal/types"
)

const (
	difficultyMedium       = "Medium"
	difficultyIntermediate = "Intermediate"
	difficultyAdvanced     = "Advanced"
)

// Recommendations ranks the first five missing skills. With nothing missing a single
// generic recommendation is returned.
func Recommendations(careerGoal string, missing []types.MissingSkill) []types.Recommendation {
	if len(missing) == 0 {
		return []types.Recommendation{{
			Rank:         1,
			Skill:        "Core Programming",
			Reason:       "Foundation skill",
			TimeEstimate: "4 weeks",
			Difficulty:   difficultyMedium,
		}}
	}

	top := head(missing, maxRecommended)
	recs := make([]types.Recommendation, 0, len(top))
	for i, m := range top {
		recs = append(recs, types.Recommendation{
			Rank:         i + 1,
			Skill:        m.Name,
			Reason:       fmt.Sprintf("Essential for %s role", careerGoal),
			TimeEstimate: "2-4 weeks",
			Difficulty:   difficultyMedium,
		})
	}
	return recs
}

// Projects returns the four portfolio project ideas
func Projects(careerGoal string, cls skills.Classification) []types.ProjectIdea {
	practiced := make([]types.SkillEntry, 0, len(cls.Strong)+len(cls.Moderate))
	practiced = append(practiced, cls.Strong...)
	practiced = append(practiced, cls.Moderate...)

	return []types.ProjectIdea{
		{
			Name:            fmt.Sprintf("Personal %s Dashboard", careerGoal),
			Description:     fmt.Sprintf("Build an interactive dashboard related to %s", careerGoal),
			SkillsPracticed: orDefault(entryNames(head(practiced, maxHighlights)), "Programming"),
			Difficulty:      difficultyIntermediate,
			EstimatedTime:   "2-3 weeks",
		},
		{
			Name:            "API-Driven Application",
			Description:     "Create a full-stack application consuming external APIs",
			SkillsPracticed: []string{"REST API", "Frontend", "Backend"},
			Difficulty:      difficultyIntermediate,
			EstimatedTime:   "2 weeks",
		},
		{
			Name:            "Open Source Contribution",
			Description:     "Find and contribute to an open source project in your domain",
			SkillsPracticed: []string{"Git", "Collaboration", "Code Review"},
			Difficulty:      difficultyIntermediate,
			EstimatedTime:   "Ongoing",
		},
		{
			Name:            fmt.Sprintf("%s Capstone Project", careerGoal),
			Description:     fmt.Sprintf("End-to-end project demonstrating readiness for %s", careerGoal),
			SkillsPracticed: orDefault(missingNames(head(cls.Missing, maxHighlights)), "All Skills"),
			Difficulty:      difficultyAdvanced,
			EstimatedTime:   "4-6 weeks",
		},
	}
}
