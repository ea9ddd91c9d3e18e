package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/hiresense/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSkillAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillAnalysis(&types.SkillAnalysis{
		StrongSkills:   []types.SkillEntry{{Name: "Python", Level: 85, Category: "Programming"}},
		ModerateSkills: []types.SkillEntry{{Name: "SQL", Level: 65}},
		MissingSkills:  []types.MissingSkill{{Name: "Docker", Importance: types.ImportanceHigh}},
	})
	output := buf.String()

	assert.Contains(t, output, "SKILL ANALYSIS")
	assert.Contains(t, output, "Python (85)")
	assert.Contains(t, output, "SQL (65)")
	assert.Contains(t, output, "Docker [High]")
	assert.NotContains(t, output, "Weak:")
}

func TestPrintSkillAnalysis_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var strong []types.SkillEntry
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		strong = append(strong, types.SkillEntry{Name: name, Level: 80})
	}
	p.PrintSkillAnalysis(&types.SkillAnalysis{StrongSkills: strong})

	assert.Contains(t, buf.String(), "... and 2 more")
	assert.NotContains(t, buf.String(), "G (80)")
}

func TestPrintSkillAnalysis_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSkillAnalysis(&types.SkillAnalysis{})

	assert.Contains(t, buf.String(), "No skills detected")
}

func TestPrintNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)
	p.PrintProfileSummary(nil)
	p.PrintRoadmap(nil)
	p.PrintReadiness(nil)
	p.PrintCategories(nil)
	p.PrintRecommendations(nil)
	p.PrintProjects(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRoadmap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoadmap(&types.LearningRoadmap{Phases: []types.LearningPhase{
		{
			PhaseNumber:   1,
			Title:         "Foundation Building",
			Duration:      "4-6 weeks",
			SkillsToLearn: []string{"Docker", "Git"},
			Resources:     []types.Resource{{Type: types.ResourceCourse, Name: "Docker Fundamentals"}},
			Milestones:    []string{"Complete fundamentals course"},
		},
	}})
	output := buf.String()

	assert.Contains(t, output, "LEARNING ROADMAP")
	assert.Contains(t, output, "Phase 1: Foundation Building (4-6 weeks)")
	assert.Contains(t, output, "Skills: Docker, Git")
	assert.Contains(t, output, "Course: Docker Fundamentals")
	assert.Contains(t, output, "✓ Complete fundamentals course")
}

func TestPrintResponse(t *testing.T) {
	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf).PrintResponse(types.Failed(types.MsgMissingCareerGoal))
		assert.Equal(t, "✗ "+types.MsgMissingCareerGoal+"\n", buf.String())
	})

	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		id := uuid.New()
		report := &types.Report{
			ProfileSummary:  types.ProfileSummary{Name: "Ada", CurrentLevel: "Intermediate"},
			SkillCategories: []types.CategoryScore{{Name: "Programming", CurrentScore: 65, RequiredScore: 85, Gap: 20}},
			CareerReadiness: types.CareerReadiness{OverallScore: 55, MarketDemand: "High", Strengths: []string{"Python"}},
			PriorityRecommendations: []types.Recommendation{
				{Rank: 1, Skill: "Docker", Reason: "Required for the role", Difficulty: "Medium", TimeEstimate: "2-3 weeks"},
			},
			RecommendedProjects: []types.ProjectIdea{{Name: "Capstone", Difficulty: "Advanced", EstimatedTime: "4 weeks"}},
		}
		NewPrinter(&buf).PrintResponse(types.AnalysisResponse{Success: true, ID: id, Source: types.SourceFallback, Data: report})
		output := buf.String()

		assert.Contains(t, output, id.String())
		assert.Contains(t, output, "source: fallback")
		assert.Contains(t, output, "PROFILE SUMMARY")
		assert.Contains(t, output, "Programming")
		assert.Contains(t, output, "gap 20")
		assert.Contains(t, output, "#1  Docker (Medium, 2-3 weeks)")
		assert.Contains(t, output, "Overall score:  55%")
		assert.Contains(t, output, "Capstone")
	})
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[3], "...")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ünï...", truncate("ünïcödé", 6))
}
