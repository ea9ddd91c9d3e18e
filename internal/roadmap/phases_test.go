package roadmap

import (
	"testing"

	"github.com/jonathan/hiresense/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhases_Structure(t *testing.T) {
	phases := Phases("Software Engineer", missingSkills(8))

	require.Len(t, phases, 4)
	titles := []string{"Foundation Building", "Skill Development", "Advanced Specialization", "Industry Readiness"}
	durations := []string{"4-6 weeks", "6-8 weeks", "4-6 weeks", "3-4 weeks"}
	for i, p := range phases {
		assert.Equal(t, i+1, p.PhaseNumber)
		assert.Equal(t, titles[i], p.Title)
		assert.Equal(t, durations[i], p.Duration)
		assert.Len(t, p.Resources, 3)
		assert.Len(t, p.Milestones, 3)
	}

	assert.Equal(t, "Build core foundations required for Software Engineer", phases[0].Description)
	assert.Equal(t, []string{"Interview Preparation", "Portfolio Building", "Networking"}, phases[3].SkillsToLearn)
}

func TestPhases_SkillWindows(t *testing.T) {
	tests := []struct {
		name    string
		missing int
		want    [3][]string
	}{
		{
			name:    "none missing",
			missing: 0,
			want:    [3][]string{{"Core Concepts"}, {"Advanced Concepts"}, {"Specialization"}},
		},
		{
			name:    "two missing",
			missing: 2,
			want:    [3][]string{{"M0", "M1"}, {"Advanced Concepts"}, {"Specialization"}},
		},
		{
			name:    "three missing",
			missing: 3,
			want:    [3][]string{{"M0", "M1", "M2"}, {"M2"}, {"Specialization"}},
		},
		{
			name:    "five missing",
			missing: 5,
			want:    [3][]string{{"M0", "M1", "M2"}, {"M2", "M3", "M4"}, {"M4"}},
		},
		{
			name:    "ten missing",
			missing: 10,
			want:    [3][]string{{"M0", "M1", "M2"}, {"M2", "M3", "M4"}, {"M4", "M5", "M6"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phases := Phases("Goal", missingSkills(tt.missing))
			for i := range 3 {
				assert.Equal(t, tt.want[i], phases[i].SkillsToLearn, "phase %d", i+1)
			}
		})
	}
}

func TestPhases_Resources(t *testing.T) {
	phases := Phases("Data Scientist", []types.MissingSkill{{Name: "Statistics"}})

	assert.Equal(t, types.Resource{Type: "Course", Name: "Introduction to Data Scientist", Platform: "Coursera"}, phases[0].Resources[0])
	assert.Equal(t, "Statistics Fundamentals", phases[0].Resources[1].Name)
	assert.Equal(t, types.Resource{
		Type: "Project", Name: "Portfolio Starter Project", Description: "Build a basic project to demonstrate fundamentals",
	}, phases[0].Resources[2])
	assert.Equal(t, "Advanced Data Scientist Skills", phases[1].Resources[0].Name)
	assert.Equal(t, "Mastering Data Scientist", phases[2].Resources[0].Name)
	assert.Equal(t, "educative.io", phases[2].Resources[2].Platform)
	assert.Equal(t, "LeetCode", phases[3].Resources[0].Platform)

	noneMissing := Phases("Data Scientist", nil)
	assert.Equal(t, "Core Fundamentals", noneMissing[0].Resources[1].Name)
}
