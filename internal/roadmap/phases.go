package roadmap

import (
	"fmt"

	"github.com/jonathan/hiresense/internal/types"
)

func course(name, platform string) types.Resource {
	return types.Resource{Type: types.ResourceCourse, Name: name, Platform: platform}
}

func project(name, description string) types.Resource {
	return types.Resource{Type: types.ResourceProject, Name: name, Description: description}
}

// Phases builds the four learning phases. Each of the first three phases takes a window of
// the missing skills; phase four is always interview preparation.
func Phases(careerGoal string, missing []types.MissingSkill) []types.LearningPhase {
	firstSkill := "Core"
	if len(missing) > 0 {
		firstSkill = missing[0].Name
	}

	return []types.LearningPhase{
		{
			PhaseNumber:   1,
			Title:         "Foundation Building",
			Duration:      "4-6 weeks",
			Description:   fmt.Sprintf("Build core foundations required for %s", careerGoal),
			SkillsToLearn: orDefault(missingNames(window(missing, 0, 3)), "Core Concepts"),
			Resources: []types.Resource{
				course(fmt.Sprintf("Introduction to %s", careerGoal), "Coursera"),
				course(fmt.Sprintf("%s Fundamentals", firstSkill), "Udemy"),
				project("Portfolio Starter Project", "Build a basic project to demonstrate fundamentals"),
			},
			Milestones: []string{"Complete core concepts", "Build first mini-project", "Pass fundamentals assessment"},
		},
		{
			PhaseNumber:   2,
			Title:         "Skill Development",
			Duration:      "6-8 weeks",
			Description:   "Develop intermediate skills and start building real projects",
			SkillsToLearn: orDefault(missingNames(window(missing, 2, 5)), "Advanced Concepts"),
			Resources: []types.Resource{
				course(fmt.Sprintf("Advanced %s Skills", careerGoal), "Udacity"),
				project("Full-Stack Project", "Build a comprehensive project using learned skills"),
				course("Industry Best Practices", "LinkedIn Learning"),
			},
			Milestones: []string{"Complete intermediate modules", "Build 2 portfolio projects", "Contribute to open source"},
		},
		{
			PhaseNumber:   3,
			Title:         "Advanced Specialization",
			Duration:      "4-6 weeks",
			Description:   "Deep dive into specialized topics and industry tools",
			SkillsToLearn: orDefault(missingNames(window(missing, 4, 7)), "Specialization"),
			Resources: []types.Resource{
				course(fmt.Sprintf("Mastering %s", careerGoal), "Pluralsight"),
				project("Capstone Project", "Industry-grade project showcasing all skills"),
				course("System Design & Architecture", "educative.io"),
			},
			Milestones: []string{"Complete specialization", "Build capstone project", "Get peer review"},
		},
		{
			PhaseNumber:   4,
			Title:         "Industry Readiness",
			Duration:      "3-4 weeks",
			Description:   "Prepare for industry with mock interviews, networking, and final polish",
			SkillsToLearn: []string{"Interview Preparation", "Portfolio Building", "Networking"},
			Resources: []types.Resource{
				course("Technical Interview Prep", "LeetCode"),
				project("Portfolio Website", "Build a professional portfolio showcasing all projects"),
				course("Career Development", "LinkedIn"),
			},
			Milestones: []string{"Complete mock interviews", "Finalize portfolio", "Apply to positions"},
		},
	}
}
