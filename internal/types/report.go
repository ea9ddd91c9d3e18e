// Package types provides type definitions for the skill-gap report and the requests that produce it.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Importance levels for missing skills
const (
	ImportanceCritical = "Critical"
	ImportanceHigh     = "High"
	ImportanceMedium   = "Medium"
)

// Resource types used in learning phases
const (
	ResourceCourse  = "Course"
	ResourceProject = "Project"
)

// Report is the full structured analysis output. Both the deterministic engine and the
// AI producer emit this exact shape.
type Report struct {
	ProfileSummary          ProfileSummary   `json:"profile_summary"`
	SkillAnalysis           SkillAnalysis    `json:"skill_analysis"`
	SkillCategories         []CategoryScore  `json:"skill_categories"`
	LearningRoadmap         LearningRoadmap  `json:"learning_roadmap"`
	PriorityRecommendations []Recommendation `json:"priority_recommendations"`
	CareerReadiness         CareerReadiness  `json:"career_readiness"`
	RecommendedProjects     []ProjectIdea    `json:"recommended_projects"`
}

// ProfileSummary describes the learner at a glance
type ProfileSummary struct {
	Name            string `json:"name"`
	CurrentLevel    string `json:"current_level"`
	Education       string `json:"education"`
	ExperienceYears int    `json:"experience_years"`
	Domain          string `json:"domain"`
}

// SkillAnalysis groups detected skills by proficiency tier
type SkillAnalysis struct {
	StrongSkills   []SkillEntry   `json:"strong_skills"`
	ModerateSkills []SkillEntry   `json:"moderate_skills"`
	WeakSkills     []SkillEntry   `json:"weak_skills"`
	MissingSkills  []MissingSkill `json:"missing_skills"`
}

// SkillEntry is a detected skill at a proficiency level (0-100)
type SkillEntry struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// MissingSkill is a role requirement that was not found in the profile
type MissingSkill struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
	Category   string `json:"category"`
}

// CategoryScore compares the current and required score of one skill category.
// Gap is never negative.
type CategoryScore struct {
	Name          string `json:"name"`
	CurrentScore  int    `json:"current_score"`
	RequiredScore int    `json:"required_score"`
	Gap           int    `json:"gap"`
}

// LearningRoadmap holds the ordered learning phases
type LearningRoadmap struct {
	Phases []LearningPhase `json:"phases"`
}

// LearningPhase is one ordered unit of the roadmap
type LearningPhase struct {
	PhaseNumber   int        `json:"phase_number"`
	Title         string     `json:"title"`
	Duration      string     `json:"duration"`
	Description   string     `json:"description"`
	SkillsToLearn []string   `json:"skills_to_learn"`
	Resources     []Resource `json:"resources"`
	Milestones    []string   `json:"milestones"`
}

// Resource is a course or project attached to a learning phase.
// Courses carry a platform, projects carry a description.
type Resource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Platform    string `json:"platform,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// MarshalJSON always writes url for courses and omits an empty url on other resources
func (r Resource) MarshalJSON() ([]byte, error) {
	type plain Resource
	if r.Type == ResourceCourse || r.URL != "" {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		URL string `json:"url,omitempty"`
	}{plain: plain(r)})
}

// Recommendation is a ranked skill to focus on next
type Recommendation struct {
	Rank         int    `json:"rank"`
	Skill        string `json:"skill"`
	Reason       string `json:"reason"`
	TimeEstimate string `json:"time_estimate"`
	Difficulty   string `json:"difficulty"`
}

// CareerReadiness summarizes how prepared the learner is for the target role
type CareerReadiness struct {
	OverallScore         int      `json:"overall_score"`
	Strengths            []string `json:"strengths"`
	AreasToImprove       []string `json:"areas_to_improve"`
	EstimatedTimeToReady string   `json:"estimated_time_to_ready"`
	MarketDemand         string   `json:"market_demand"`
}

// ProjectIdea is a suggested portfolio project
type ProjectIdea struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	SkillsPracticed []string `json:"skills_practiced"`
	Difficulty      string   `json:"difficulty"`
	EstimatedTime   string   `json:"estimated_time"`
}

// Normalize replaces nil slices with empty ones so the report always serializes
// lists as JSON arrays. AI responses frequently omit empty lists.
func (r *Report) Normalize() {
	r.SkillAnalysis.StrongSkills = nonNil(r.SkillAnalysis.StrongSkills)
	r.SkillAnalysis.ModerateSkills = nonNil(r.SkillAnalysis.ModerateSkills)
	r.SkillAnalysis.WeakSkills = nonNil(r.SkillAnalysis.WeakSkills)
	r.SkillAnalysis.MissingSkills = nonNil(r.SkillAnalysis.MissingSkills)
	r.SkillCategories = nonNil(r.SkillCategories)
	r.LearningRoadmap.Phases = nonNil(r.LearningRoadmap.Phases)
	for i := range r.LearningRoadmap.Phases {
		phase := &r.LearningRoadmap.Phases[i]
		phase.SkillsToLearn = nonNil(phase.SkillsToLearn)
		phase.Resources = nonNil(phase.Resources)
		phase.Milestones = nonNil(phase.Milestones)
	}
	r.PriorityRecommendations = nonNil(r.PriorityRecommendations)
	r.CareerReadiness.Strengths = nonNil(r.CareerReadiness.Strengths)
	r.CareerReadiness.AreasToImprove = nonNil(r.CareerReadiness.AreasToImprove)
	r.RecommendedProjects = nonNil(r.RecommendedProjects)
	for i := range r.RecommendedProjects {
		r.RecommendedProjects[i].SkillsPracticed = nonNil(r.RecommendedProjects[i].SkillsPracticed)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
