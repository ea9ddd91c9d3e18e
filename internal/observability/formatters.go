// Package observability provides formatted report output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hiresense/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output of analysis reports
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintResponse prints a full response envelope. Failed responses print only the error.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResponse(resp types.AnalysisResponse) {
	if !resp.Success || resp.Data == nil {
		fmt.Fprintf(p.out, "✗ %s\n", resp.Error)
		return
	}
	fmt.Fprintf(p.out, "Analysis %s (source: %s)\n", resp.ID, resp.Source)
	p.PrintReport(resp.Data)
}

// PrintReport prints every section of the report
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}
	p.PrintProfileSummary(&report.ProfileSummary)
	p.PrintSkillAnalysis(&report.SkillAnalysis)
	p.PrintCategories(report.SkillCategories)
	p.PrintRoadmap(&report.LearningRoadmap)
	p.PrintRecommendations(report.PriorityRecommendations)
	p.PrintReadiness(&report.CareerReadiness)
	p.PrintProjects(report.RecommendedProjects)
}

// PrintProfileSummary outputs the learner summary
func (p *Printer) PrintProfileSummary(summary *types.ProfileSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", summary.Name))
	sb.WriteString(fmt.Sprintf("Level:      %s\n", summary.CurrentLevel))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", summary.Education))
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", summary.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Domain:     %s", summary.Domain))

	p.printBox("PROFILE SUMMARY", sb.String())
}

// PrintSkillAnalysis outputs detected skills by tier followed by the missing skills
func (p *Printer) PrintSkillAnalysis(analysis *types.SkillAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	writeTier := func(label string, skills []types.SkillEntry) {
		if len(skills) == 0 {
			return
		}
		sb.WriteString(label + ":\n")
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s (%d)\n", skills[i].Name, skills[i].Level))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}
	writeTier("Strong", analysis.StrongSkills)
	writeTier("Moderate", analysis.ModerateSkills)
	writeTier("Weak", analysis.WeakSkills)

	if len(analysis.MissingSkills) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(analysis.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := analysis.MissingSkills[i]
			sb.WriteString(fmt.Sprintf("  ⚠ %s [%s]\n", m.Name, m.Importance))
		}
		if len(analysis.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.MissingSkills)-maxItemsToShow))
		}
	}

	content := strings.TrimRight(sb.String(), "\n")
	if content == "" {
		content = "No skills detected"
	}
	p.printBox("SKILL ANALYSIS", content)
}

// PrintCategories outputs category scores as a current/required bar
func (p *Printer) PrintCategories(categories []types.CategoryScore) {
	if len(categories) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range categories {
		sb.WriteString(fmt.Sprintf("%-20s %3d / %3d  gap %d", truncate(c.Name, 20), c.CurrentScore, c.RequiredScore, c.Gap))
		if i < len(categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL CATEGORIES", sb.String())
}

// PrintRoadmap outputs each learning phase with its skills and milestones
func (p *Printer) PrintRoadmap(roadmap *types.LearningRoadmap) {
	if roadmap == nil || len(roadmap.Phases) == 0 {
		return
	}

	var sb strings.Builder
	for i, phase := range roadmap.Phases {
		sb.WriteString(fmt.Sprintf("Phase %d: %s (%s)\n", phase.PhaseNumber, phase.Title, phase.Duration))
		if len(phase.SkillsToLearn) > 0 {
			sb.WriteString(fmt.Sprintf("  Skills: %s\n", strings.Join(phase.SkillsToLearn, ", ")))
		}
		for _, r := range phase.Resources {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", r.Type, r.Name))
		}
		for _, m := range phase.Milestones {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", m))
		}
		if i < len(roadmap.Phases)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LEARNING ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked priority recommendations
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range recs {
		sb.WriteString(fmt.Sprintf("#%d  %s (%s, %s)\n", r.Rank, r.Skill, r.Difficulty, r.TimeEstimate))
		sb.WriteString(fmt.Sprintf("    %s", r.Reason))
		if i < len(recs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PRIORITY RECOMMENDATIONS", sb.String())
}

// PrintReadiness outputs the overall readiness score with strengths and gaps
func (p *Printer) PrintReadiness(readiness *types.CareerReadiness) {
	if readiness == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score:  %d%%\n", readiness.OverallScore))
	sb.WriteString(fmt.Sprintf("Time to ready:  %s\n", readiness.EstimatedTimeToReady))
	sb.WriteString(fmt.Sprintf("Market demand:  %s\n", readiness.MarketDemand))
	if len(readiness.Strengths) > 0 {
		sb.WriteString(fmt.Sprintf("\nStrengths: %s\n", strings.Join(readiness.Strengths, ", ")))
	}
	if len(readiness.AreasToImprove) > 0 {
		sb.WriteString(fmt.Sprintf("Improve:   %s\n", strings.Join(readiness.AreasToImprove, ", ")))
	}

	p.printBox("CAREER READINESS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjects outputs the suggested portfolio projects
func (p *Printer) PrintProjects(projects []types.ProjectIdea) {
	if len(projects) == 0 {
		return
	}

	var sb strings.Builder
	for i, proj := range projects {
		sb.WriteString(fmt.Sprintf("• %s [%s, %s]\n", proj.Name, proj.Difficulty, proj.EstimatedTime))
		if len(proj.SkillsPracticed) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]", strings.Join(proj.SkillsPracticed, ", ")))
		}
		if i < len(projects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RECOMMENDED PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}
