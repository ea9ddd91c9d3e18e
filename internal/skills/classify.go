package skills

import (
	"strings"
	"unicode"

	"github.com/jonathan/hiresense/internal/catalog"
	"github.com/jonathan/hiresense/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Tier thresholds by occurrence count
	strongMinCount   = 3
	moderateMinCount = 2

	strongBase   = 70
	strongCap    = 90
	moderateBase = 50
	moderateCap  = 70
	weakLevel    = 35
	levelPerHit  = 5

	// Minimum number of strong skills before soft-skill padding kicks in
	minStrongSkills = 2

	// Categories assigned to missing skills
	categoryCore     = "Core"
	categoryAdvanced = "Advanced"
	categorySoft     = "Soft Skills"
)

// Classification holds the tiered skills and the skills the resolved role still needs.
// Lists are complete; display limits are applied when the report is built.
type Classification struct {
	Role     string
	Strong   []types.SkillEntry
	Moderate []types.SkillEntry
	Weak     []types.SkillEntry
	Missing  []types.MissingSkill
}

// Detected returns strong, moderate and weak entries in that order
func (c *Classification) Detected() []types.SkillEntry {
	all := make([]types.SkillEntry, 0, len(c.Strong)+len(c.Moderate)+len(c.Weak))
	all = append(all, c.Strong...)
	all = append(all, c.Moderate...)
	all = append(all, c.Weak...)
	return all
}

// Classify buckets detected keywords by count, pads the strong tier with soft skills when
// it is too thin, and derives the missing skills for the role matching careerGoal.
func Classify(det Detection, cat *catalog.Catalog, careerGoal string) Classification {
	caser := cases.Title(language.English)
	cls := Classification{
		Strong:   []types.SkillEntry{},
		Moderate: []types.SkillEntry{},
		Weak:     []types.SkillEntry{},
		Missing:  []types.MissingSkill{},
	}

	for _, kw := range det.Keywords {
		count := det.Counts[kw]
		entry := types.SkillEntry{
			Name:     displayName(caser, kw),
			Category: cat.CategoryOf(kw),
		}
		switch {
		case count >= strongMinCount:
			entry.Level = min(strongCap, strongBase+count*levelPerHit)
			cls.Strong = append(cls.Strong, entry)
		case count == moderateMinCount:
			entry.Level = min(moderateCap, moderateBase+count*levelPerHit)
			cls.Moderate = append(cls.Moderate, entry)
		default:
			entry.Level = weakLevel
			cls.Weak = append(cls.Weak, entry)
		}
	}

	if len(cls.Strong) < minStrongSkills {
		cls.Strong = append(cls.Strong,
			types.SkillEntry{Name: "Communication", Level: 75, Category: categorySoft},
			types.SkillEntry{Name: "Problem Solving", Level: 70, Category: categorySoft},
		)
	}

	role := cat.ResolveRole(careerGoal)
	cls.Role = role.Keyword

	present := make(map[string]bool)
	for _, s := range cls.Detected() {
		present[strings.ToLower(s.Name)] = true
	}
	isMissing := func(skill string) bool {
		return !det.Has(skill) && !present[strings.ToLower(skill)]
	}

	for _, skill := range role.Required {
		if isMissing(skill) {
			cls.Missing = append(cls.Missing, types.MissingSkill{
				Name:       displayName(caser, skill),
				Importance: types.ImportanceCritical,
				Category:   categoryCore,
			})
		}
	}
	for _, skill := range role.NiceToHave {
		if isMissing(skill) {
			cls.Missing = append(cls.Missing, types.MissingSkill{
				Name:       displayName(caser, skill),
				Importance: types.ImportanceHigh,
				Category:   categoryAdvanced,
			})
		}
	}

	return cls
}

// displayName title-cases each run of letters in kw, so "node.js" becomes "Node.Js"
// and "ci/cd" becomes "Ci/Cd". Letters after a digit or punctuation start a new word.
func displayName(caser cases.Caser, kw string) string {
	var b strings.Builder
	start := -1
	for i, r := range kw {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(kw[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(kw[start:]))
	}
	return b.String()
}
