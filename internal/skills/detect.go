// Package skills detects catalog skills in learner text and classifies them into proficiency tiers.
package skills

import (
	"strings"

	"github.com/jonathan/hiresense/internal/catalog"
)

// Detection is the set of catalog keywords found in a text, with occurrence counts.
// Keywords are kept in catalog declaration order.
type Detection struct {
	Keywords []string
	Counts   map[string]int
}

// Len returns the number of detected keywords
func (d Detection) Len() int {
	return len(d.Keywords)
}

// Has reports whether the keyword was detected
func (d Detection) Has(keyword string) bool {
	_, ok := d.Counts[strings.ToLower(keyword)]
	return ok
}

// CombinedText builds the lowercased blob the detector scans
func CombinedText(resumeText, skillsText, careerGoal string) string {
	return strings.ToLower(resumeText + " " + skillsText + " " + careerGoal)
}

// Detect finds every catalog keyword occurring in text as a substring and counts its
// non-overlapping occurrences. Matching is not word-bounded, so "r" also matches "career".
func Detect(text string, cat *catalog.Catalog) Detection {
	det := Detection{Counts: make(map[string]int)}
	if text == "" {
		return det
	}

	for _, kw := range cat.Keywords() {
		if !strings.Contains(text, kw) {
			continue
		}
		det.Keywords = append(det.Keywords, kw)
		det.Counts[kw] = strings.Count(text, kw)
	}
	return det
}
