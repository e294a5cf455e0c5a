package classifier

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausibility bounds for an extracted years-of-experience figure.
const (
	minPlausibleYears = 0
	maxPlausibleYears = 50
)

var (
	// "<N>+ years of experience", "<N> yrs exp" and close variants.
	yearsOfExperienceRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\.?\s*(?:of\s+)?(?:experience|exp)\b`)
	// "experience: <N> years", "experience - <N>+ years".
	experienceColonRe = regexp.MustCompile(`experience\s*[:\-]?\s*(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	// "<N> years <M> months", combined as N + M/12.
	yearsMonthsRe = regexp.MustCompile(`(\d+)\s*(?:years?|yrs?)\s*(?:and\s+)?(\d+)\s*months?\b`)
	// "total experience <N>", "total experience: <N> years".
	totalExperienceRe = regexp.MustCompile(`total\s+experience\s*[:\-]?\s*(\d+(?:\.\d+)?)`)
	// "working since <YEAR>", derived against the current year.
	workingSinceRe = regexp.MustCompile(`working\s+since\s+(\d{4})`)
)

// extractExperienceYears scans the lowercased text with every pattern and
// keeps the maximum plausible figure. Resumes restate experience in several
// places; no single statement is authoritative, so first-match-wins would be
// wrong.
func (c *Classifier) extractExperienceYears(lower string) float64 {
	best := 0.0

	consider := func(years float64) {
		if years > minPlausibleYears && years < maxPlausibleYears && years > best {
			best = years
		}
	}

	for _, re := range []*regexp.Regexp{yearsOfExperienceRe, experienceColonRe, totalExperienceRe} {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				consider(v)
			}
		}
	}

	for _, m := range yearsMonthsRe.FindAllStringSubmatch(lower, -1) {
		years, err1 := strconv.ParseFloat(m[1], 64)
		months, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			consider(years + months/12)
		}
	}

	currentYear := float64(c.cfg.Now().Year())
	for _, m := range workingSinceRe.FindAllStringSubmatch(lower, -1) {
		if start, err := strconv.ParseFloat(m[1], 64); err == nil {
			consider(currentYear - start)
		}
	}

	if best > 0 {
		return best
	}

	// No numeric figure anywhere: a fresher phrase confirms zero years,
	// absence leaves zero as the ambiguous default.
	for _, phrase := range c.cfg.FresherPhrases {
		if strings.Contains(lower, phrase) {
			return 0
		}
	}
	return 0
}

// bandExperience maps a years figure onto the four fixed bands. Boundaries
// are inclusive on their upper end: 2.0 is still Fresher, 5.0 still
// Mid-Level, 8.0 still Senior.
func bandExperience(years float64) string {
	switch {
	case years <= 2:
		return LevelFresher
	case years <= 5:
		return LevelMidLevel
	case years <= 8:
		return LevelSenior
	default:
		return LevelExperienced
	}
}
