package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// Config holds the classifier tuning knobs. Every heuristic variant observed
// in production is expressed as a configuration choice here rather than a
// separate code path.
type Config struct {
	// MinTextLength rejects documents shorter than this outright.
	MinTextLength int
	// SectionsRequired is how many of the four resume section categories must
	// be present. 3 is canonical; 2 is the documented relaxation.
	SectionsRequired int
	// NonResumeIndicatorLimit is the number of distinct documentation phrases
	// that marks a document as a spec/report rather than a resume.
	NonResumeIndicatorLimit int
	// PrimaryWeight and SecondaryWeight are the per-match keyword weights.
	PrimaryWeight   float64
	SecondaryWeight float64
	// NegativePenalty multiplies a domain score when any of its negative
	// keywords is present.
	NegativePenalty float64
	// ScoreCeiling normalizes the top domain score into a confidence.
	ScoreCeiling float64
	// MixedProfileRatio flags a mixed profile when the runner-up domain scores
	// at least this fraction of the top score.
	MixedProfileRatio float64
	// RelabelMixedSignal relabels the primary domain as Mixed Signal on a
	// mixed profile. Off by default.
	RelabelMixedSignal bool

	Domains             []DomainKeywords
	Sections            map[string][]string
	NonResumeIndicators []string
	FresherPhrases      []string

	// Now supplies the current time for "working since <year>" arithmetic.
	Now func() time.Time
}

// DefaultConfig returns the canonical classifier configuration.
func DefaultConfig() Config {
	return Config{
		MinTextLength:           100,
		SectionsRequired:        3,
		NonResumeIndicatorLimit: 3,
		PrimaryWeight:           3,
		SecondaryWeight:         1,
		NegativePenalty:         0.7,
		ScoreCeiling:            100,
		MixedProfileRatio:       0.7,
		Domains:                 defaultDomainKeywords(),
		Sections:                defaultSectionKeywords(),
		NonResumeIndicators:     defaultNonResumeIndicators(),
		FresherPhrases:          defaultFresherPhrases(),
		Now:                     time.Now,
	}
}

type domainMatcher struct {
	domain    string
	primary   []*keywordMatcher
	secondary []*keywordMatcher
	negative  []*keywordMatcher
}

type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp
}

// Classifier decides whether a text is a resume and which VLSI sub-domain and
// experience band it belongs to. It is safe for concurrent use.
type Classifier struct {
	cfg      Config
	domains  []domainMatcher
	sections map[string][]*keywordMatcher
}

// New builds a Classifier, compiling every keyword into a whole-word matcher.
func New(cfg Config) *Classifier {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	c := &Classifier{cfg: cfg, sections: make(map[string][]*keywordMatcher)}
	for _, dk := range cfg.Domains {
		c.domains = append(c.domains, domainMatcher{
			domain:    dk.Domain,
			primary:   compileKeywords(dk.Primary),
			secondary: compileKeywords(dk.Secondary),
			negative:  compileKeywords(dk.Negative),
		})
	}
	for name, kws := range cfg.Sections {
		c.sections[name] = compileKeywords(kws)
	}
	return c
}

// compileKeywords builds whole-word matchers so that "sta" does not match
// inside "install".
func compileKeywords(keywords []string) []*keywordMatcher {
	matchers := make([]*keywordMatcher, 0, len(keywords))
	for _, kw := range keywords {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
		matchers = append(matchers, &keywordMatcher{keyword: strings.ToLower(kw), re: re})
	}
	return matchers
}

// Classify produces a fully populated result for any input. It never returns
// an error and never panics: internal failures become a rejected result with
// the failure text as the rejection reason.
func (c *Classifier) Classify(text string) (result models.ClassificationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = rejected(fmt.Sprintf("internal classification error: %v", r))
		}
	}()

	if len(text) < c.cfg.MinTextLength {
		return rejected("insufficient text")
	}

	lower := strings.ToLower(text)

	if n := c.countNonResumeIndicators(lower); n >= c.cfg.NonResumeIndicatorLimit {
		return rejected("appears to be non-resume documentation")
	}

	sections := c.countSections(lower)
	if sections < c.cfg.SectionsRequired {
		return rejected(fmt.Sprintf(
			"insufficient resume structure: %d of %d section categories found",
			sections, len(c.sections)))
	}

	result.IsResume = true
	result.Confidence = sectionConfidence(sections)

	result.AllDomains = c.scoreDomains(lower)
	top := result.AllDomains[0]
	if top.Score == 0 {
		result.Domain = DomainGeneralVLSI
		result.DomainConfidence = 0.3
	} else {
		result.Domain = top.Domain
		result.DomainConfidence = min(0.95, top.Score/c.cfg.ScoreCeiling)
		if len(result.AllDomains) > 1 {
			second := result.AllDomains[1]
			if second.Score >= c.cfg.MixedProfileRatio*top.Score {
				result.MixedProfile = true
				if c.cfg.RelabelMixedSignal {
					result.Domain = DomainMixedSignal
				}
			}
		}
	}

	result.ExperienceYears = c.extractExperienceYears(lower)
	result.ExperienceLevel = bandExperience(result.ExperienceYears)
	result.QualityScore = qualityScore(result.DomainConfidence, result.ExperienceYears, len(text))

	return result
}

// rejected returns the sentinel-populated result for a non-resume outcome.
func rejected(reason string) models.ClassificationResult {
	return models.ClassificationResult{
		IsResume:        false,
		Domain:          DomainUnknown,
		ExperienceLevel: LevelUnknown,
		RejectionReason: reason,
	}
}

func (c *Classifier) countNonResumeIndicators(lower string) int {
	count := 0
	for _, phrase := range c.cfg.NonResumeIndicators {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

func (c *Classifier) countSections(lower string) int {
	found := 0
	for _, matchers := range c.sections {
		for _, m := range matchers {
			if m.re.MatchString(lower) {
				found++
				break
			}
		}
	}
	return found
}

// sectionConfidence grows with the number of matched section categories and
// caps at 0.95.
func sectionConfidence(sections int) float64 {
	return min(0.95, 0.5+0.15*float64(sections))
}

// scoreDomains ranks every domain by weighted whole-word keyword hits,
// descending, with the domain name as a deterministic tie-break.
func (c *Classifier) scoreDomains(lower string) []models.DomainScore {
	scores := make([]models.DomainScore, 0, len(c.domains))
	for _, dm := range c.domains {
		var score float64
		var matched []string
		for _, m := range dm.primary {
			if n := len(m.re.FindAllStringIndex(lower, -1)); n > 0 {
				score += c.cfg.PrimaryWeight * float64(n)
				matched = append(matched, m.keyword)
			}
		}
		for _, m := range dm.secondary {
			if n := len(m.re.FindAllStringIndex(lower, -1)); n > 0 {
				score += c.cfg.SecondaryWeight * float64(n)
				matched = append(matched, m.keyword)
			}
		}
		for _, m := range dm.negative {
			if m.re.MatchString(lower) {
				score *= c.cfg.NegativePenalty
				break
			}
		}
		if score > 0 {
			scores = append(scores, models.DomainScore{
				Domain:  dm.domain,
				Score:   score,
				Matches: matched,
			})
		}
	}

	if len(scores) == 0 {
		return []models.DomainScore{{Domain: DomainGeneralVLSI}}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Domain < scores[j].Domain
	})
	return scores
}

// qualityScore is a [0,1] proxy for "complete, well-classified document":
// 0.4 from domain confidence, 0.3 for a non-zero experience figure and up to
// 0.3 from document length.
func qualityScore(domainConfidence, years float64, textLen int) float64 {
	score := 0.4 * domainConfidence
	if years > 0 {
		score += 0.3
	}
	for _, threshold := range []int{500, 1000, 2000} {
		if textLen >= threshold {
			score += 0.1
		}
	}
	return min(1.0, score)
}
