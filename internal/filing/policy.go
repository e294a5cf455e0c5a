package filing

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// domainAbbrev maps domains to the short tokens embedded in filenames.
var domainAbbrev = map[string]string{
	classifier.DomainPhysicalDesign:     "PD",
	classifier.DomainDesignVerification: "DV",
	classifier.DomainDFT:                "DFT",
	classifier.DomainRTLDesign:          "RTL",
	classifier.DomainAnalogDesign:       "ANA",
	classifier.DomainFPGA:               "FPGA",
	classifier.DomainSiliconValidation:  "SIVAL",
	classifier.DomainMixedSignal:        "MS",
	classifier.DomainGeneralVLSI:        "VLSI",
	classifier.DomainUnknown:            "UNK",
}

// levelAbbrev maps experience bands to filename tokens.
var levelAbbrev = map[string]string{
	classifier.LevelFresher:     "FR",
	classifier.LevelMidLevel:    "MID",
	classifier.LevelSenior:      "SR",
	classifier.LevelExperienced: "EXP",
	classifier.LevelUnknown:     "UNK",
}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FolderPath returns the two folder levels a classified resume files under:
// domain first, experience band below it.
func FolderPath(result models.ClassificationResult) (string, string) {
	return result.Domain, result.ExperienceLevel
}

// FolderKey is the memoization key for a (domain, level) folder pair within a
// scan session.
func FolderKey(result models.ClassificationResult) string {
	domain, level := FolderPath(result)
	return path.Join(domain, level)
}

// BuildFilename derives a deterministic filename embedding the sender,
// abbreviated domain and band, years, quality percentage and a timestamp.
// The original extension is preserved.
func BuildFilename(result models.ClassificationResult, doc models.RawDocument, now time.Time) string {
	sender := unsafeFilenameRe.ReplaceAllString(doc.Meta.Sender, "")
	if sender == "" {
		sender = "Unknown"
	}

	ext := strings.ToLower(path.Ext(doc.Filename))
	if ext == "" {
		ext = "." + doc.FileType
	}

	return fmt.Sprintf("%s_%s_%s_%.1fy_Q%02.0f_%s%s",
		sender,
		abbrev(domainAbbrev, result.Domain),
		abbrev(levelAbbrev, result.ExperienceLevel),
		result.ExperienceYears,
		result.QualityScore*100,
		now.Format("20060102-150405"),
		ext,
	)
}

// BuildDescription renders the human-readable summary stored alongside the
// file in Drive.
func BuildDescription(result models.ClassificationResult, meta models.EmailMeta) string {
	var sb strings.Builder

	sb.WriteString("Resume scan result\n")
	fmt.Fprintf(&sb, "From: %s\n", meta.Sender)
	fmt.Fprintf(&sb, "Subject: %s\n", meta.Subject)
	if !meta.Date.IsZero() {
		fmt.Fprintf(&sb, "Received: %s\n", meta.Date.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&sb, "Domain: %s (confidence %.2f)\n", result.Domain, result.DomainConfidence)
	if result.MixedProfile && len(result.AllDomains) > 1 {
		fmt.Fprintf(&sb, "Mixed profile: also scored %s (%.1f)\n",
			result.AllDomains[1].Domain, result.AllDomains[1].Score)
	}
	fmt.Fprintf(&sb, "Experience: %.1f years, %s\n", result.ExperienceYears, result.ExperienceLevel)
	fmt.Fprintf(&sb, "Quality score: %.2f\n", result.QualityScore)

	return sb.String()
}

func abbrev(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return "UNK"
}
