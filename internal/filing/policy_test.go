package filing

import (
	"strings"
	"testing"
	"time"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

func sampleResult() models.ClassificationResult {
	return models.ClassificationResult{
		IsResume:         true,
		Confidence:       0.95,
		Domain:           classifier.DomainDesignVerification,
		DomainConfidence: 0.45,
		ExperienceYears:  6,
		ExperienceLevel:  classifier.LevelSenior,
		QualityScore:     0.78,
	}
}

func sampleDoc() models.RawDocument {
	return models.RawDocument{
		Filename: "resume.pdf",
		FileType: "pdf",
		Meta: models.EmailMeta{
			Sender:  "Jane Roe",
			Subject: "Application for DV role",
			Date:    time.Date(2026, time.August, 20, 9, 30, 0, 0, time.UTC),
		},
	}
}

// TestFolderPath verifies the two-level folder derivation.
func TestFolderPath(t *testing.T) {
	domain, level := FolderPath(sampleResult())
	if domain != classifier.DomainDesignVerification {
		t.Errorf("FolderPath() domain = %q", domain)
	}
	if level != classifier.LevelSenior {
		t.Errorf("FolderPath() level = %q", level)
	}

	if key := FolderKey(sampleResult()); key != "Design Verification/Senior (5-8 years)" {
		t.Errorf("FolderKey() = %q", key)
	}
}

// TestBuildFilename pins the deterministic filename format.
func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, time.August, 30, 14, 5, 9, 0, time.UTC)

	got := BuildFilename(sampleResult(), sampleDoc(), now)
	want := "JaneRoe_DV_SR_6.0y_Q78_20260830-140509.pdf"
	if got != want {
		t.Errorf("BuildFilename() = %q, want %q", got, want)
	}

	// Same inputs, same name.
	if again := BuildFilename(sampleResult(), sampleDoc(), now); again != got {
		t.Errorf("BuildFilename() not deterministic: %q vs %q", got, again)
	}
}

// TestBuildFilename_Sentinels verifies that rejected-shaped input still
// yields a usable filename, per the non-null field contract.
func TestBuildFilename_Sentinels(t *testing.T) {
	result := models.ClassificationResult{
		Domain:          classifier.DomainUnknown,
		ExperienceLevel: classifier.LevelUnknown,
	}
	doc := sampleDoc()
	doc.Meta.Sender = "@@@"

	got := BuildFilename(result, doc, time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC))
	want := "Unknown_UNK_UNK_0.0y_Q00_20260102-030405.pdf"
	if got != want {
		t.Errorf("BuildFilename() = %q, want %q", got, want)
	}
}

// TestBuildDescription verifies the summary block carries every field the
// classifier guarantees.
func TestBuildDescription(t *testing.T) {
	desc := BuildDescription(sampleResult(), sampleDoc().Meta)

	for _, want := range []string{
		"Jane Roe",
		"Application for DV role",
		"Design Verification",
		"6.0 years",
		"Senior (5-8 years)",
		"0.78",
	} {
		if !strings.Contains(desc, want) {
			t.Errorf("BuildDescription() missing %q:\n%s", want, desc)
		}
	}
}

// TestEscapeQuery verifies Drive query escaping.
func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery(`O'Brien\folder`); got != `O\'Brien\\folder` {
		t.Errorf("escapeQuery() = %q", got)
	}
}
