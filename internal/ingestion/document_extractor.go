package ingestion

import (
	"bytes"
	"html"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	// MinExtractedTextLength is the minimum text length for an extraction to
	// count as successful.
	MinExtractedTextLength = 50
	// BinarySampleSize is the number of bytes sampled for binary detection.
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that
	// indicates binary data.
	BinaryThreshold = 0.3
	// minSalvageRun is the shortest printable run kept when salvaging legacy
	// .doc files.
	minSalvageRun = 4
)

var (
	docxParagraphRe = regexp.MustCompile(`</w:p>`)
	xmlTagRe        = regexp.MustCompile(`<[^>]*>`)
)

// ExtractText converts an attachment to plain text. Failures of any kind
// degrade to the empty string: the pipeline treats emptiness as "could not
// extract" and moves on, never an error.
func ExtractText(content []byte, filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(content, filename)
	case ".docx":
		return extractDOCX(content, filename)
	case ".doc":
		return salvageText(content)
	case ".txt":
		if IsBinaryData(string(content)) {
			return ""
		}
		return string(content)
	default:
		return ""
	}
}

// extractPDF pulls plain text out of a PDF. The parser can panic on
// malformed input, so the whole extraction runs behind a recover.
func extractPDF(content []byte, filename string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PDF extraction panic for %s: %v", filename, r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		log.Printf("PDF extraction failed for %s: %v", filename, err)
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		log.Printf("PDF text read failed for %s: %v", filename, err)
		return ""
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return ""
	}

	if len(data) < MinExtractedTextLength {
		// Likely a scanned image or certificate-only PDF.
		return ""
	}
	return string(data)
}

// extractDOCX reads the main document part of a DOCX archive and strips the
// WordprocessingML markup, keeping paragraph breaks.
func extractDOCX(content []byte, filename string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("DOCX extraction panic for %s: %v", filename, r)
			text = ""
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		log.Printf("DOCX extraction failed for %s: %v", filename, err)
		return ""
	}
	defer doc.Close()

	raw := doc.Editable().GetContent()
	raw = docxParagraphRe.ReplaceAllString(raw, "\n")
	raw = xmlTagRe.ReplaceAllString(raw, "")
	text = html.UnescapeString(raw)

	if len(strings.TrimSpace(text)) < MinExtractedTextLength {
		return ""
	}
	return text
}

// salvageText recovers readable runs from a legacy binary .doc file. There is
// no maintained Go parser for the OLE2 Word format, so this keeps printable
// ASCII runs the way strings(1) would and lets the classifier judge the rest.
func salvageText(content []byte) string {
	var sb strings.Builder
	var run []byte

	flush := func() {
		if len(run) >= minSalvageRun {
			sb.Write(run)
			sb.WriteByte(' ')
		}
		run = run[:0]
	}

	for _, b := range content {
		if b >= 32 && b < 127 || b == '\n' || b == '\t' {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()

	text := sb.String()
	if len(text) < MinExtractedTextLength {
		return ""
	}
	return text
}

// IsBinaryData reports whether content looks like binary rather than text.
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	// PDF magic number.
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}

	// ZIP magic number (DOCX files).
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
