package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// Quality bands used for row color-coding.
const (
	qualityStrong = 0.75
	qualityGood   = 0.55
	qualityFair   = 0.35
)

// ExportScanReport writes an Excel workbook summarizing one scan: a Summary
// sheet with counters and the domain distribution, and a Classified Resumes
// sheet sorted by quality.
func ExportScanReport(filed []models.FiledResume, stats models.ScanStats, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	resumesSheet := "Classified Resumes"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(resumesSheet); err != nil {
		return fmt.Errorf("failed to create resumes sheet: %w", err)
	}

	if err := createSummarySheet(f, summarySheet, filed, stats); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := createResumesSheet(f, resumesSheet, filed); err != nil {
		return fmt.Errorf("failed to create resumes sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func createSummarySheet(f *excelize.File, sheetName string, filed []models.FiledResume, stats models.ScanStats) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Resume Scan Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	writeLabeled := func(label string, value interface{}) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	scanTime := stats.LastScan
	if scanTime.IsZero() {
		scanTime = time.Now()
	}
	writeLabeled("Scan Completed:", scanTime.Format("2006-01-02 15:04:05"))
	writeLabeled("Messages Processed:", stats.MessagesProcessed)
	writeLabeled("Attachments Seen:", stats.AttachmentsSeen)
	writeLabeled("Resumes Filed:", stats.ResumesFound)
	writeLabeled("Non-Resumes Skipped:", stats.Skipped)
	writeLabeled("Errors:", stats.Errors)
	row++

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Domain Distribution:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	for _, dc := range domainCounts(filed) {
		writeLabeled(dc.domain+":", dc.count)
	}

	if len(filed) > 0 {
		row++
		var total float64
		for _, fr := range filed {
			total += fr.Result.QualityScore
		}
		writeLabeled("Average Quality:", fmt.Sprintf("%.2f", total/float64(len(filed))))
	}

	return nil
}

type domainCount struct {
	domain string
	count  int
}

func domainCounts(filed []models.FiledResume) []domainCount {
	counts := make(map[string]int)
	for _, fr := range filed {
		counts[fr.Result.Domain]++
	}

	out := make([]domainCount, 0, len(counts))
	for domain, count := range counts {
		out = append(out, domainCount{domain: domain, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].domain < out[j].domain
	})
	return out
}

func createResumesSheet(f *excelize.File, sheetName string, filed []models.FiledResume) error {
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 8}, {"B", 22}, {"C", 20}, {"D", 20}, {"E", 10},
		{"F", 10}, {"G", 42}, {"H", 30},
	}
	for _, w := range widths {
		f.SetColWidth(sheetName, w.col, w.col, w.width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	bandStyle := func(color string) int {
		style, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		return style
	}
	strongStyle := bandStyle("C6EFCE")
	goodStyle := bandStyle("FFEB9C")
	fairStyle := bandStyle("FFC7CE")
	weakStyle := bandStyle("FF9999")

	headers := []string{"Rank", "Sender", "Domain", "Experience", "Years", "Quality", "Filename", "Subject"}
	for col, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+col)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	ranked := make([]models.FiledResume, len(filed))
	copy(ranked, filed)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.QualityScore > ranked[j].Result.QualityScore
	})

	for i, fr := range ranked {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), fr.Meta.Sender)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fr.Result.Domain)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fr.Result.ExperienceLevel)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fr.Result.ExperienceYears)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", fr.Result.QualityScore))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), fr.Filename)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), fr.Meta.Subject)

		var style int
		switch quality := fr.Result.QualityScore; {
		case quality >= qualityStrong:
			style = strongStyle
		case quality >= qualityGood:
			style = goodStyle
		case quality >= qualityFair:
			style = fairStyle
		default:
			style = weakStyle
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), style)
	}

	if len(ranked) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:H%d", len(ranked)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
