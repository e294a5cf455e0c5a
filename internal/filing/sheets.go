package filing

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// defaultSheetRange is where log rows are appended when no range is
// configured.
const defaultSheetRange = "Sheet1!A:I"

// SheetsRecorder appends one log row per filed resume to a spreadsheet.
type SheetsRecorder struct {
	service       *sheets.Service
	spreadsheetID string
	sheetRange    string
}

// NewSheetsRecorder creates a recorder on top of an authenticated client.
func NewSheetsRecorder(ctx context.Context, client *http.Client, spreadsheetID, sheetRange string) (*SheetsRecorder, error) {
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	if sheetRange == "" {
		sheetRange = defaultSheetRange
	}
	return &SheetsRecorder{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
	}, nil
}

// Append writes a single row for a filed resume.
func (sr *SheetsRecorder) Append(ctx context.Context, filed models.FiledResume) error {
	row := []interface{}{
		filed.Meta.Date.Format("2006-01-02 15:04"),
		filed.Meta.Sender,
		filed.Meta.Subject,
		filed.Filename,
		filed.Result.Domain,
		filed.Result.ExperienceLevel,
		fmt.Sprintf("%.1f", filed.Result.ExperienceYears),
		fmt.Sprintf("%.2f", filed.Result.QualityScore),
		filed.Folder,
	}

	_, err := sr.service.Spreadsheets.Values.Append(sr.spreadsheetID, sr.sheetRange, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheet append for %q: %w", filed.Filename, err)
	}
	return nil
}
