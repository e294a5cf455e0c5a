package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"

	"github.com/DhruvDFT/Enhanced-Resume/internal/api"
	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/config"
	"github.com/DhruvDFT/Enhanced-Resume/internal/filing"
	"github.com/DhruvDFT/Enhanced-Resume/internal/ingestion"
	"github.com/DhruvDFT/Enhanced-Resume/internal/scanner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	clf := classifier.New(cfg.ClassifierConfig())

	var runner api.SessionRunner
	if session := buildSession(context.Background(), cfg, clf); session != nil {
		runner = session
	}
	server := api.NewServer(clf, runner)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Starting Resume Scanner on port %s...\n", port)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /classify - Classify resume text\n")
	fmt.Printf("  POST /scan - Scan mailbox and file resumes\n")
	fmt.Printf("  GET /stats - Running scan counters\n")
	fmt.Printf("  GET /health - Health check\n")

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildSession wires the Gmail, Drive and Sheets clients into a scan session.
// Returns nil when credentials are unavailable; the server then runs in
// classify-only mode.
func buildSession(ctx context.Context, cfg *config.Config, clf *classifier.Classifier) *scanner.ScanSession {
	if err := cfg.Validate(); err != nil {
		log.Printf("Scanning disabled, running classify-only: %v", err)
		return nil
	}

	client, err := ingestion.NewGoogleClient(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath,
		gmail.GmailReadonlyScope, drive.DriveFileScope, sheets.SpreadsheetsScope)
	if err != nil {
		log.Printf("Scanning disabled, running classify-only: %v", err)
		return nil
	}

	mail, err := ingestion.NewGmailHandler(ctx, client)
	if err != nil {
		log.Printf("Scanning disabled, running classify-only: %v", err)
		return nil
	}

	filer, err := filing.NewDriveFiler(ctx, client, cfg.DriveRootFolderID)
	if err != nil {
		log.Printf("Scanning disabled, running classify-only: %v", err)
		return nil
	}

	var recorder scanner.Recorder
	if cfg.SheetsSpreadsheetID != "" {
		rec, err := filing.NewSheetsRecorder(ctx, client, cfg.SheetsSpreadsheetID, cfg.SheetsRange)
		if err != nil {
			log.Printf("Sheets recording disabled: %v", err)
		} else {
			recorder = rec
		}
	}

	return scanner.NewSession(mail, ingestion.ExtractText, clf, filer, recorder, scanner.Options{
		RequestsPerSecond: cfg.RequestsPerSecond,
		ReportsDir:        cfg.ReportsDir,
	})
}
