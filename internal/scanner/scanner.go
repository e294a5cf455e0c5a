package scanner

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/export"
	"github.com/DhruvDFT/Enhanced-Resume/internal/filing"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// MailSource yields attachments to scan. Implemented by ingestion.GmailHandler.
type MailSource interface {
	FetchResumeAttachments(ctx context.Context, query string, maxMessages int64) ([]models.RawDocument, error)
}

// Filer stores accepted resumes in a folder tree. Implemented by
// filing.DriveFiler.
type Filer interface {
	RootID() string
	EnsureFolder(ctx context.Context, parentID, name string) (string, error)
	Upload(ctx context.Context, folderID, filename, description string, content []byte, fileType string) (string, error)
}

// Recorder logs one row per filed resume. Implemented by
// filing.SheetsRecorder; nil disables recording.
type Recorder interface {
	Append(ctx context.Context, filed models.FiledResume) error
}

// Extractor converts attachment bytes to plain text, empty on failure.
type Extractor func(content []byte, filename string) string

// Options tunes a scan session.
type Options struct {
	// RequestsPerSecond is the courtesy rate limit applied to remote calls.
	RequestsPerSecond float64
	// ReportsDir, when set, receives an Excel report per scan.
	ReportsDir string
	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time
}

const defaultRequestsPerSecond = 5

// ScanSession owns everything one scanner run used to keep in globals: the
// running counters, the memoized folder-ID table and the API handles. Folder
// reuse stays idempotent within the session; a fresh session re-discovers
// folders by name.
type ScanSession struct {
	mail       MailSource
	extract    Extractor
	classifier *classifier.Classifier
	filer      Filer
	recorder   Recorder
	limiter    *rate.Limiter
	reportsDir string
	now        func() time.Time

	mu        sync.RWMutex
	stats     models.ScanStats
	folderIDs map[string]string
}

// NewSession wires a scan session. recorder may be nil when no spreadsheet is
// configured.
func NewSession(mail MailSource, extract Extractor, clf *classifier.Classifier, filer Filer, recorder Recorder, opts Options) *ScanSession {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ScanSession{
		mail:       mail,
		extract:    extract,
		classifier: clf,
		filer:      filer,
		recorder:   recorder,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)+1),
		reportsDir: opts.ReportsDir,
		now:        opts.Now,
	}
}

// Scan fetches matching attachments and runs each through
// extract -> classify -> file. One bad document or one failed remote call
// increments the error counter and the loop moves on; only the initial
// mailbox listing aborts the batch.
func (s *ScanSession) Scan(ctx context.Context, query string, maxMessages int64) (models.ScanStats, []models.FiledResume, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return s.Stats(), nil, err
	}

	docs, err := s.mail.FetchResumeAttachments(ctx, query, maxMessages)
	if err != nil {
		return s.Stats(), nil, fmt.Errorf("fetch attachments: %w", err)
	}

	var batch models.ScanStats
	var filed []models.FiledResume
	messages := make(map[string]struct{})

	for _, doc := range docs {
		batch.AttachmentsSeen++
		messages[doc.Meta.MessageID] = struct{}{}

		text := s.extract(doc.Content, doc.Filename)
		if text == "" {
			log.Printf("No text extracted from %s (%s), skipping", doc.Filename, doc.Meta.Sender)
			batch.Errors++
			continue
		}

		result := s.classifier.Classify(text)
		if !result.IsResume {
			log.Printf("Not a resume: %s (%s): %s", doc.Filename, doc.Meta.Sender, result.RejectionReason)
			batch.Skipped++
			continue
		}

		record, err := s.fileResume(ctx, doc, result)
		if err != nil {
			log.Printf("Failed to file %s: %v", doc.Filename, err)
			batch.Errors++
			continue
		}

		batch.ResumesFound++
		filed = append(filed, record)

		if s.recorder != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return s.Stats(), filed, err
			}
			if err := s.recorder.Append(ctx, record); err != nil {
				// The file is already in Drive; a missing log row is not
				// worth dropping it for.
				log.Printf("Failed to record %s in sheet: %v", record.Filename, err)
				batch.Errors++
			}
		}
	}

	batch.MessagesProcessed = len(messages)
	batch.LastScan = s.now()
	s.accumulate(batch)

	if s.reportsDir != "" && len(filed) > 0 {
		reportPath := filepath.Join(s.reportsDir,
			fmt.Sprintf("scan_%s.xlsx", batch.LastScan.Format("20060102_150405")))
		if err := export.ExportScanReport(filed, batch, reportPath); err != nil {
			log.Printf("Failed to write scan report: %v", err)
		}
	}

	return batch, filed, nil
}

// fileResume ensures the domain/experience folders exist and uploads the
// attachment with its derived name and description.
func (s *ScanSession) fileResume(ctx context.Context, doc models.RawDocument, result models.ClassificationResult) (models.FiledResume, error) {
	domain, level := filing.FolderPath(result)

	domainID, err := s.ensureFolder(ctx, s.filer.RootID(), domain, domain)
	if err != nil {
		return models.FiledResume{}, err
	}
	levelID, err := s.ensureFolder(ctx, domainID, level, filing.FolderKey(result))
	if err != nil {
		return models.FiledResume{}, err
	}

	filename := filing.BuildFilename(result, doc, s.now())
	description := filing.BuildDescription(result, doc.Meta)

	if err := s.limiter.Wait(ctx); err != nil {
		return models.FiledResume{}, err
	}
	fileID, err := s.filer.Upload(ctx, levelID, filename, description, doc.Content, doc.FileType)
	if err != nil {
		return models.FiledResume{}, err
	}

	return models.FiledResume{
		Filename:    filename,
		Folder:      filing.FolderKey(result),
		DriveFileID: fileID,
		Result:      result,
		Meta:        doc.Meta,
	}, nil
}

// ensureFolder memoizes lookup-or-create per cache key for the lifetime of
// the session.
func (s *ScanSession) ensureFolder(ctx context.Context, parentID, name, cacheKey string) (string, error) {
	s.mu.RLock()
	id, ok := s.folderIDs[cacheKey]
	s.mu.RUnlock()
	if ok {
		return id, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	id, err := s.filer.EnsureFolder(ctx, parentID, name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.folderIDs == nil {
		s.folderIDs = make(map[string]string)
	}
	s.folderIDs[cacheKey] = id
	s.mu.Unlock()
	return id, nil
}

func (s *ScanSession) accumulate(batch models.ScanStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.MessagesProcessed += batch.MessagesProcessed
	s.stats.AttachmentsSeen += batch.AttachmentsSeen
	s.stats.ResumesFound += batch.ResumesFound
	s.stats.Skipped += batch.Skipped
	s.stats.Errors += batch.Errors
	s.stats.LastScan = batch.LastScan
}

// Stats returns a snapshot of the running counters.
func (s *ScanSession) Stats() models.ScanStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
