package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

const acceptedResume = `Email: jane@example.org
Phone: 555-0100
Experience: 6 years
Education: B.Tech
Skills: uvm systemverilog testbench functional coverage
Detailed project history padding so the document clears the length gate easily.`

const rejectedText = `short note with nothing resume-like in it at all, padded out far enough
that the minimum length gate is not the reason it gets thrown away here.`

type fakeMail struct {
	docs []models.RawDocument
	err  error
}

func (f *fakeMail) FetchResumeAttachments(_ context.Context, _ string, _ int64) ([]models.RawDocument, error) {
	return f.docs, f.err
}

type fakeFiler struct {
	mu           sync.Mutex
	ensureCalls  []string
	uploadCalls  []string
	uploadErrFor string
	nextFolderID int
}

func (f *fakeFiler) RootID() string { return "root" }

func (f *fakeFiler) EnsureFolder(_ context.Context, parentID, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls = append(f.ensureCalls, parentID+"/"+name)
	f.nextFolderID++
	return fmt.Sprintf("folder-%d", f.nextFolderID), nil
}

func (f *fakeFiler) Upload(_ context.Context, folderID, filename, _ string, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErrFor != "" && strings.Contains(filename, f.uploadErrFor) {
		return "", errors.New("quota exceeded")
	}
	f.uploadCalls = append(f.uploadCalls, folderID+"/"+filename)
	return "file-" + filename, nil
}

type fakeRecorder struct {
	mu   sync.Mutex
	rows []models.FiledResume
	err  error
}

func (f *fakeRecorder) Append(_ context.Context, filed models.FiledResume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, filed)
	return nil
}

func passthroughExtractor(content []byte, _ string) string {
	return string(content)
}

func doc(id, sender, body string) models.RawDocument {
	return models.RawDocument{
		Content:  []byte(body),
		Filename: sender + ".txt",
		FileType: "txt",
		Meta: models.EmailMeta{
			Sender:    sender,
			Subject:   "Application",
			MessageID: id,
			Date:      time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC),
		},
	}
}

func newTestSession(mail *fakeMail, filer *fakeFiler, recorder Recorder) *ScanSession {
	return NewSession(mail, passthroughExtractor, classifier.New(classifier.DefaultConfig()), filer, recorder, Options{
		RequestsPerSecond: 1000, // keep tests fast
		Now: func() time.Time {
			return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
		},
	})
}

// TestScan_CountersAndFiling runs a mixed batch and checks every counter.
func TestScan_CountersAndFiling(t *testing.T) {
	mail := &fakeMail{docs: []models.RawDocument{
		doc("m1", "Jane", acceptedResume),
		doc("m1", "Jane2", acceptedResume), // second attachment, same message
		doc("m2", "Bob", rejectedText),
		doc("m3", "Eve", ""), // extraction failure
	}}
	filer := &fakeFiler{}
	recorder := &fakeRecorder{}

	session := newTestSession(mail, filer, recorder)
	stats, filed, err := session.Scan(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if stats.MessagesProcessed != 3 {
		t.Errorf("MessagesProcessed = %d, want 3", stats.MessagesProcessed)
	}
	if stats.AttachmentsSeen != 4 {
		t.Errorf("AttachmentsSeen = %d, want 4", stats.AttachmentsSeen)
	}
	if stats.ResumesFound != 2 {
		t.Errorf("ResumesFound = %d, want 2", stats.ResumesFound)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(filed) != 2 {
		t.Fatalf("filed = %d records, want 2", len(filed))
	}
	if len(recorder.rows) != 2 {
		t.Errorf("recorder rows = %d, want 2", len(recorder.rows))
	}
	if filed[0].Folder != "Design Verification/Senior (5-8 years)" {
		t.Errorf("filed folder = %q", filed[0].Folder)
	}
	if len(filer.uploadCalls) != 2 {
		t.Errorf("uploads = %d, want 2", len(filer.uploadCalls))
	}
}

// TestScan_FolderMemoization verifies lookup-or-create runs once per
// (domain, level) pair within a session.
func TestScan_FolderMemoization(t *testing.T) {
	mail := &fakeMail{docs: []models.RawDocument{
		doc("m1", "Jane", acceptedResume),
		doc("m2", "Kim", acceptedResume),
		doc("m3", "Lee", acceptedResume),
	}}
	filer := &fakeFiler{}

	session := newTestSession(mail, filer, nil)
	if _, _, err := session.Scan(context.Background(), "", 0); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	// One call for the domain folder, one for the level folder.
	if len(filer.ensureCalls) != 2 {
		t.Errorf("EnsureFolder calls = %v, want 2 calls", filer.ensureCalls)
	}
}

// TestScan_UploadFailureDoesNotAbort verifies per-item error tolerance.
func TestScan_UploadFailureDoesNotAbort(t *testing.T) {
	mail := &fakeMail{docs: []models.RawDocument{
		doc("m1", "Jane", acceptedResume),
		doc("m2", "Kim", acceptedResume),
	}}
	filer := &fakeFiler{uploadErrFor: "Jane"}

	session := newTestSession(mail, filer, nil)
	stats, filed, err := session.Scan(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(filed) != 1 {
		t.Fatalf("filed = %d records, want 1", len(filed))
	}
	if !strings.Contains(filed[0].Filename, "Kim") {
		t.Errorf("surviving record = %q, want Kim's", filed[0].Filename)
	}
}

// TestScan_RecorderFailureKeepsFile verifies a sheet failure counts an error
// but keeps the uploaded record.
func TestScan_RecorderFailureKeepsFile(t *testing.T) {
	mail := &fakeMail{docs: []models.RawDocument{doc("m1", "Jane", acceptedResume)}}
	filer := &fakeFiler{}
	recorder := &fakeRecorder{err: errors.New("sheet unavailable")}

	session := newTestSession(mail, filer, recorder)
	stats, filed, err := session.Scan(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(filed) != 1 || stats.ResumesFound != 1 {
		t.Errorf("record dropped on recorder failure: filed=%d resumes=%d", len(filed), stats.ResumesFound)
	}
}

// TestScan_FetchFailure verifies only the listing aborts a batch.
func TestScan_FetchFailure(t *testing.T) {
	mail := &fakeMail{err: errors.New("auth expired")}
	session := newTestSession(mail, &fakeFiler{}, nil)

	if _, _, err := session.Scan(context.Background(), "", 0); err == nil {
		t.Errorf("Scan() = nil error, want fetch failure")
	}
}

// TestStats_Accumulates verifies counters run across batches and the
// timestamp updates.
func TestStats_Accumulates(t *testing.T) {
	mail := &fakeMail{docs: []models.RawDocument{doc("m1", "Jane", acceptedResume)}}
	session := newTestSession(mail, &fakeFiler{}, nil)

	for i := 0; i < 3; i++ {
		if _, _, err := session.Scan(context.Background(), "", 0); err != nil {
			t.Fatalf("Scan() error: %v", err)
		}
	}

	stats := session.Stats()
	if stats.ResumesFound != 3 {
		t.Errorf("ResumesFound = %d, want 3", stats.ResumesFound)
	}
	if stats.LastScan.IsZero() {
		t.Errorf("LastScan not set")
	}
}
