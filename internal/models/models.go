package models

import "time"

// EmailMeta carries the sender/subject/date of the message an attachment came from.
type EmailMeta struct {
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	MessageID string    `json:"message_id"`
}

// RawDocument is a single attachment pulled from a message, discarded after
// text extraction.
type RawDocument struct {
	Content  []byte    `json:"-"`
	Filename string    `json:"filename"`
	FileType string    `json:"file_type"` // pdf, doc or docx
	Meta     EmailMeta `json:"meta"`
}

// DomainScore is one entry of the ranked per-domain score list.
type DomainScore struct {
	Domain  string   `json:"domain"`
	Score   float64  `json:"score"`
	Matches []string `json:"matches"`
}

// ClassificationResult is the judgment produced for one document. It is fully
// populated even on rejection: callers rely on the "Unknown Domain"/"Unknown"
// sentinels rather than empty fields.
type ClassificationResult struct {
	IsResume         bool          `json:"is_resume"`
	Confidence       float64       `json:"confidence"`
	Domain           string        `json:"domain"`
	DomainConfidence float64       `json:"domain_confidence"`
	AllDomains       []DomainScore `json:"all_domains"`
	MixedProfile     bool          `json:"mixed_profile"`
	ExperienceYears  float64       `json:"experience_years"`
	ExperienceLevel  string        `json:"experience_level"`
	QualityScore     float64       `json:"quality_score"`
	RejectionReason  string        `json:"rejection_reason,omitempty"`
}

// FiledResume records where an accepted resume ended up.
type FiledResume struct {
	Filename    string               `json:"filename"`
	Folder      string               `json:"folder"`
	DriveFileID string               `json:"drive_file_id,omitempty"`
	Result      ClassificationResult `json:"result"`
	Meta        EmailMeta            `json:"meta"`
}

// ScanStats holds the running counters of a scan session.
type ScanStats struct {
	MessagesProcessed int       `json:"messages_processed"`
	AttachmentsSeen   int       `json:"attachments_seen"`
	ResumesFound      int       `json:"resumes_found"`
	Skipped           int       `json:"skipped"`
	Errors            int       `json:"errors"`
	LastScan          time.Time `json:"last_scan"`
}

// ClassifyRequest is the request payload for the classify endpoint.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ScanRequest is the request payload for triggering a mailbox scan.
type ScanRequest struct {
	Query       string `json:"query"`        // extra Gmail query terms
	MaxMessages int64  `json:"max_messages"` // 0 means server default
}

// ScanResponse is returned after a scan completes.
type ScanResponse struct {
	Stats ScanStats     `json:"stats"`
	Filed []FiledResume `json:"filed"`
}
