package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

type stubSession struct {
	stats models.ScanStats
	filed []models.FiledResume
	err   error
}

func (s *stubSession) Scan(_ context.Context, _ string, _ int64) (models.ScanStats, []models.FiledResume, error) {
	return s.stats, s.filed, s.err
}

func (s *stubSession) Stats() models.ScanStats {
	return s.stats
}

func newTestServer(session SessionRunner) *Server {
	return NewServer(classifier.New(classifier.DefaultConfig()), session)
}

// TestHandleClassify_Contract verifies the JSON contract: every field present
// with sentinel defaults on rejection.
func TestHandleClassify_Contract(t *testing.T) {
	server := newTestServer(nil)

	body := strings.NewReader(`{"text": "asdf qwer"}`)
	req := httptest.NewRequest(http.MethodPost, "/classify", body)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if payload["is_resume"] != false {
		t.Errorf("is_resume = %v, want false", payload["is_resume"])
	}
	if payload["domain"] != "Unknown Domain" {
		t.Errorf("domain = %v, want Unknown Domain", payload["domain"])
	}
	if payload["experience_level"] != "Unknown" {
		t.Errorf("experience_level = %v, want Unknown", payload["experience_level"])
	}
	if reason, _ := payload["rejection_reason"].(string); reason == "" {
		t.Errorf("rejection_reason missing or empty")
	}

	for _, field := range []string{"confidence", "domain_confidence", "experience_years", "quality_score"} {
		if _, ok := payload[field]; !ok {
			t.Errorf("field %q missing from response", field)
		}
	}
}

// TestHandleClassify_AcceptedResume runs a valid resume through the endpoint.
func TestHandleClassify_AcceptedResume(t *testing.T) {
	server := newTestServer(nil)

	text := `Email: x@y.com
Phone: 555-0100
Experience: 6 years
Education: B.Tech
Skills: Verilog, UVM, SystemVerilog
Built UVM testbenches with functional coverage for SoC verification projects.`

	payload, err := json.Marshal(models.ClassifyRequest{Text: text})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var result models.ClassificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if !result.IsResume {
		t.Fatalf("is_resume = false: %s", result.RejectionReason)
	}
	if result.Domain != classifier.DomainDesignVerification {
		t.Errorf("domain = %q", result.Domain)
	}
	if result.ExperienceLevel != classifier.LevelSenior {
		t.Errorf("experience_level = %q", result.ExperienceLevel)
	}
}

// TestHandleScan_NotConfigured verifies the classify-only degradation.
func TestHandleScan_NotConfigured(t *testing.T) {
	server := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

// TestHandleScan_ReturnsStats verifies the scan response shape.
func TestHandleScan_ReturnsStats(t *testing.T) {
	session := &stubSession{
		stats: models.ScanStats{MessagesProcessed: 4, ResumesFound: 2},
	}
	server := newTestServer(session)

	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{"query":"subject:resume"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Stats.ResumesFound != 2 {
		t.Errorf("resumes_found = %d, want 2", resp.Stats.ResumesFound)
	}
}

// TestHandleHealth verifies the health endpoint.
func TestHandleHealth(t *testing.T) {
	server := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
