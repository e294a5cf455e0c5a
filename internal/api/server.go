package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/DhruvDFT/Enhanced-Resume/internal/classifier"
	"github.com/DhruvDFT/Enhanced-Resume/internal/models"
)

// SessionRunner is the slice of scanner.ScanSession the server needs.
type SessionRunner interface {
	Scan(ctx context.Context, query string, maxMessages int64) (models.ScanStats, []models.FiledResume, error)
	Stats() models.ScanStats
}

// Server handles HTTP requests.
type Server struct {
	classifier *classifier.Classifier
	session    SessionRunner
}

// NewServer creates a new API server. session may be nil when scanning is not
// configured; classify-only mode still works.
func NewServer(clf *classifier.Classifier, session SessionRunner) *Server {
	return &Server{
		classifier: clf,
		session:    session,
	}
}

// Router returns the HTTP router.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("POST /scan", s.handleScan)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleRoot)

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Resume Scanner",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /classify": "Classify resume text",
			"POST /scan":     "Scan mailbox and file resumes",
			"GET /stats":     "Running scan counters",
			"GET /health":    "Health check",
		},
	})
}

// handleHealth provides a health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleClassify classifies a raw text body and returns the full result.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.classifier.Classify(req.Text)
	s.respondJSON(w, http.StatusOK, result)
}

// handleScan triggers a mailbox scan.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		s.respondError(w, http.StatusServiceUnavailable, "scanning not configured: missing Gmail credentials")
		return
	}

	var req models.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	stats, filed, err := s.session.Scan(r.Context(), req.Query, req.MaxMessages)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, models.ScanResponse{
		Stats: stats,
		Filed: filed,
	})
}

// handleStats returns the running counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.session == nil {
		s.respondError(w, http.StatusServiceUnavailable, "scanning not configured: missing Gmail credentials")
		return
	}
	s.respondJSON(w, http.StatusOK, s.session.Stats())
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
