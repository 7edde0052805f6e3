// Package api exposes the insight pipelines over HTTP. The interactive chat
// UI is an external collaborator; this surface only loads datasets, answers
// queries, and serves reports as JSON or rendered markdown.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"datasight/app"
	"datasight/domain/dataset"
	"datasight/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"
)

// Server wires the HTTP routes around the insight services. Loaded tables
// are held per process; the analysis pipelines themselves stay stateless.
type Server struct {
	router   *chi.Mux
	insights *app.InsightService
	ledger   ports.ReportLedger // nil disables persistence

	// Figure batch close is a process-wide side effect, so at most one
	// analysis may run at a time.
	analysisSem *semaphore.Weighted

	mu     sync.RWMutex
	tables []*dataset.Table
	names  []string
}

// NewServer creates the HTTP server. ledger may be nil.
func NewServer(insights *app.InsightService, ledger ports.ReportLedger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		insights:    insights,
		ledger:      ledger,
		analysisSem: semaphore.NewWeighted(1),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/datasets", s.handleUploadDataset)
		r.Get("/datasets", s.handleListDatasets)
		r.Post("/query", s.handleQuery)
		r.Post("/insights/deep", s.handleDeepInsights)
		r.Post("/insights/auto", s.handleAutoInsights)
		r.Get("/reports", s.handleListReports)
	})
	s.router.Get("/insights/deep", s.handleDeepInsightsHTML)
	s.router.Get("/insights/auto", s.handleAutoInsightsHTML)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddTable registers a loaded table for analysis.
func (s *Server) AddTable(tbl *dataset.Table, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, tbl)
	s.names = append(s.names, name)
}

func (s *Server) loadedTables() ([]*dataset.Table, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]*dataset.Table, len(s.tables))
	copy(tables, s.tables)
	names := make([]string, len(s.names))
	copy(names, s.names)
	return tables, names
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
