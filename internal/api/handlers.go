package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"datasight/adapters/excel"
	"datasight/app"
	"datasight/domain/core"
	"datasight/domain/dataset"
	"datasight/domain/insight"
	"datasight/internal/errors"

	"github.com/gomarkdown/markdown"
)

// datasetSummary is the list-endpoint view of a loaded table.
type datasetSummary struct {
	Name    string            `json:"name"`
	Rows    int               `json:"rows"`
	Cols    int               `json:"cols"`
	Columns map[string]string `json:"columns"`
}

func (s *Server) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	// The reader works off a path, so spool the upload to a temp file.
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		respondError(w, http.StatusInternalServerError, "failed to buffer upload")
		return
	}
	tmp.Close()

	tbl, err := excel.NewDataReader(tmp.Name()).ReadTable()
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to load %s: %v", header.Filename, err))
		return
	}

	name := filepath.Base(header.Filename)
	s.AddTable(tbl, name)
	log.Printf("[API] Loaded dataset %s (%d rows, %d columns)", name, tbl.RowCount(), tbl.ColumnCount())

	respondJSON(w, http.StatusCreated, datasetSummary{
		Name:    name,
		Rows:    tbl.RowCount(),
		Cols:    tbl.ColumnCount(),
		Columns: columnKinds(tbl),
	})
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	tables, names := s.loadedTables()
	summaries := make([]datasetSummary, 0, len(tables))
	for i, tbl := range tables {
		summaries = append(summaries, datasetSummary{
			Name:    names[i],
			Rows:    tbl.RowCount(),
			Cols:    tbl.ColumnCount(),
			Columns: columnKinds(tbl),
		})
	}
	respondJSON(w, http.StatusOK, summaries)
}

func columnKinds(tbl *dataset.Table) map[string]string {
	kinds := make(map[string]string, tbl.ColumnCount())
	for _, col := range tbl.Columns() {
		kinds[col.Name] = string(col.Kind)
	}
	return kinds
}

type queryRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	if err := s.analysisSem.Acquire(r.Context(), 1); err != nil {
		respondError(w, http.StatusServiceUnavailable, "analysis cancelled")
		return
	}
	defer s.analysisSem.Release(1)

	tables, names := s.loadedTables()
	answer := s.insights.Ask(r.Context(), req.Question, tables, names)
	s.persistAnswer(r, answer)
	respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleDeepInsights(w http.ResponseWriter, r *http.Request) {
	answer, ok := s.runDeep(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleAutoInsights(w http.ResponseWriter, r *http.Request) {
	answer, ok := s.runAuto(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleDeepInsightsHTML(w http.ResponseWriter, r *http.Request) {
	answer, ok := s.runDeep(w, r)
	if !ok {
		return
	}
	writeMarkdownHTML(w, answer.Response.Text)
}

func (s *Server) handleAutoInsightsHTML(w http.ResponseWriter, r *http.Request) {
	answer, ok := s.runAuto(w, r)
	if !ok {
		return
	}
	writeMarkdownHTML(w, answer.Response.Text)
}

func (s *Server) runDeep(w http.ResponseWriter, r *http.Request) (app.Answer, bool) {
	if err := s.analysisSem.Acquire(r.Context(), 1); err != nil {
		respondError(w, http.StatusServiceUnavailable, "analysis cancelled")
		return app.Answer{}, false
	}
	defer s.analysisSem.Release(1)

	tables, names := s.loadedTables()
	if len(tables) == 0 {
		respondError(w, http.StatusBadRequest, "no datasets loaded")
		return app.Answer{}, false
	}
	answer := s.insights.DeepInsights(tables, names)
	s.persistAnswer(r, answer)
	return answer, true
}

func (s *Server) runAuto(w http.ResponseWriter, r *http.Request) (app.Answer, bool) {
	if err := s.analysisSem.Acquire(r.Context(), 1); err != nil {
		respondError(w, http.StatusServiceUnavailable, "analysis cancelled")
		return app.Answer{}, false
	}
	defer s.analysisSem.Release(1)

	tables, names := s.loadedTables()
	if len(tables) == 0 {
		respondError(w, http.StatusBadRequest, "no datasets loaded")
		return app.Answer{}, false
	}
	answer := s.insights.AutoInsights(tables, names)
	s.persistAnswer(r, answer)
	return answer, true
}

// persistAnswer records finished reports through the ledger when configured.
func (s *Server) persistAnswer(r *http.Request, answer app.Answer) {
	if s.ledger == nil {
		return
	}

	record := insight.ReportRecord{
		ID:        core.ReportID(core.NewID()),
		Markdown:  answer.Response.Text,
		CreatedAt: time.Now(),
	}
	tables, _ := s.loadedTables()
	record.DatasetCount = len(tables)

	switch answer.Source {
	case app.SourceDeep:
		record.Kind = insight.ReportDeep
		if answer.Deep != nil {
			record.HypothesisCount = answer.Deep.HypothesisCount
			record.SuccessfulCount = answer.Deep.SuccessfulCount
		}
	case app.SourceAuto:
		record.Kind = insight.ReportAuto
	default:
		return
	}

	if err := s.ledger.Save(r.Context(), record); err != nil {
		log.Printf("[API] Failed to persist report: %v", err)
	}
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		respondJSON(w, http.StatusOK, []insight.ReportRecord{})
		return
	}
	records, err := s.ledger.List(r.Context(), 20)
	if err != nil {
		log.Printf("[API] Failed to list reports (%s): %v", errors.GetCode(err), err)
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func writeMarkdownHTML(w http.ResponseWriter, md string) {
	html := markdown.ToHTML([]byte(md), nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}
