package postgres

import (
	"context"
	"time"

	"datasight/domain/core"
	"datasight/domain/insight"
	"datasight/internal/errors"
	"datasight/ports"

	"github.com/jmoiron/sqlx"
)

const reportSchema = `
CREATE TABLE IF NOT EXISTS insight_reports (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	markdown TEXT NOT NULL,
	dataset_count INTEGER NOT NULL DEFAULT 0,
	hypothesis_count INTEGER NOT NULL DEFAULT 0,
	successful_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// reportLedger implements the ReportLedger interface
type reportLedger struct {
	db *sqlx.DB
}

// NewReportLedger creates a report ledger backed by Postgres, creating the
// backing table when missing.
func NewReportLedger(db *sqlx.DB) (ports.ReportLedger, error) {
	if _, err := db.Exec(reportSchema); err != nil {
		return nil, errors.DatabaseError("failed to ensure insight_reports schema", err)
	}
	return &reportLedger{db: db}, nil
}

// Save inserts a finished report record
func (r *reportLedger) Save(ctx context.Context, record insight.ReportRecord) error {
	if record.ID.String() == "" {
		record.ID = core.ReportID(core.NewID())
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `INSERT INTO insight_reports (
		id, kind, markdown, dataset_count, hypothesis_count, successful_count, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(), string(record.Kind), record.Markdown,
		record.DatasetCount, record.HypothesisCount, record.SuccessfulCount, record.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("failed to save report", err)
	}
	return nil
}

// List returns the most recent report records, newest first
func (r *reportLedger) List(ctx context.Context, limit int) ([]insight.ReportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT
		id, kind, markdown,
		COALESCE(dataset_count, 0) as dataset_count,
		COALESCE(hypothesis_count, 0) as hypothesis_count,
		COALESCE(successful_count, 0) as successful_count,
		created_at
	FROM insight_reports ORDER BY created_at DESC LIMIT $1`

	records := []insight.ReportRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errors.DatabaseError("failed to list reports", err)
	}
	return records, nil
}
