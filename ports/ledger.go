package ports

import (
	"context"

	"datasight/domain/insight"
)

// ReportLedger persists finished insight reports for later retrieval.
// The analysis core never touches it; the serving layer writes through it
// when persistence is configured.
type ReportLedger interface {
	Save(ctx context.Context, record insight.ReportRecord) error
	List(ctx context.Context, limit int) ([]insight.ReportRecord, error)
}
