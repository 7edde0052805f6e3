package ports

import (
	"context"
	"errors"

	"datasight/domain/dataset"
)

// ResponseKind tags the payload of an agent response. Consumers switch on it
// exhaustively; there is no runtime attribute probing at this boundary.
type ResponseKind string

const (
	ResponseText  ResponseKind = "text"
	ResponseTable ResponseKind = "table"
	ResponseChart ResponseKind = "chart"
	ResponseError ResponseKind = "error"
)

// Response is the typed result of a natural-language query. Exactly the
// field matching Kind is populated: Text for text and error, Table for
// tabular results, ChartPath for a chart the agent rendered to disk.
type Response struct {
	Kind      ResponseKind   `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Table     *dataset.Table `json:"table,omitempty"`
	ChartPath string         `json:"chart_path,omitempty"`
}

// ErrNoAnswer signals that the agent could not produce an answer for the
// question (no code generated, no result returned). Callers treat it as a
// recoverable condition and apply the insight fallback policy.
var ErrNoAnswer = errors.New("agent produced no answer")

// QueryAgent is the natural-language-to-code agent collaborator, consumed
// only through this contract.
type QueryAgent interface {
	Query(ctx context.Context, question string) (Response, error)
}
