package insight

import (
	"time"

	"datasight/domain/core"
)

// StructureProfile classifies a table's columns into analysis roles.
// Derived fresh per analysis pass and discarded afterwards; the role sets
// are never nil, only possibly empty.
type StructureProfile struct {
	Numeric     []string `json:"numeric_cols"`
	Categorical []string `json:"categorical_cols"`
	Datetime    []string `json:"datetime_cols"`

	// Derived roles. IDColumns are near-unique numeric columns excluded
	// from metrics; GroupingColumns are low-cardinality categoricals
	// usable as group-by keys; MetricColumns are numeric minus IDs,
	// order-preserving.
	IDColumns       []string `json:"id_cols"`
	GroupingColumns []string `json:"grouping_cols"`
	MetricColumns   []string `json:"metric_cols"`

	RowCount    int `json:"row_count"`
	ColumnCount int `json:"col_count"`
}

// HypothesisKind tags the statistical routine a hypothesis requires.
type HypothesisKind string

const (
	KindDistribution         HypothesisKind = "distribution"
	KindGroupComparison      HypothesisKind = "group_comparison"
	KindTopBottom            HypothesisKind = "top_bottom"
	KindCorrelation          HypothesisKind = "correlation"
	KindMissingData          HypothesisKind = "missing_data"
	KindCategoryDistribution HypothesisKind = "category_distribution"
)

// Hypothesis is a typed claim-to-be-tested about one table, carrying the
// column references its kind needs. Immutable once created.
type Hypothesis struct {
	ID          int            `json:"id"`
	Kind        HypothesisKind `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`

	// Column is set for distribution, top_bottom and category_distribution.
	Column string `json:"column,omitempty"`
	// GroupColumn/MetricColumn are set for group_comparison.
	GroupColumn  string `json:"group_col,omitempty"`
	MetricColumn string `json:"metric_col,omitempty"`
	// Columns is set for correlation (exactly two) and missing_data (up to five).
	Columns []string `json:"columns,omitempty"`
}

// HypothesisResult is the immutable outcome of testing one hypothesis.
// A failed test carries a human-readable cause in Finding and never an error.
type HypothesisResult struct {
	Hypothesis Hypothesis             `json:"hypothesis"`
	Success    bool                   `json:"success"`
	Finding    string                 `json:"finding,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// ReportKind distinguishes persisted report flavors.
type ReportKind string

const (
	ReportDeep ReportKind = "deep_insights"
	ReportAuto ReportKind = "auto_insights"
)

// ReportRecord is the persistable form of a finished insight report.
type ReportRecord struct {
	ID              core.ReportID `json:"id" db:"id"`
	Kind            ReportKind    `json:"kind" db:"kind"`
	Markdown        string        `json:"markdown" db:"markdown"`
	DatasetCount    int           `json:"dataset_count" db:"dataset_count"`
	HypothesisCount int           `json:"hypothesis_count" db:"hypothesis_count"`
	SuccessfulCount int           `json:"successful_count" db:"successful_count"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}
