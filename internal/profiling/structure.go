package profiling

import (
	"datasight/domain/dataset"
	"datasight/domain/insight"
)

// Thresholds are the tunable cardinality cutoffs for column role
// classification.
type Thresholds struct {
	// IDCardinalityRatio: a numeric column whose distinct count exceeds
	// this fraction of the row count is treated as an identifier.
	IDCardinalityRatio float64
	// GroupingMin/GroupingMax bound the distinct counts of a categorical
	// column usable as a group-by key.
	GroupingMin int
	GroupingMax int
}

// DefaultThresholds returns the default cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IDCardinalityRatio: 0.9,
		GroupingMin:        2,
		GroupingMax:        20,
	}
}

// Analyzer classifies table columns into analysis roles.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer creates a structure analyzer with default thresholds.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithThresholds(DefaultThresholds())
}

// NewAnalyzerWithThresholds creates a structure analyzer with custom cutoffs.
func NewAnalyzerWithThresholds(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Analyze inspects a table and classifies columns by dtype and role.
// It never fails: absent categories yield empty slices, and on an empty
// table no numeric column can exceed the ID threshold, so every numeric
// column remains a metric.
func (a *Analyzer) Analyze(tbl *dataset.Table) insight.StructureProfile {
	profile := insight.StructureProfile{
		Numeric:         []string{},
		Categorical:     []string{},
		Datetime:        []string{},
		IDColumns:       []string{},
		GroupingColumns: []string{},
		MetricColumns:   []string{},
		RowCount:        tbl.RowCount(),
		ColumnCount:     tbl.ColumnCount(),
	}

	for _, col := range tbl.Columns() {
		switch col.Kind {
		case dataset.KindNumeric:
			profile.Numeric = append(profile.Numeric, col.Name)
		case dataset.KindCategorical:
			profile.Categorical = append(profile.Categorical, col.Name)
		case dataset.KindDatetime:
			profile.Datetime = append(profile.Datetime, col.Name)
		}
	}

	idSet := make(map[string]bool)
	for _, name := range profile.Numeric {
		col, _ := tbl.Column(name)
		if float64(col.DistinctCount()) > a.thresholds.IDCardinalityRatio*float64(tbl.RowCount()) {
			profile.IDColumns = append(profile.IDColumns, name)
			idSet[name] = true
		}
	}

	for _, name := range profile.Categorical {
		col, _ := tbl.Column(name)
		distinct := col.DistinctCount()
		if distinct >= a.thresholds.GroupingMin && distinct <= a.thresholds.GroupingMax {
			profile.GroupingColumns = append(profile.GroupingColumns, name)
		}
	}

	// Metric columns preserve numeric declaration order.
	for _, name := range profile.Numeric {
		if !idSet[name] {
			profile.MetricColumns = append(profile.MetricColumns, name)
		}
	}

	return profile
}
