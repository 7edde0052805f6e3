package app

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"datasight/domain/dataset"
	"datasight/internal/errors"
	"datasight/internal/visuals"

	"github.com/montanaflynn/stats"
)

// maxCategoricalSummaries bounds the per-table categorical summary section.
const maxCategoricalSummaries = 5

// ColumnType pairs a column name with its inferred kind, in table order.
type ColumnType struct {
	Column string       `json:"column"`
	Kind   dataset.Kind `json:"kind"`
}

// ColumnDescribe is the describe-table row for one numeric column.
type ColumnDescribe struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// MissingValue counts nulls for one column; only null-bearing columns appear.
type MissingValue struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// CategorySummary describes one categorical column's value spread.
type CategorySummary struct {
	Column      string               `json:"column"`
	UniqueCount int                  `json:"unique_count"`
	TopValues   []dataset.ValueCount `json:"top_values"`
}

// TableSummary is the per-dataset summary-statistics block.
type TableSummary struct {
	Name               string            `json:"name"`
	Rows               int               `json:"rows"`
	Cols               int               `json:"cols"`
	Columns            []string          `json:"columns"`
	Types              []ColumnType      `json:"dtypes"`
	NumericSummary     []ColumnDescribe  `json:"numeric_summary,omitempty"`
	MissingValues      []MissingValue    `json:"missing_values,omitempty"`
	CategoricalSummary []CategorySummary `json:"categorical_summary,omitempty"`
}

// AutoReport is the lower-fidelity insight report: summary statistics plus
// score-ranked visualizations grouped into the four fixed categories.
type AutoReport struct {
	InsightsText   string                                       `json:"insights_text"`
	Visualizations []visuals.Visualization                      `json:"visualizations"`
	ByCategory     map[visuals.Category][]visuals.Visualization `json:"visualizations_by_category"`
	Summaries      []TableSummary                               `json:"summaries"`
}

// AutoInsightService builds summary statistics and scored visualizations.
type AutoInsightService struct {
	visualGen *visuals.Generator
}

// NewAutoInsightService wires the auto insight pipeline.
func NewAutoInsightService(visualGen *visuals.Generator) *AutoInsightService {
	return &AutoInsightService{visualGen: visualGen}
}

// Build produces the full auto-insight report: per-dataset summaries, a
// markdown rendering of them, and all visualizations sorted descending by
// interestingness score.
func (s *AutoInsightService) Build(tables []*dataset.Table, names []string) (*AutoReport, error) {
	if len(tables) == 0 {
		return nil, errors.NoData("no datasets to analyze")
	}
	for i, tbl := range tables {
		if tbl == nil {
			return nil, errors.InvalidInput(fmt.Sprintf("dataset %d is nil", i+1))
		}
	}

	summaries := make([]TableSummary, 0, len(tables))
	for i, tbl := range tables {
		summaries = append(summaries, summarizeTable(tbl, datasetName(names, i)))
	}

	visualizations := s.visualGen.Generate(tables, names)
	sort.SliceStable(visualizations, func(i, j int) bool {
		return visualizations[i].Score > visualizations[j].Score
	})

	byCategory := map[visuals.Category][]visuals.Visualization{
		visuals.CategoryTrending:     {},
		visuals.CategoryCorrelation:  {},
		visuals.CategoryDistribution: {},
		visuals.CategoryCategorical:  {},
	}
	for _, viz := range visualizations {
		byCategory[viz.Category] = append(byCategory[viz.Category], viz)
	}

	log.Printf("[AutoInsights] Summarized %d datasets, %d visualizations", len(tables), len(visualizations))

	return &AutoReport{
		InsightsText:   renderInsightsText(summaries),
		Visualizations: visualizations,
		ByCategory:     byCategory,
		Summaries:      summaries,
	}, nil
}

func summarizeTable(tbl *dataset.Table, name string) TableSummary {
	summary := TableSummary{
		Name:    name,
		Rows:    tbl.RowCount(),
		Cols:    tbl.ColumnCount(),
		Columns: tbl.ColumnNames(),
	}

	for _, col := range tbl.Columns() {
		summary.Types = append(summary.Types, ColumnType{Column: col.Name, Kind: col.Kind})

		if col.Kind == dataset.KindNumeric {
			if desc, ok := describeColumn(col); ok {
				summary.NumericSummary = append(summary.NumericSummary, desc)
			}
		}
		if count := col.NullCount(); count > 0 {
			summary.MissingValues = append(summary.MissingValues, MissingValue{Column: col.Name, Count: count})
		}
	}

	for _, col := range tbl.Columns() {
		if col.Kind != dataset.KindCategorical {
			continue
		}
		if len(summary.CategoricalSummary) == maxCategoricalSummaries {
			break
		}
		top := dataset.ValueCounts(col)
		if len(top) > 10 {
			top = top[:10]
		}
		summary.CategoricalSummary = append(summary.CategoricalSummary, CategorySummary{
			Column:      col.Name,
			UniqueCount: col.DistinctCount(),
			TopValues:   top,
		})
	}

	return summary
}

func describeColumn(col *dataset.Column) (ColumnDescribe, bool) {
	values := col.NonNullFloats()
	if len(values) == 0 {
		return ColumnDescribe{}, false
	}

	desc := ColumnDescribe{Column: col.Name, Count: len(values)}
	desc.Mean, _ = stats.Mean(values)
	desc.Min, _ = stats.Min(values)
	desc.Max, _ = stats.Max(values)
	desc.Median, _ = stats.Median(values)
	desc.Q25, _ = stats.Percentile(values, 25)
	desc.Q75, _ = stats.Percentile(values, 75)
	if len(values) > 1 {
		desc.Std, _ = stats.StandardDeviationSample(values)
	}
	return desc, true
}

func renderInsightsText(summaries []TableSummary) string {
	var text strings.Builder
	text.WriteString("# 📊 Auto-Generated Data Insights\n")

	for _, summary := range summaries {
		fmt.Fprintf(&text, "\n## %s\n\n", summary.Name)
		fmt.Fprintf(&text, "**Shape**: %s rows × %d columns\n", groupDigits(summary.Rows), summary.Cols)

		if len(summary.MissingValues) > 0 {
			text.WriteString("\n**⚠️ Missing Values Found:**\n")
			for _, mv := range summary.MissingValues {
				pct := float64(mv.Count) / float64(summary.Rows) * 100
				fmt.Fprintf(&text, "- `%s`: %s (%.1f%%)\n", mv.Column, groupDigits(mv.Count), pct)
			}
		}

		if len(summary.NumericSummary) > 0 {
			fmt.Fprintf(&text, "\n**📈 Numeric Columns (%d):**\n", len(summary.NumericSummary))
			shown := summary.NumericSummary
			if len(shown) > 10 {
				shown = shown[:10]
			}
			names := make([]string, 0, len(shown))
			for _, desc := range shown {
				names = append(names, fmt.Sprintf("`%s`", desc.Column))
			}
			text.WriteString(strings.Join(names, ", ") + "\n")
			if extra := len(summary.NumericSummary) - 10; extra > 0 {
				fmt.Fprintf(&text, "... and %d more\n", extra)
			}
		}

		if len(summary.CategoricalSummary) > 0 {
			text.WriteString("\n**📋 Categorical Columns:**\n")
			for _, cat := range summary.CategoricalSummary {
				fmt.Fprintf(&text, "- `%s`: %d unique values\n", cat.Column, cat.UniqueCount)
				if len(cat.TopValues) > 0 {
					fmt.Fprintf(&text, "  - Most frequent: `%s` (%d times)\n", cat.TopValues[0].Value, cat.TopValues[0].Count)
				}
			}
		}

		text.WriteString("\n---\n")
	}

	return text.String()
}
