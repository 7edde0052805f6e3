package hypothesis

import (
	"fmt"

	"datasight/domain/dataset"
	"datasight/domain/insight"
)

// maxMissingColumns bounds how many null-bearing columns one missing-data
// hypothesis inspects.
const maxMissingColumns = 5

// Generator derives testable hypotheses from a table's structure profile.
type Generator struct {
	maxHypotheses int
}

// NewGenerator creates a generator with the default cap of 5 hypotheses.
func NewGenerator() *Generator {
	return NewGeneratorWithCap(5)
}

// NewGeneratorWithCap creates a generator with a custom hypothesis cap.
func NewGeneratorWithCap(max int) *Generator {
	return &Generator{maxHypotheses: max}
}

// Generate emits at most the capped number of hypotheses, as many as the
// profile supports, in fixed priority order: distribution, group comparison,
// top/bottom, correlation, missing data, then category distribution as
// filler. Hypotheses whose required columns are absent are skipped without
// error. IDs are assigned sequentially from 1 in generation order.
func (g *Generator) Generate(tbl *dataset.Table, profile insight.StructureProfile) []insight.Hypothesis {
	hypotheses := []insight.Hypothesis{}

	if len(profile.MetricColumns) > 0 {
		col := profile.MetricColumns[0]
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:        insight.KindDistribution,
			Title:       fmt.Sprintf("Distribution Analysis of '%s'", col),
			Description: fmt.Sprintf("What is the distribution of %s? Are there outliers?", col),
			Column:      col,
		})
	}

	if len(profile.GroupingColumns) > 0 && len(profile.MetricColumns) > 0 {
		groupCol := profile.GroupingColumns[0]
		metricCol := profile.MetricColumns[0]
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:         insight.KindGroupComparison,
			Title:        fmt.Sprintf("Comparison by '%s'", groupCol),
			Description:  fmt.Sprintf("How does %s vary across different %s?", metricCol, groupCol),
			GroupColumn:  groupCol,
			MetricColumn: metricCol,
		})
	}

	if len(profile.MetricColumns) > 0 && tbl.RowCount() > 5 {
		col := profile.MetricColumns[0]
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:        insight.KindTopBottom,
			Title:       fmt.Sprintf("Top & Bottom Analysis for '%s'", col),
			Description: fmt.Sprintf("What are the top and bottom performers by %s?", col),
			Column:      col,
		})
	}

	if len(profile.MetricColumns) >= 2 {
		col1, col2 := profile.MetricColumns[0], profile.MetricColumns[1]
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:        insight.KindCorrelation,
			Title:       fmt.Sprintf("Correlation between '%s' and '%s'", col1, col2),
			Description: fmt.Sprintf("Is there a relationship between %s and %s?", col1, col2),
			Columns:     []string{col1, col2},
		})
	}

	missingCols := []string{}
	for _, col := range tbl.Columns() {
		if col.NullCount() > 0 {
			missingCols = append(missingCols, col.Name)
		}
	}
	if len(missingCols) > 0 {
		if len(missingCols) > maxMissingColumns {
			missingCols = missingCols[:maxMissingColumns]
		}
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:        insight.KindMissingData,
			Title:       "Missing Data Pattern Analysis",
			Description: "Where is data missing and what patterns exist?",
			Columns:     missingCols,
		})
	}

	// Filler: only when the slots above left room.
	if len(hypotheses) < g.maxHypotheses && len(profile.GroupingColumns) > 0 {
		col := profile.GroupingColumns[0]
		hypotheses = append(hypotheses, insight.Hypothesis{
			Kind:        insight.KindCategoryDistribution,
			Title:       fmt.Sprintf("Category Distribution of '%s'", col),
			Description: fmt.Sprintf("What is the distribution of categories in %s?", col),
			Column:      col,
		})
	}

	if len(hypotheses) > g.maxHypotheses {
		hypotheses = hypotheses[:g.maxHypotheses]
	}
	for i := range hypotheses {
		hypotheses[i].ID = i + 1
	}
	return hypotheses
}
