package hypothesis

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"datasight/domain/dataset"
	"datasight/domain/insight"
	"datasight/internal/profiling"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Tester executes hypotheses against tables. Stateless; testing the same
// hypothesis twice against the same table yields identical results.
type Tester struct{}

// NewTester creates a hypothesis tester.
func NewTester() *Tester {
	return &Tester{}
}

// Test runs the statistical routine for the hypothesis kind. It never
// returns an error: any computation failure is downgraded to a result with
// Success=false and a human-readable cause.
func (t *Tester) Test(tbl *dataset.Table, hyp insight.Hypothesis) insight.HypothesisResult {
	result := insight.HypothesisResult{Hypothesis: hyp}

	var (
		finding string
		data    map[string]interface{}
		err     error
	)

	switch hyp.Kind {
	case insight.KindDistribution:
		finding, data, err = t.testDistribution(tbl, hyp.Column)
	case insight.KindGroupComparison:
		finding, data, err = t.testGroupComparison(tbl, hyp.GroupColumn, hyp.MetricColumn)
	case insight.KindTopBottom:
		finding, data, err = t.testTopBottom(tbl, hyp.Column)
	case insight.KindCorrelation:
		finding, data, err = t.testCorrelation(tbl, hyp.Columns)
	case insight.KindMissingData:
		finding, data, err = t.testMissingData(tbl, hyp.Columns)
	case insight.KindCategoryDistribution:
		finding, data, err = t.testCategoryDistribution(tbl, hyp.Column)
	default:
		err = fmt.Errorf("unknown hypothesis kind %q", hyp.Kind)
	}

	if err != nil {
		log.Printf("[Hypothesis] Failed to test hypothesis %d (%s): %v", hyp.ID, hyp.Kind, err)
		result.Finding = fmt.Sprintf("Could not test this hypothesis: %v", err)
		return result
	}

	result.Success = true
	result.Finding = finding
	result.Data = data
	return result
}

func numericColumn(tbl *dataset.Table, name string) (*dataset.Column, error) {
	col, ok := tbl.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if col.Kind != dataset.KindNumeric {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return col, nil
}

func (t *Tester) testDistribution(tbl *dataset.Table, column string) (string, map[string]interface{}, error) {
	col, err := numericColumn(tbl, column)
	if err != nil {
		return "", nil, err
	}
	values := col.NonNullFloats()
	if len(values) == 0 {
		return "", nil, fmt.Errorf("column %q has no values", column)
	}

	min, err := stats.Min(values)
	if err != nil {
		return "", nil, err
	}
	max, err := stats.Max(values)
	if err != nil {
		return "", nil, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return "", nil, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return "", nil, err
	}
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, err = stats.StandardDeviationSample(values)
		if err != nil {
			return "", nil, err
		}
	}

	// Skewness needs at least 3 observations, otherwise treated as 0.
	skewness := profiling.Skewness(values)

	finding := formatDistributionFinding(column, min, max, mean, median, skewness)
	data := map[string]interface{}{
		"count":  len(values),
		"min":    min,
		"max":    max,
		"mean":   mean,
		"median": median,
		"std":    stdDev,
		"skew":   skewness,
	}
	return finding, data, nil
}

// groupStat is one group-by bucket aggregated over the metric column.
type groupStat struct {
	Group string
	Mean  float64
	Count int
}

func (t *Tester) testGroupComparison(tbl *dataset.Table, groupColumn, metricColumn string) (string, map[string]interface{}, error) {
	groupCol, ok := tbl.Column(groupColumn)
	if !ok {
		return "", nil, fmt.Errorf("column %q not found", groupColumn)
	}
	if groupCol.Kind != dataset.KindCategorical {
		return "", nil, fmt.Errorf("column %q is not categorical", groupColumn)
	}
	metricCol, err := numericColumn(tbl, metricColumn)
	if err != nil {
		return "", nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := []string{}
	for i := 0; i < groupCol.Len(); i++ {
		if groupCol.Null[i] || metricCol.Null[i] {
			continue
		}
		key := groupCol.Strings[i]
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		sums[key] += metricCol.Floats[i]
		counts[key]++
	}
	if len(order) == 0 {
		return "", nil, fmt.Errorf("no observations to group %q by %q", metricColumn, groupColumn)
	}

	grouped := make([]groupStat, 0, len(order))
	for _, key := range order {
		grouped = append(grouped, groupStat{
			Group: key,
			Mean:  sums[key] / float64(counts[key]),
			Count: counts[key],
		})
	}
	sort.SliceStable(grouped, func(i, j int) bool { return grouped[i].Mean > grouped[j].Mean })

	finding := formatGroupComparisonFinding(groupColumn, metricColumn, grouped)

	top := grouped
	if len(top) > 10 {
		top = top[:10]
	}
	groups := make([]map[string]interface{}, 0, len(top))
	for _, g := range top {
		groups = append(groups, map[string]interface{}{
			"group": g.Group,
			"mean":  g.Mean,
			"count": g.Count,
		})
	}
	return finding, map[string]interface{}{"groups": groups}, nil
}

// rankedRow pairs a display label with the metric value for top/bottom output.
type rankedRow struct {
	Display string
	Value   float64
}

func (t *Tester) testTopBottom(tbl *dataset.Table, column string) (string, map[string]interface{}, error) {
	metricCol, err := numericColumn(tbl, column)
	if err != nil {
		return "", nil, err
	}

	displayCol := pickDisplayColumn(tbl)
	if displayCol == nil {
		return "", nil, fmt.Errorf("table has no columns")
	}

	indices := []int{}
	for i := 0; i < metricCol.Len(); i++ {
		if !metricCol.Null[i] {
			indices = append(indices, i)
		}
	}

	rank := func(desc bool) []rankedRow {
		sorted := make([]int, len(indices))
		copy(sorted, indices)
		// Stable sort keeps row order for ties.
		sort.SliceStable(sorted, func(a, b int) bool {
			if desc {
				return metricCol.Floats[sorted[a]] > metricCol.Floats[sorted[b]]
			}
			return metricCol.Floats[sorted[a]] < metricCol.Floats[sorted[b]]
		})
		if len(sorted) > 5 {
			sorted = sorted[:5]
		}
		rows := make([]rankedRow, 0, len(sorted))
		for _, idx := range sorted {
			rows = append(rows, rankedRow{
				Display: displayCol.DisplayValue(idx),
				Value:   metricCol.Floats[idx],
			})
		}
		return rows
	}

	top5 := rank(true)
	bottom5 := rank(false)

	finding := formatTopBottomFinding(column, top5, bottom5)
	data := map[string]interface{}{
		"display_column": displayCol.Name,
		"top":            rankedRowsData(top5),
		"bottom":         rankedRowsData(bottom5),
	}
	return finding, data, nil
}

// pickDisplayColumn prefers the first column whose name contains "name" or
// "id" (case-insensitive), falling back to the first column.
func pickDisplayColumn(tbl *dataset.Table) *dataset.Column {
	cols := tbl.Columns()
	if len(cols) == 0 {
		return nil
	}
	for _, col := range cols {
		lower := strings.ToLower(col.Name)
		if strings.Contains(lower, "name") || strings.Contains(lower, "id") {
			return col
		}
	}
	return cols[0]
}

func rankedRowsData(rows []rankedRow) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]interface{}{"display": r.Display, "value": r.Value})
	}
	return out
}

func (t *Tester) testCorrelation(tbl *dataset.Table, columns []string) (string, map[string]interface{}, error) {
	if len(columns) != 2 {
		return "", nil, fmt.Errorf("correlation requires exactly 2 columns, got %d", len(columns))
	}
	col1, err := numericColumn(tbl, columns[0])
	if err != nil {
		return "", nil, err
	}
	col2, err := numericColumn(tbl, columns[1])
	if err != nil {
		return "", nil, err
	}

	// Pairwise-complete observations only.
	x := []float64{}
	y := []float64{}
	for i := 0; i < col1.Len(); i++ {
		if !col1.Null[i] && !col2.Null[i] {
			x = append(x, col1.Floats[i])
			y = append(y, col2.Floats[i])
		}
	}
	if len(x) < 2 {
		return "", nil, fmt.Errorf("not enough paired observations between %q and %q", columns[0], columns[1])
	}

	r := stat.Correlation(x, y, nil)
	finding := formatCorrelationFinding(columns[0], columns[1], r)
	return finding, map[string]interface{}{"correlation": r, "sample_size": len(x)}, nil
}

func (t *Tester) testMissingData(tbl *dataset.Table, columns []string) (string, map[string]interface{}, error) {
	totalRows := tbl.RowCount()
	if totalRows == 0 {
		return "", nil, fmt.Errorf("table has no rows")
	}

	missing := make([]missingCount, 0, len(columns))
	data := map[string]interface{}{}
	for _, name := range columns {
		col, ok := tbl.Column(name)
		if !ok {
			return "", nil, fmt.Errorf("column %q not found", name)
		}
		count := col.NullCount()
		missing = append(missing, missingCount{Column: name, Count: count})
		data[name] = count
	}

	finding := formatMissingDataFinding(missing, totalRows)
	return finding, data, nil
}

func (t *Tester) testCategoryDistribution(tbl *dataset.Table, column string) (string, map[string]interface{}, error) {
	col, ok := tbl.Column(column)
	if !ok {
		return "", nil, fmt.Errorf("column %q not found", column)
	}
	if col.Kind != dataset.KindCategorical {
		return "", nil, fmt.Errorf("column %q is not categorical", column)
	}

	counts := dataset.ValueCounts(col)
	if len(counts) == 0 {
		return "", nil, fmt.Errorf("column %q has no values", column)
	}

	finding := formatCategoryFinding(column, counts)

	top := counts
	if len(top) > 10 {
		top = top[:10]
	}
	data := map[string]interface{}{}
	for _, vc := range top {
		data[vc.Value] = vc.Count
	}
	return finding, data, nil
}
