package profiling

import (
	"math"
	"testing"

	"datasight/domain/dataset"
	"datasight/internal/testkit"
)

func TestAnalyze_ClassifiesColumnRoles(t *testing.T) {
	tbl := testkit.NewSalesTable(24)
	profile := NewAnalyzer().Analyze(tbl)

	if profile.RowCount != 24 || profile.ColumnCount != 6 {
		t.Fatalf("Expected 24x6 profile, got %dx%d", profile.RowCount, profile.ColumnCount)
	}

	// order_id is distinct per row, so it must be an identifier.
	if len(profile.IDColumns) != 1 || profile.IDColumns[0] != "order_id" {
		t.Errorf("Expected id_cols [order_id], got %v", profile.IDColumns)
	}

	// Metrics are numeric minus identifiers, in declaration order.
	if len(profile.MetricColumns) != 2 || profile.MetricColumns[0] != "revenue" || profile.MetricColumns[1] != "units" {
		t.Errorf("Expected metric_cols [revenue units], got %v", profile.MetricColumns)
	}

	// region has 4 distinct values; product_name is distinct per row and
	// must not be a grouping column.
	if len(profile.GroupingColumns) != 1 || profile.GroupingColumns[0] != "region" {
		t.Errorf("Expected grouping_cols [region], got %v", profile.GroupingColumns)
	}

	if len(profile.Datetime) != 1 || profile.Datetime[0] != "order_date" {
		t.Errorf("Expected datetime_cols [order_date], got %v", profile.Datetime)
	}
}

func TestAnalyze_EmptyTableHasNoIDColumns(t *testing.T) {
	profile := NewAnalyzer().Analyze(testkit.NewEmptyTable())

	if profile.RowCount != 0 {
		t.Fatalf("Expected 0 rows, got %d", profile.RowCount)
	}
	if len(profile.IDColumns) != 0 {
		t.Errorf("No column can exceed the id threshold on an empty table, got %v", profile.IDColumns)
	}
	// With no identifiers, every numeric column stays a metric.
	if len(profile.MetricColumns) != len(profile.Numeric) {
		t.Errorf("Expected metric_cols == numeric_cols, got %v vs %v", profile.MetricColumns, profile.Numeric)
	}
	if profile.IDColumns == nil || profile.GroupingColumns == nil || profile.MetricColumns == nil {
		t.Error("Role sets must be empty, never nil")
	}
}

func TestAnalyze_GroupingBounds(t *testing.T) {
	tbl := dataset.NewTable("bounds")

	constant := make([]string, 30)
	wide := make([]string, 30)
	usable := make([]string, 30)
	for i := range constant {
		constant[i] = "same"
		wide[i] = string(rune('a' + i%25))
		usable[i] = string(rune('a' + i%2))
	}
	if err := tbl.AddCategorical("constant", constant, nil); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddCategorical("wide", wide, nil); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddCategorical("usable", usable, nil); err != nil {
		t.Fatal(err)
	}

	profile := NewAnalyzer().Analyze(tbl)

	// 1 distinct value is constant, 25 exceeds the cap; only 2..20 qualify.
	if len(profile.GroupingColumns) != 1 || profile.GroupingColumns[0] != "usable" {
		t.Errorf("Expected grouping_cols [usable], got %v", profile.GroupingColumns)
	}
}

func TestSkewness_SymmetricDataIsZero(t *testing.T) {
	skew := Skewness([]float64{1, 2, 3, 4, 5})
	if math.Abs(skew) > 1e-9 {
		t.Errorf("Symmetric data should have ~0 skewness, got %f", skew)
	}
}

func TestSkewness_GuardsSmallAndConstantInput(t *testing.T) {
	if skew := Skewness([]float64{1, 2}); skew != 0 {
		t.Errorf("Fewer than 3 values should yield 0, got %f", skew)
	}
	if skew := Skewness([]float64{5, 5, 5, 5}); skew != 0 {
		t.Errorf("Constant data should yield 0, not NaN, got %f", skew)
	}
}

func TestSkewness_MatchesAdjustedFisherPearson(t *testing.T) {
	// Pinned against pandas Series([1,1,1,2,3]).skew() = 1.2578...;
	// classification hinges on this landing above 1.
	skew := Skewness([]float64{1, 1, 1, 2, 3})
	if math.Abs(skew-1.2578) > 1e-3 {
		t.Errorf("Expected skewness ~1.2578, got %.4f", skew)
	}
	if skew <= 1 {
		t.Errorf("Skewness %.4f must classify as right-skewed", skew)
	}
}

func TestSkewness_RightTailIsPositive(t *testing.T) {
	skew := Skewness([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100})
	if skew <= 1 {
		t.Errorf("Heavy right tail should give skewness > 1, got %f", skew)
	}
}
