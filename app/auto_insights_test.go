package app

import (
	"strings"
	"testing"

	"datasight/domain/dataset"
	"datasight/internal/testkit"
	"datasight/internal/visuals"
)

func newAutoService() *AutoInsightService {
	return NewAutoInsightService(visuals.NewGenerator(visuals.NewRegistry()))
}

func TestAutoBuild_SortsByScoreDescending(t *testing.T) {
	tbl := testkit.NewSalesTable(24)

	report, err := newAutoService().Build([]*dataset.Table{tbl}, []string{"sales"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(report.Visualizations) == 0 {
		t.Fatal("Expected visualizations")
	}
	for i := 1; i < len(report.Visualizations); i++ {
		if report.Visualizations[i-1].Score < report.Visualizations[i].Score {
			t.Errorf("Visualizations not sorted descending at %d: %f < %f",
				i, report.Visualizations[i-1].Score, report.Visualizations[i].Score)
		}
	}
}

func TestAutoBuild_AllCategoryKeysAlwaysPresent(t *testing.T) {
	// A table with only one categorical column produces only bar charts, but
	// every category key must still exist for stable rendering downstream.
	tbl := dataset.NewTable("cats")
	if err := tbl.AddCategorical("kind", []string{"a", "b", "a", "c"}, nil); err != nil {
		t.Fatal(err)
	}

	report, err := newAutoService().Build([]*dataset.Table{tbl}, []string{"cats"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, category := range []visuals.Category{
		visuals.CategoryTrending,
		visuals.CategoryCorrelation,
		visuals.CategoryDistribution,
		visuals.CategoryCategorical,
	} {
		if _, ok := report.ByCategory[category]; !ok {
			t.Errorf("Category key %q missing from report", category)
		}
	}
	if len(report.ByCategory[visuals.CategoryCategorical]) != 1 {
		t.Errorf("Expected 1 categorical chart, got %d", len(report.ByCategory[visuals.CategoryCategorical]))
	}
	if len(report.ByCategory[visuals.CategoryTrending]) != 0 {
		t.Errorf("Expected empty trending bucket, got %d", len(report.ByCategory[visuals.CategoryTrending]))
	}
}

func TestAutoBuild_SummariesAndText(t *testing.T) {
	tbl := testkit.NewSalesTableWithNulls(24)

	report, err := newAutoService().Build([]*dataset.Table{tbl}, []string{"sales"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(report.Summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(report.Summaries))
	}
	summary := report.Summaries[0]
	if summary.Rows != 24 || summary.Name != "sales" {
		t.Errorf("Unexpected summary header: %+v", summary)
	}
	if len(summary.MissingValues) != 1 || summary.MissingValues[0].Column != "revenue" {
		t.Errorf("Expected revenue as the only null-bearing column, got %+v", summary.MissingValues)
	}

	text := report.InsightsText
	for _, want := range []string{
		"# 📊 Auto-Generated Data Insights",
		"## sales",
		"**Shape**: 24 rows × 3 columns",
		"**⚠️ Missing Values Found:**",
		"**📋 Categorical Columns:**",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Report text missing %q", want)
		}
	}
}

func TestAutoBuild_NoDatasetsIsAnError(t *testing.T) {
	if _, err := newAutoService().Build(nil, nil); err == nil {
		t.Error("Expected an error for an empty batch")
	}
}

func TestDescribeColumn_Quartiles(t *testing.T) {
	tbl := dataset.NewTable("t")
	if err := tbl.AddNumeric("v", []float64{1, 2, 3, 4, 5, 6, 7, 8}, nil); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("v")

	desc, ok := describeColumn(col)
	if !ok {
		t.Fatal("Expected a describe row")
	}
	if desc.Count != 8 || desc.Min != 1 || desc.Max != 8 || desc.Mean != 4.5 {
		t.Errorf("Unexpected describe stats: %+v", desc)
	}
	if desc.Q25 >= desc.Median || desc.Median >= desc.Q75 {
		t.Errorf("Quartiles out of order: q25=%f median=%f q75=%f", desc.Q25, desc.Median, desc.Q75)
	}
}
