package visuals

import (
	"testing"

	"datasight/domain/dataset"
	"datasight/internal/testkit"
)

func TestGenerate_CoversAllChartTypes(t *testing.T) {
	tbl := testkit.NewSalesTable(24)
	gen := NewGenerator(NewRegistry())

	visualizations := gen.Generate([]*dataset.Table{tbl}, []string{"sales"})

	counts := map[ChartType]int{}
	for _, v := range visualizations {
		counts[v.Type]++
	}
	// 3 numeric columns -> 3 histograms; region is the only bar candidate
	// (product_name has 24 distinct values, over the 20 cap); 2 trend lines;
	// 1 heatmap.
	if counts[ChartHistogram] != 3 {
		t.Errorf("Expected 3 histograms, got %d", counts[ChartHistogram])
	}
	if counts[ChartBar] != 1 {
		t.Errorf("Expected 1 bar chart, got %d", counts[ChartBar])
	}
	if counts[ChartLine] != 2 {
		t.Errorf("Expected 2 trend lines, got %d", counts[ChartLine])
	}
	if counts[ChartHeatmap] != 1 {
		t.Errorf("Expected 1 heatmap, got %d", counts[ChartHeatmap])
	}

	for _, v := range visualizations {
		if v.Figure == nil {
			t.Errorf("%s %q: missing figure handle", v.Type, v.Title)
		}
		if v.Score < 0 {
			t.Errorf("%s %q: negative score %f", v.Type, v.Title, v.Score)
		}
	}
}

func TestGenerate_IsDeterministic(t *testing.T) {
	tbl := testkit.NewSalesTable(24)
	gen := NewGenerator(NewRegistry())

	first := gen.Generate([]*dataset.Table{tbl}, []string{"sales"})
	second := gen.Generate([]*dataset.Table{tbl}, []string{"sales"})

	if len(first) != len(second) {
		t.Fatalf("Run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Column != second[i].Column ||
			first[i].Category != second[i].Category {
			t.Errorf("Visualization %d identity differs between runs", i)
		}
		if first[i].Score != second[i].Score {
			t.Errorf("Visualization %d score differs: %f vs %f", i, first[i].Score, second[i].Score)
		}
	}
}

func TestHistogramScore_ZeroVarianceIsExactlyZero(t *testing.T) {
	gen := NewGenerator(NewRegistry())

	score := gen.histogramScore([]float64{5, 5, 5, 5, 5})

	if score != 0.0 {
		t.Errorf("A constant column must score exactly 0.0, got %g", score)
	}
}

func TestBarChart_SkipsHighCardinalityColumns(t *testing.T) {
	tbl := dataset.NewTable("wide")
	values := make([]string, 25)
	for i := range values {
		values[i] = string(rune('a' + i))
	}
	if err := tbl.AddCategorical("code", values, nil); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(NewRegistry())
	visualizations := gen.Generate([]*dataset.Table{tbl}, []string{"wide"})

	if len(visualizations) != 0 {
		t.Errorf("25 distinct values exceed the bar cardinality cap, got %d charts", len(visualizations))
	}
}

func TestGenerate_ClosesPreviousBatch(t *testing.T) {
	tbl := testkit.NewSalesTable(24)
	registry := NewRegistry()
	gen := NewGenerator(registry)

	first := gen.Generate([]*dataset.Table{tbl}, []string{"sales"})
	before := registry.OpenCount()
	if before != len(first) {
		t.Fatalf("Expected %d open figures after first batch, got %d", len(first), before)
	}

	second := gen.Generate([]*dataset.Table{tbl}, []string{"sales"})

	if registry.OpenCount() != len(second) {
		t.Errorf("Expected only the new batch open, got %d figures", registry.OpenCount())
	}
	for _, v := range first {
		if !v.Figure.Closed() {
			t.Errorf("Figure %q from the first batch should be closed", v.Figure.Title)
		}
	}
}

func TestRegistry_CloseReleasesFigure(t *testing.T) {
	registry := NewRegistry()
	fig := registry.newFigure(ChartHistogram, "test")

	if registry.OpenCount() != 1 {
		t.Fatalf("Expected 1 open figure, got %d", registry.OpenCount())
	}

	fig.Close()

	if registry.OpenCount() != 0 {
		t.Errorf("Expected 0 open figures after close, got %d", registry.OpenCount())
	}
	if !fig.Closed() {
		t.Error("Figure should report closed")
	}
}

func TestGenerate_FallsBackToNumberedDatasetName(t *testing.T) {
	tbl := testkit.NewSalesTable(24)
	gen := NewGenerator(NewRegistry())

	visualizations := gen.Generate([]*dataset.Table{tbl}, nil)

	if len(visualizations) == 0 {
		t.Fatal("Expected visualizations")
	}
	want := "Dataset 1 - Distribution of order_id"
	if visualizations[0].Title != want {
		t.Errorf("Expected title %q, got %q", want, visualizations[0].Title)
	}
}

func TestBinValues_EqualWidthAndCollapsedRange(t *testing.T) {
	bins := binValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5)
	if len(bins) != 5 {
		t.Fatalf("Expected 5 bins, got %d", len(bins))
	}
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != 10 {
		t.Errorf("Bins must account for every value, counted %d", total)
	}
	if bins[4].High != 9 {
		t.Errorf("Last bin must end at the max, got %f", bins[4].High)
	}

	single := binValues([]float64{7, 7, 7}, 30)
	if len(single) != 1 || single[0].Count != 3 {
		t.Errorf("Zero-width range should collapse to one bin, got %+v", single)
	}
}
