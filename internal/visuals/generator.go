package visuals

import (
	"fmt"
	"log"
	"sort"
	"time"

	"datasight/domain/dataset"
)

// Visualization is one scored chart artifact. The Figure handle belongs to
// the caller once returned and must be closed after display.
type Visualization struct {
	Type     ChartType `json:"type"`
	Title    string    `json:"title"`
	Figure   *Figure   `json:"figure"`
	Column   string    `json:"column,omitempty"`
	Category Category  `json:"category"`
	Score    float64   `json:"score"`
}

// Config holds the tunable chart caps and interestingness score weights.
// Treat these as policy, not magic numbers: changing a weight reorders
// every report.
type Config struct {
	HistogramBins       int
	MaxHistogramColumns int
	MaxBarColumns       int
	MaxBarCategories    int
	TopValueCount       int
	MaxTrendColumns     int
	MaxHeatmapColumns   int

	SkewWeight        float64
	BalanceWeight     float64
	TrendWeight       float64
	DefaultTrendScore float64
	MaxCorrWeight     float64
	MeanCorrWeight    float64
}

// DefaultConfig returns the default caps and weights.
func DefaultConfig() Config {
	return Config{
		HistogramBins:       30,
		MaxHistogramColumns: 6,
		MaxBarColumns:       3,
		MaxBarCategories:    20,
		TopValueCount:       10,
		MaxTrendColumns:     2,
		MaxHeatmapColumns:   10,
		SkewWeight:          10,
		BalanceWeight:       5,
		TrendWeight:         30,
		DefaultTrendScore:   10.0,
		MaxCorrWeight:       50,
		MeanCorrWeight:      20,
	}
}

// Generator produces scored chart specs per dataset. Deterministic: the same
// tables yield the same (type, category, column) set with the same scores.
type Generator struct {
	config   Config
	registry *Registry
}

// NewGenerator creates a visualization generator with default config.
func NewGenerator(registry *Registry) *Generator {
	return NewGeneratorWithConfig(registry, DefaultConfig())
}

// NewGeneratorWithConfig creates a visualization generator with custom caps
// and weights.
func NewGeneratorWithConfig(registry *Registry, config Config) *Generator {
	return &Generator{config: config, registry: registry}
}

// Registry returns the figure registry the generator allocates from.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate builds distribution, categorical, trending and correlation charts
// for each table, in that order, each gated on applicable columns. All
// previously open figures are released first so repeated batches stay
// memory-bounded.
func (g *Generator) Generate(tables []*dataset.Table, names []string) []Visualization {
	g.registry.CloseAll()

	visualizations := []Visualization{}
	for i, tbl := range tables {
		name := displayName(names, i)

		numericCols := []*dataset.Column{}
		categoricalCols := []*dataset.Column{}
		for _, col := range tbl.Columns() {
			switch col.Kind {
			case dataset.KindNumeric:
				numericCols = append(numericCols, col)
			case dataset.KindCategorical:
				categoricalCols = append(categoricalCols, col)
			}
		}

		visualizations = append(visualizations, g.histograms(name, numericCols)...)
		visualizations = append(visualizations, g.barCharts(name, categoricalCols)...)
		visualizations = append(visualizations, g.trendLines(name, tbl, numericCols)...)
		if heatmap, ok := g.heatmap(name, numericCols); ok {
			visualizations = append(visualizations, heatmap)
		}
	}

	log.Printf("[Visuals] Generated %d visualizations across %d datasets", len(visualizations), len(tables))
	return visualizations
}

func displayName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("Dataset %d", i+1)
}

func (g *Generator) histograms(name string, numericCols []*dataset.Column) []Visualization {
	out := []Visualization{}
	for i, col := range numericCols {
		if i == g.config.MaxHistogramColumns {
			break
		}
		values := col.NonNullFloats()
		if len(values) == 0 {
			continue
		}

		fig := g.registry.newFigure(ChartHistogram, fmt.Sprintf("Distribution of %s", col.Name))
		fig.XLabel = col.Name
		fig.YLabel = "Frequency"
		fig.Bins = binValues(values, g.config.HistogramBins)

		out = append(out, Visualization{
			Type:     ChartHistogram,
			Title:    fmt.Sprintf("%s - Distribution of %s", name, col.Name),
			Figure:   fig,
			Column:   col.Name,
			Category: CategoryDistribution,
			Score:    g.histogramScore(values),
		})
	}
	return out
}

func (g *Generator) barCharts(name string, categoricalCols []*dataset.Column) []Visualization {
	out := []Visualization{}
	for i, col := range categoricalCols {
		if i == g.config.MaxBarColumns {
			break
		}
		if col.DistinctCount() > g.config.MaxBarCategories {
			continue
		}
		counts := dataset.ValueCounts(col)
		if len(counts) == 0 {
			continue
		}
		if len(counts) > g.config.TopValueCount {
			counts = counts[:g.config.TopValueCount]
		}

		fig := g.registry.newFigure(ChartBar, fmt.Sprintf("Top %d Values in %s", g.config.TopValueCount, col.Name))
		fig.XLabel = col.Name
		fig.YLabel = "Count"
		fig.Bars = make([]BarValue, 0, len(counts))
		for _, vc := range counts {
			fig.Bars = append(fig.Bars, BarValue{Label: vc.Value, Count: vc.Count})
		}

		out = append(out, Visualization{
			Type:     ChartBar,
			Title:    fmt.Sprintf("%s - Top Values in %s", name, col.Name),
			Figure:   fig,
			Column:   col.Name,
			Category: CategoryCategorical,
			Score:    g.barScore(counts),
		})
	}
	return out
}

func (g *Generator) trendLines(name string, tbl *dataset.Table, numericCols []*dataset.Column) []Visualization {
	if len(numericCols) == 0 {
		return nil
	}

	// First datetime column wins; failing that, the first string column
	// whose every value parses as a date.
	var dateCol *dataset.Column
	var times []time.Time
	var timeNull []bool
	for _, col := range tbl.Columns() {
		if col.Kind != dataset.KindDatetime {
			continue
		}
		if ts, null, ok := col.CoerceTimes(); ok {
			dateCol, times, timeNull = col, ts, null
			break
		}
	}
	if dateCol == nil {
		for _, col := range tbl.Columns() {
			if col.Kind != dataset.KindCategorical {
				continue
			}
			if ts, null, ok := col.CoerceTimes(); ok {
				dateCol, times, timeNull = col, ts, null
				break
			}
		}
	}
	if dateCol == nil {
		return nil
	}

	// Row indices with a usable date, ascending by date (stable for ties).
	indices := []int{}
	for i := range times {
		if !timeNull[i] {
			indices = append(indices, i)
		}
	}
	sort.SliceStable(indices, func(a, b int) bool { return times[indices[a]].Before(times[indices[b]]) })

	out := []Visualization{}
	for i, col := range numericCols {
		if i == g.config.MaxTrendColumns {
			break
		}

		fig := g.registry.newFigure(ChartLine, fmt.Sprintf("Trend of %s over %s", col.Name, dateCol.Name))
		fig.XLabel = dateCol.Name
		fig.YLabel = col.Name
		fig.Points = make([]TimePoint, 0, len(indices))
		for _, idx := range indices {
			fig.Points = append(fig.Points, TimePoint{
				T:       times[idx],
				V:       col.Floats[idx],
				Missing: col.Null[idx],
			})
		}

		out = append(out, Visualization{
			Type:     ChartLine,
			Title:    fmt.Sprintf("%s - Trend of %s", name, col.Name),
			Figure:   fig,
			Column:   col.Name,
			Category: CategoryTrending,
			Score:    g.trendScore(times, timeNull, indices, col),
		})
	}
	return out
}

func (g *Generator) heatmap(name string, numericCols []*dataset.Column) (Visualization, bool) {
	if len(numericCols) < 2 {
		return Visualization{}, false
	}
	cols := numericCols
	if len(cols) > g.config.MaxHeatmapColumns {
		cols = cols[:g.config.MaxHeatmapColumns]
	}

	matrix, labels := correlationMatrix(cols)

	fig := g.registry.newFigure(ChartHeatmap, "Correlation Matrix")
	fig.Matrix = matrix
	fig.MatrixLabels = labels

	return Visualization{
		Type:     ChartHeatmap,
		Title:    fmt.Sprintf("%s - Correlation Matrix", name),
		Figure:   fig,
		Category: CategoryCorrelation,
		Score:    g.heatmapScore(matrix),
	}, true
}
