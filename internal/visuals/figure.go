package visuals

import (
	"sync"
	"time"

	"datasight/domain/core"
)

// ChartType is the rendering primitive a figure asks the display layer for.
type ChartType string

const (
	ChartHistogram ChartType = "histogram"
	ChartBar       ChartType = "bar"
	ChartLine      ChartType = "line"
	ChartHeatmap   ChartType = "heatmap"
)

// Category groups visualizations for the report's fixed sections.
type Category string

const (
	CategoryDistribution Category = "distribution"
	CategoryCategorical  Category = "categorical"
	CategoryTrending     Category = "trending"
	CategoryCorrelation  Category = "correlation"
)

// Bin is one histogram bucket: [Low, High) except the last, which is closed.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// BarValue is one bar of a categorical frequency chart.
type BarValue struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimePoint is one observation of a trend line. Missing metric values are
// retained so the display layer can render gaps.
type TimePoint struct {
	T       time.Time `json:"t"`
	V       float64   `json:"v"`
	Missing bool      `json:"missing,omitempty"`
}

// Figure is a renderable chart handle. Ownership transfers to the caller for
// display; callers must Close it after use so the registry can bound open
// figures across batches.
type Figure struct {
	ID     core.FigureID `json:"id"`
	Type   ChartType     `json:"type"`
	Title  string        `json:"title"`
	XLabel string        `json:"x_label,omitempty"`
	YLabel string        `json:"y_label,omitempty"`

	Bins         []Bin       `json:"bins,omitempty"`
	Bars         []BarValue  `json:"bars,omitempty"`
	Points       []TimePoint `json:"points,omitempty"`
	Matrix       [][]float64 `json:"matrix,omitempty"`
	MatrixLabels []string    `json:"matrix_labels,omitempty"`

	registry *Registry
	closed   bool
}

// Close releases the figure's data series and removes it from its registry.
// Closing twice is a no-op.
func (f *Figure) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.Bins = nil
	f.Bars = nil
	f.Points = nil
	f.Matrix = nil
	f.MatrixLabels = nil
	if f.registry != nil {
		f.registry.forget(f.ID)
	}
}

// Closed reports whether the figure has been released.
func (f *Figure) Closed() bool {
	return f.closed
}

// Registry tracks every open figure in the process so a new generation batch
// can release all of them first, keeping memory bounded. This mirrors the
// display layer's "close everything before redrawing" discipline; because
// CloseAll is a process-wide side effect, only one analysis flow should run
// at a time.
type Registry struct {
	mu   sync.Mutex
	open map[core.FigureID]*Figure
}

// NewRegistry creates an empty figure registry.
func NewRegistry() *Registry {
	return &Registry{open: make(map[core.FigureID]*Figure)}
}

func (r *Registry) newFigure(chartType ChartType, title string) *Figure {
	fig := &Figure{
		ID:       core.FigureID(core.NewID()),
		Type:     chartType,
		Title:    title,
		registry: r,
	}
	r.mu.Lock()
	r.open[fig.ID] = fig
	r.mu.Unlock()
	return fig
}

func (r *Registry) forget(id core.FigureID) {
	r.mu.Lock()
	delete(r.open, id)
	r.mu.Unlock()
}

// OpenCount returns the number of figures not yet closed.
func (r *Registry) OpenCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}

// CloseAll releases every open figure, including ones handed to callers.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	figures := make([]*Figure, 0, len(r.open))
	for _, f := range r.open {
		figures = append(figures, f)
	}
	r.open = make(map[core.FigureID]*Figure)
	r.mu.Unlock()

	for _, f := range figures {
		f.registry = nil
		f.Close()
	}
}
