package visuals

import (
	"math"
	"time"

	"datasight/domain/dataset"
	"datasight/internal/profiling"

	"gonum.org/v1/gonum/stat"
)

// epsilon avoids divide-by-zero on zero-variance columns: a constant column
// scores 0/(0+epsilon) + 0 = 0, never NaN.
const epsilon = 1e-10

func (g *Generator) histogramScore(values []float64) float64 {
	variance := 0.0
	stdDev := 0.0
	if len(values) > 1 {
		variance = stat.Variance(values, nil)
		stdDev = math.Sqrt(variance)
	}
	skewness := 0.0
	if len(values) > 0 {
		skewness = profiling.Skewness(values)
	}
	return variance/(stdDev+epsilon) + math.Abs(skewness)*g.config.SkewWeight
}

// barScore rewards even category spreads: Shannon entropy of the top-value
// frequency distribution plus a bonus inversely scaled by imbalance.
func (g *Generator) barScore(counts []dataset.ValueCount) float64 {
	total := 0
	maxCount := 0
	for _, vc := range counts {
		total += vc.Count
		if vc.Count > maxCount {
			maxCount = vc.Count
		}
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, vc := range counts {
		p := float64(vc.Count) / float64(total)
		entropy += -p * math.Log2(p+epsilon)
	}
	imbalance := float64(maxCount) / float64(total)
	return entropy + (1-imbalance)*g.config.BalanceWeight
}

// trendScore regresses the metric against seconds-since-earliest and scales
// |r|. Missing metric values count as 0. Any degenerate regression falls
// back to the default trend score.
func (g *Generator) trendScore(times []time.Time, timeNull []bool, indices []int, col *dataset.Column) float64 {
	if len(indices) < 2 {
		return g.config.DefaultTrendScore
	}

	earliest := times[indices[0]]
	x := make([]float64, 0, len(indices))
	y := make([]float64, 0, len(indices))
	for _, idx := range indices {
		x = append(x, times[idx].Sub(earliest).Seconds())
		if col.Null[idx] {
			y = append(y, 0)
		} else {
			y = append(y, col.Floats[idx])
		}
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return g.config.DefaultTrendScore
	}
	return math.Abs(r) * g.config.TrendWeight
}

// correlationMatrix computes the pairwise-complete Pearson matrix over the
// given numeric columns. Degenerate pairs (no spread, <2 shared rows)
// contribute 0 rather than NaN.
func correlationMatrix(cols []*dataset.Column) ([][]float64, []string) {
	n := len(cols)
	labels := make([]string, n)
	for i, c := range cols {
		labels[i] = c.Name
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwiseCorrelation(cols[i], cols[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return matrix, labels
}

func pairwiseCorrelation(a, b *dataset.Column) float64 {
	x := []float64{}
	y := []float64{}
	for i := 0; i < a.Len(); i++ {
		if !a.Null[i] && !b.Null[i] {
			x = append(x, a.Floats[i])
			y = append(y, b.Floats[i])
		}
	}
	if len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func (g *Generator) heatmapScore(matrix [][]float64) float64 {
	maxCorr := 0.0
	sum := 0.0
	count := 0
	for i := range matrix {
		for j := i + 1; j < len(matrix); j++ {
			v := math.Abs(matrix[i][j])
			if v > maxCorr {
				maxCorr = v
			}
			sum += v
			count++
		}
	}
	avgCorr := 0.0
	if count > 0 {
		avgCorr = sum / float64(count)
	}
	return maxCorr*g.config.MaxCorrWeight + avgCorr*g.config.MeanCorrWeight
}

// binValues buckets values into count equal-width bins. A zero-width range
// collapses into a single bin holding everything.
func binValues(values []float64, count int) []Bin {
	min := values[0]
	max := values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []Bin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(count)
	bins := make([]Bin, count)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}
	bins[count-1].High = max

	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= count {
			idx = count - 1
		}
		bins[idx].Count++
	}
	return bins
}
