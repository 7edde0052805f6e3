package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Skewness computes sample skewness using the adjusted Fisher-Pearson
// coefficient. Fewer than 3 values or zero spread yields 0, never NaN.
func Skewness(data []float64) float64 {
	if len(data) < 3 {
		return 0
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	// Population std, not sample: the G1 correction below assumes
	// population moments.
	stdDev, err := stats.StandardDeviation(data)
	if err != nil || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}
