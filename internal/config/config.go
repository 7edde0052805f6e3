package config

import (
	"os"
	"strconv"

	"datasight/internal/errors"
	"datasight/internal/profiling"
	"datasight/internal/visuals"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Insight  InsightConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds report ledger settings. URL is optional: without it
// the server runs with persistence disabled.
type DatabaseConfig struct {
	URL string
}

// InsightConfig exposes the heuristic analysis constants as tunable policy.
// Changing a default changes which columns become identifiers, how many
// hypotheses run, and every interestingness score; tune deliberately.
type InsightConfig struct {
	IDCardinalityRatio float64
	GroupingMin        int
	GroupingMax        int
	MaxHypotheses      int

	HistogramBins       int
	MaxHistogramColumns int
	MaxBarColumns       int
	MaxBarCategories    int
	MaxTrendColumns     int
	MaxHeatmapColumns   int
	SkewWeight          float64
	BalanceWeight       float64
	TrendWeight         float64
	DefaultTrendScore   float64
	MaxCorrWeight       float64
	MeanCorrWeight      float64
}

// DefaultInsightConfig returns the default heuristics.
func DefaultInsightConfig() InsightConfig {
	thresholds := profiling.DefaultThresholds()
	viz := visuals.DefaultConfig()
	return InsightConfig{
		IDCardinalityRatio:  thresholds.IDCardinalityRatio,
		GroupingMin:         thresholds.GroupingMin,
		GroupingMax:         thresholds.GroupingMax,
		MaxHypotheses:       5,
		HistogramBins:       viz.HistogramBins,
		MaxHistogramColumns: viz.MaxHistogramColumns,
		MaxBarColumns:       viz.MaxBarColumns,
		MaxBarCategories:    viz.MaxBarCategories,
		MaxTrendColumns:     viz.MaxTrendColumns,
		MaxHeatmapColumns:   viz.MaxHeatmapColumns,
		SkewWeight:          viz.SkewWeight,
		BalanceWeight:       viz.BalanceWeight,
		TrendWeight:         viz.TrendWeight,
		DefaultTrendScore:   viz.DefaultTrendScore,
		MaxCorrWeight:       viz.MaxCorrWeight,
		MeanCorrWeight:      viz.MeanCorrWeight,
	}
}

// Thresholds converts the insight config into structure-analyzer cutoffs.
func (c InsightConfig) Thresholds() profiling.Thresholds {
	return profiling.Thresholds{
		IDCardinalityRatio: c.IDCardinalityRatio,
		GroupingMin:        c.GroupingMin,
		GroupingMax:        c.GroupingMax,
	}
}

// VisualsConfig converts the insight config into visualization settings.
func (c InsightConfig) VisualsConfig() visuals.Config {
	base := visuals.DefaultConfig()
	base.HistogramBins = c.HistogramBins
	base.MaxHistogramColumns = c.MaxHistogramColumns
	base.MaxBarColumns = c.MaxBarColumns
	base.MaxBarCategories = c.MaxBarCategories
	base.MaxTrendColumns = c.MaxTrendColumns
	base.MaxHeatmapColumns = c.MaxHeatmapColumns
	base.SkewWeight = c.SkewWeight
	base.BalanceWeight = c.BalanceWeight
	base.TrendWeight = c.TrendWeight
	base.DefaultTrendScore = c.DefaultTrendScore
	base.MaxCorrWeight = c.MaxCorrWeight
	base.MeanCorrWeight = c.MeanCorrWeight
	return base
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Insight: loadInsightConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadInsightConfig() InsightConfig {
	c := DefaultInsightConfig()
	c.IDCardinalityRatio = getEnvFloatOrDefault("INSIGHT_ID_CARDINALITY_RATIO", c.IDCardinalityRatio)
	c.GroupingMin = getEnvIntOrDefault("INSIGHT_GROUPING_MIN", c.GroupingMin)
	c.GroupingMax = getEnvIntOrDefault("INSIGHT_GROUPING_MAX", c.GroupingMax)
	c.MaxHypotheses = getEnvIntOrDefault("INSIGHT_MAX_HYPOTHESES", c.MaxHypotheses)
	c.HistogramBins = getEnvIntOrDefault("INSIGHT_HISTOGRAM_BINS", c.HistogramBins)
	c.MaxHistogramColumns = getEnvIntOrDefault("INSIGHT_MAX_HISTOGRAM_COLUMNS", c.MaxHistogramColumns)
	c.MaxBarColumns = getEnvIntOrDefault("INSIGHT_MAX_BAR_COLUMNS", c.MaxBarColumns)
	c.MaxBarCategories = getEnvIntOrDefault("INSIGHT_MAX_BAR_CATEGORIES", c.MaxBarCategories)
	c.MaxTrendColumns = getEnvIntOrDefault("INSIGHT_MAX_TREND_COLUMNS", c.MaxTrendColumns)
	c.MaxHeatmapColumns = getEnvIntOrDefault("INSIGHT_MAX_HEATMAP_COLUMNS", c.MaxHeatmapColumns)
	c.SkewWeight = getEnvFloatOrDefault("INSIGHT_SKEW_WEIGHT", c.SkewWeight)
	c.BalanceWeight = getEnvFloatOrDefault("INSIGHT_BALANCE_WEIGHT", c.BalanceWeight)
	c.TrendWeight = getEnvFloatOrDefault("INSIGHT_TREND_WEIGHT", c.TrendWeight)
	c.DefaultTrendScore = getEnvFloatOrDefault("INSIGHT_DEFAULT_TREND_SCORE", c.DefaultTrendScore)
	c.MaxCorrWeight = getEnvFloatOrDefault("INSIGHT_MAX_CORR_WEIGHT", c.MaxCorrWeight)
	c.MeanCorrWeight = getEnvFloatOrDefault("INSIGHT_MEAN_CORR_WEIGHT", c.MeanCorrWeight)
	return c
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Insight.IDCardinalityRatio <= 0 || config.Insight.IDCardinalityRatio > 1 {
		return errors.ConfigInvalid("INSIGHT_ID_CARDINALITY_RATIO must be in (0, 1]")
	}
	if config.Insight.GroupingMin < 1 || config.Insight.GroupingMax < config.Insight.GroupingMin {
		return errors.ConfigInvalid("grouping bounds must satisfy 1 <= min <= max")
	}
	if config.Insight.MaxHypotheses < 1 {
		return errors.ConfigInvalid("INSIGHT_MAX_HYPOTHESES must be at least 1")
	}
	if config.Insight.HistogramBins < 1 {
		return errors.ConfigInvalid("INSIGHT_HISTOGRAM_BINS must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
