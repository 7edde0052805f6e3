package hypothesis

import (
	"fmt"
	"math"
	"strings"

	"datasight/domain/dataset"
)

func formatDistributionFinding(column string, min, max, mean, median, skewness float64) string {
	skewDesc := "normally distributed"
	if skewness > 1 {
		skewDesc = "right-skewed (tail towards higher values)"
	} else if skewness < -1 {
		skewDesc = "left-skewed (tail towards lower values)"
	}

	return fmt.Sprintf(
		"**%s** ranges from %.2f to %.2f with mean %.2f and median %.2f. The distribution is %s.",
		column, min, max, mean, median, skewDesc,
	)
}

func formatGroupComparisonFinding(groupColumn, metricColumn string, grouped []groupStat) string {
	top := grouped[0]
	bottom := grouped[len(grouped)-1]

	diffPct := 0.0
	if bottom.Mean != 0 {
		diffPct = (top.Mean - bottom.Mean) / bottom.Mean * 100
	}

	return fmt.Sprintf(
		"**%s** shows significant variation in %s. '%s' has the highest average (%.2f), while '%s' has the lowest (%.2f). Difference: %.1f%%.",
		groupColumn, metricColumn, top.Group, top.Mean, bottom.Group, bottom.Mean, diffPct,
	)
}

func formatTopBottomFinding(column string, top5, bottom5 []rankedRow) string {
	render := func(rows []rankedRow) string {
		items := make([]string, 0, 3)
		for i, r := range rows {
			if i == 3 {
				break
			}
			items = append(items, fmt.Sprintf("%s (%.2f)", r.Display, r.Value))
		}
		return strings.Join(items, ", ")
	}

	return fmt.Sprintf(
		"**Top 5 by %s**: %s...\n**Bottom 5 by %s**: %s...",
		column, render(top5), column, render(bottom5),
	)
}

func formatCorrelationFinding(col1, col2 string, r float64) string {
	strength := "no"
	switch {
	case math.Abs(r) > 0.7:
		strength = "strong"
	case math.Abs(r) > 0.4:
		strength = "moderate"
	case math.Abs(r) > 0.2:
		strength = "weak"
	}

	direction := "negative"
	if r > 0 {
		direction = "positive"
	}

	return fmt.Sprintf(
		"There is a **%s %s correlation** (r=%.3f) between %s and %s.",
		strength, direction, r, col1, col2,
	)
}

type missingCount struct {
	Column string
	Count  int
}

func formatMissingDataFinding(missing []missingCount, totalRows int) string {
	lines := make([]string, 0, len(missing))
	for _, m := range missing {
		pct := float64(m.Count) / float64(totalRows) * 100
		lines = append(lines, fmt.Sprintf("- **%s**: %d missing (%.1f%%)", m.Column, m.Count, pct))
	}
	return "Missing data found:\n" + strings.Join(lines, "\n")
}

func formatCategoryFinding(column string, counts []dataset.ValueCount) string {
	total := 0
	for _, vc := range counts {
		total += vc.Count
	}
	topPct := float64(counts[0].Count) / float64(total) * 100

	shown := counts
	if len(shown) > 5 {
		shown = shown[:5]
	}
	pairs := make([]string, 0, len(shown))
	for _, vc := range shown {
		pairs = append(pairs, fmt.Sprintf("'%s': %d", vc.Value, vc.Count))
	}

	return fmt.Sprintf(
		"**%s** has %d unique categories. Most common: '%s' (%.1f%% of total). Distribution: {%s}",
		column, len(counts), counts[0].Value, topPct, strings.Join(pairs, ", "),
	)
}
