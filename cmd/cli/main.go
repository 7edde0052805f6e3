// Command cli runs the insight pipelines against local files and prints the
// report markdown, the explicit "generate insights" action without a server.
package main

import (
	"fmt"
	"log"
	"os"

	"datasight/adapters/excel"
	"datasight/app"
	"datasight/domain/dataset"
	"datasight/internal/config"
	"datasight/internal/hypothesis"
	"datasight/internal/profiling"
	"datasight/internal/visuals"

	"github.com/joho/godotenv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [-auto] file.csv [file.xlsx ...]\n", os.Args[0])
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	args := os.Args[1:]
	autoOnly := false
	if args[0] == "-auto" {
		autoOnly = true
		args = args[1:]
	}

	tables := []*dataset.Table{}
	names := []string{}
	for _, path := range args {
		tbl, err := excel.NewDataReader(path).ReadTable()
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}
		tables = append(tables, tbl)
		names = append(names, tbl.Name)
	}

	analyzer := profiling.NewAnalyzerWithThresholds(cfg.Insight.Thresholds())
	deep := app.NewDeepInsightService(analyzer, hypothesis.NewGeneratorWithCap(cfg.Insight.MaxHypotheses), hypothesis.NewTester())
	visualGen := visuals.NewGeneratorWithConfig(visuals.NewRegistry(), cfg.Insight.VisualsConfig())
	auto := app.NewAutoInsightService(visualGen)
	insights := app.NewInsightService(nil, deep, auto)

	var answer app.Answer
	if autoOnly {
		answer = insights.AutoInsights(tables, names)
	} else {
		answer = insights.DeepInsights(tables, names)
	}

	fmt.Println(answer.Response.Text)

	if answer.Auto != nil {
		fmt.Printf("\nVisualizations (%d, by score):\n", len(answer.Auto.Visualizations))
		for _, viz := range answer.Auto.Visualizations {
			fmt.Printf("  [%6.2f] %-12s %s\n", viz.Score, viz.Category, viz.Title)
			viz.Figure.Close()
		}
	}
}
