package app

import (
	"fmt"
	"log"
	"strings"

	"datasight/domain/dataset"
	"datasight/domain/insight"
	"datasight/internal/errors"
	"datasight/internal/hypothesis"
	"datasight/internal/profiling"
)

// DeepReport aggregates hypothesis results for a batch of datasets.
// Built once per invocation, never persisted by the core.
type DeepReport struct {
	InsightsText    string                     `json:"insights_text"`
	Results         []insight.HypothesisResult `json:"hypotheses_results"`
	HypothesisCount int                        `json:"hypothesis_count"`
	SuccessfulCount int                        `json:"successful_count"`
}

// DeepInsightService orchestrates structure analysis, hypothesis generation
// and hypothesis testing into a markdown report. Stateless: datasets arrive
// as explicit arguments on every call.
type DeepInsightService struct {
	analyzer  *profiling.Analyzer
	generator *hypothesis.Generator
	tester    *hypothesis.Tester
}

// NewDeepInsightService wires the deep insight pipeline.
func NewDeepInsightService(analyzer *profiling.Analyzer, generator *hypothesis.Generator, tester *hypothesis.Tester) *DeepInsightService {
	return &DeepInsightService{
		analyzer:  analyzer,
		generator: generator,
		tester:    tester,
	}
}

// Build runs the pipeline across all tables in input order. A dataset that
// yields zero hypotheses gets a note, not an error. A failure anywhere else
// is fatal to the whole report; callers fall back to auto insights.
func (s *DeepInsightService) Build(tables []*dataset.Table, names []string) (*DeepReport, error) {
	if len(tables) == 0 {
		return nil, errors.NoData("no datasets to analyze")
	}

	allResults := []insight.HypothesisResult{}
	var text strings.Builder
	text.WriteString("# Deep Data Insights\n\n")
	text.WriteString("_Generated by analyzing data structure and testing hypotheses_\n")

	for i, tbl := range tables {
		if tbl == nil {
			return nil, errors.InvalidInput(fmt.Sprintf("dataset %d is nil", i+1))
		}
		name := datasetName(names, i)
		fmt.Fprintf(&text, "\n## %s\n\n", name)

		profile := s.analyzer.Analyze(tbl)
		fmt.Fprintf(&text, "**Dataset**: %s rows × %d columns\n", groupDigits(profile.RowCount), profile.ColumnCount)

		hypotheses := s.generator.Generate(tbl, profile)
		if len(hypotheses) == 0 {
			text.WriteString("\n_Could not generate hypotheses for this dataset._\n")
			continue
		}

		fmt.Fprintf(&text, "\n### Testing %d Hypotheses\n", len(hypotheses))

		for _, hyp := range hypotheses {
			result := s.tester.Test(tbl, hyp)
			allResults = append(allResults, result)

			status := "❌"
			if result.Success {
				status = "✅"
			}
			fmt.Fprintf(&text, "\n#### %s Hypothesis %d: %s\n\n", status, hyp.ID, hyp.Title)
			fmt.Fprintf(&text, "_%s_\n", hyp.Description)
			if result.Finding != "" {
				fmt.Fprintf(&text, "\n%s\n", result.Finding)
			}
		}

		text.WriteString("\n---\n")
	}

	successful := 0
	for _, r := range allResults {
		if r.Success {
			successful++
		}
	}
	log.Printf("[DeepInsights] Tested %d hypotheses across %d datasets (%d successful)",
		len(allResults), len(tables), successful)

	return &DeepReport{
		InsightsText:    text.String(),
		Results:         allResults,
		HypothesisCount: len(allResults),
		SuccessfulCount: successful,
	}, nil
}

func datasetName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("Dataset %d", i+1)
}

// groupDigits renders n with thousands separators ("12,345").
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var out strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		out.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(s[i : i+3])
	}
	return out.String()
}
