package app

import (
	"context"
	"fmt"
	"log"

	"datasight/domain/dataset"
	"datasight/internal/errors"
	"datasight/internal/intent"
	"datasight/ports"
)

// noDataMessage answers any query arriving before data is loaded.
const noDataMessage = "No data loaded. Please upload Excel files first."

// hintMessage answers failed queries that are not insight-seeking.
const hintMessage = "I couldn't complete the analysis for that question. " +
	"Try asking more specific questions like:\n" +
	"- What is the average of [column]?\n" +
	"- Show me the top 10 rows by [column]\n" +
	"- Plot a histogram of [column]\n" +
	"- What are the unique values in [column]?"

// AnswerSource identifies which stage of the fallback chain produced an answer.
type AnswerSource string

const (
	SourceAgent AnswerSource = "agent"
	SourceDeep  AnswerSource = "deep_insights"
	SourceAuto  AnswerSource = "auto_insights"
	SourceHint  AnswerSource = "hint"
	SourceError AnswerSource = "error"
)

// Answer is the terminal result of the fallback chain. Every call path ends
// in either a populated report or an explicit error text; the user is never
// left without a response.
type Answer struct {
	Source   AnswerSource   `json:"source"`
	Response ports.Response `json:"response"`
	Deep     *DeepReport    `json:"deep_report,omitempty"`
	Auto     *AutoReport    `json:"auto_report,omitempty"`
}

// InsightService is the single fallback policy for answering questions:
// direct agent query, then deep insights when the question is
// insight-seeking, then auto insights, then an explicit error. The two
// ad hoc fallback layers of earlier designs live only here.
type InsightService struct {
	agent ports.QueryAgent
	deep  *DeepInsightService
	auto  *AutoInsightService
}

// NewInsightService wires the fallback policy. The agent may be nil when no
// natural-language backend is configured; queries then go straight to the
// fallback chain.
func NewInsightService(agent ports.QueryAgent, deep *DeepInsightService, auto *AutoInsightService) *InsightService {
	return &InsightService{agent: agent, deep: deep, auto: auto}
}

// Ask answers a free-text question about the loaded tables.
func (s *InsightService) Ask(ctx context.Context, question string, tables []*dataset.Table, names []string) Answer {
	if len(tables) == 0 {
		return Answer{
			Source:   SourceError,
			Response: ports.Response{Kind: ports.ResponseError, Text: noDataMessage},
		}
	}

	if s.agent != nil {
		resp, err := s.agent.Query(ctx, question)
		if err == nil && resp.Kind != ports.ResponseError {
			return Answer{Source: SourceAgent, Response: resp}
		}
		if err != nil {
			log.Printf("[Insights] Agent query failed: %v", err)
		}
	}

	if intent.IsInsightQuestion(question) {
		log.Printf("[Insights] Falling back to deep insights for insight question")
		return s.DeepInsights(tables, names)
	}

	return Answer{
		Source:   SourceHint,
		Response: ports.Response{Kind: ports.ResponseText, Text: hintMessage},
	}
}

// DeepInsights builds the deep insight report, degrading to auto insights on
// failure. Also the entry point for an explicit "deep insights" action.
func (s *InsightService) DeepInsights(tables []*dataset.Table, names []string) Answer {
	report, err := s.deep.Build(tables, names)
	if err != nil {
		log.Printf("[Insights] Deep insights failed, falling back to auto insights: %v", err)
		return s.AutoInsights(tables, names)
	}

	log.Printf("[Insights] Generated deep insights: %d/%d hypotheses successful",
		report.SuccessfulCount, report.HypothesisCount)
	return Answer{
		Source:   SourceDeep,
		Response: ports.Response{Kind: ports.ResponseText, Text: report.InsightsText},
		Deep:     report,
	}
}

// AutoInsights builds the auto insight report. This is the terminal
// fallback: its own failure surfaces as an explicit error answer.
func (s *InsightService) AutoInsights(tables []*dataset.Table, names []string) Answer {
	report, err := s.auto.Build(tables, names)
	if err != nil {
		log.Printf("[Insights] %v", errors.InsightFailure(err))
		return Answer{
			Source:   SourceError,
			Response: ports.Response{Kind: ports.ResponseError, Text: fmt.Sprintf("Failed to generate insights: %v", err)},
		}
	}

	return Answer{
		Source:   SourceAuto,
		Response: ports.Response{Kind: ports.ResponseText, Text: report.InsightsText},
		Auto:     report,
	}
}
