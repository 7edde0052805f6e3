// Package intent classifies free-text questions for insight-seeking intent.
// The gate decides whether a failed direct query falls back to the deep
// insight pipeline instead of a generic hint.
package intent

import "strings"

// insightKeywords is the fixed bilingual vocabulary of insight-seeking
// phrases. Matching is case-insensitive substring containment.
var insightKeywords = []string{
	// English
	"insight",
	"insights",
	"summary",
	"summarize",
	"overview",
	"describe",
	"tell me about",
	"analyze",
	"analysis",
	"what can you tell",
	"explore",
	// Chinese
	"分析",
	"洞察",
	"概述",
	"总结",
	"概览",
	"描述",
}

// IsInsightQuestion reports whether the question asks for general data
// insights rather than a specific computation.
func IsInsightQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, keyword := range insightKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
