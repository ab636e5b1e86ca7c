package analysis

import (
	"strings"

	"speech-insights-go/internal/types"
)

// SentimentSummary tallies sentiment spans for one channel.
type SentimentSummary struct {
	Overall       string `json:"overall"`
	PositiveCount int    `json:"positive_count"`
	NegativeCount int    `json:"negative_count"`
	NeutralCount  int    `json:"neutral_count"`
	TotalSegments int    `json:"total_segments,omitempty"`
}

// sentimentOrder breaks count ties deterministically.
var sentimentOrder = []string{"POSITIVE", "NEGATIVE", "NEUTRAL"}

// SummarizeSentiments counts spans per label and picks the majority label as
// the overall sentiment. Empty input summarizes to neutral with zero counts.
func SummarizeSentiments(spans []types.Sentiment) SentimentSummary {
	if len(spans) == 0 {
		return SentimentSummary{Overall: "neutral"}
	}

	counts := map[string]int{}
	for _, s := range spans {
		counts[s.Sentiment]++
	}

	overall := ""
	best := -1
	for _, label := range sentimentOrder {
		if counts[label] > best {
			best = counts[label]
			overall = label
		}
	}

	return SentimentSummary{
		Overall:       strings.ToLower(overall),
		PositiveCount: counts["POSITIVE"],
		NegativeCount: counts["NEGATIVE"],
		NeutralCount:  counts["NEUTRAL"],
		TotalSegments: len(spans),
	}
}
