package report

import (
	"speech-insights-go/internal/analysis"
	"speech-insights-go/internal/types"
)

// defaultChannel stands in when the API omits channel attribution on a span.
const defaultChannel = "1"

// ChannelDetail is the per-channel slice of a multichannel transcript.
type ChannelDetail struct {
	Transcript       string                    `json:"transcript"`
	WordCount        int                       `json:"word_count"`
	DurationMs       int64                     `json:"duration_ms"`
	DurationSeconds  float64                   `json:"duration_seconds"`
	Words            []types.Word              `json:"words"`
	Sentiments       []types.Sentiment         `json:"sentiments"`
	Entities         []types.Entity            `json:"entities"`
	SentimentSummary analysis.SentimentSummary `json:"sentiment_summary"`
}

// SpeakingTime reports one channel's share of the call in both units.
type SpeakingTime struct {
	DurationMs      int64   `json:"duration_ms"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ChannelComparison summarizes how the channels relate.
type ChannelComparison struct {
	WordCountByChannel     map[string]int          `json:"word_count_by_channel"`
	SpeakingTimeByChannel  map[string]SpeakingTime `json:"speaking_time_by_channel"`
	DurationShareByChannel map[string]float64      `json:"duration_share_by_channel"`
	DominantChannel        string                  `json:"dominant_channel"`
	BalanceRatio           float64                 `json:"balance_ratio"`
}

// ConversationAnalysis classifies the dynamics of a two-channel call.
type ConversationAnalysis struct {
	ConversationType string   `json:"conversation_type"`
	InteractionLevel string   `json:"interaction_level"`
	Notes            []string `json:"notes"`
}

// MultichannelReport is the full structured result for multichannel audio.
type MultichannelReport struct {
	Metadata             Metadata                 `json:"metadata"`
	FullTranscript       string                   `json:"full_transcript"`
	Channels             map[string]ChannelDetail `json:"channels"`
	ChannelComparison    ChannelComparison        `json:"channel_comparison"`
	ConversationAnalysis ConversationAnalysis     `json:"conversation_analysis"`
}

// BuildMultichannelReport aggregates a transcript's words by audio channel.
func BuildMultichannelReport(t *types.Transcript) MultichannelReport {
	segments := wordSegments(t)
	grouped := analysis.Group(segments)
	cmp := analysis.Compare(grouped)

	wordsByChannel := map[string][]types.Word{}
	for _, w := range t.Words {
		ch := channelOrDefault(w.Channel)
		wordsByChannel[ch] = append(wordsByChannel[ch], w)
	}
	sentimentsByChannel := map[string][]types.Sentiment{}
	for _, s := range t.Sentiments {
		ch := channelOrDefault(s.Channel)
		sentimentsByChannel[ch] = append(sentimentsByChannel[ch], s)
	}
	entitiesByChannel := map[string][]types.Entity{}
	for _, e := range t.Entities {
		ch := channelOrDefault(e.Channel)
		entitiesByChannel[ch] = append(entitiesByChannel[ch], e)
	}

	channels := make(map[string]ChannelDetail, grouped.Len())
	comparison := ChannelComparison{
		WordCountByChannel:     map[string]int{},
		SpeakingTimeByChannel:  map[string]SpeakingTime{},
		DurationShareByChannel: cmp.DurationShareByGroup,
		DominantChannel:        cmp.DominantGroup,
		BalanceRatio:           cmp.BalanceRatio,
	}
	for _, ch := range grouped.Keys() {
		gs, _ := grouped.Get(ch)
		channels[ch] = ChannelDetail{
			Transcript:       gs.Transcript,
			WordCount:        gs.WordCount,
			DurationMs:       gs.TotalDurationMs,
			DurationSeconds:  float64(gs.TotalDurationMs) / 1000,
			Words:            wordsByChannel[ch],
			Sentiments:       sentimentsByChannel[ch],
			Entities:         entitiesByChannel[ch],
			SentimentSummary: analysis.SummarizeSentiments(sentimentsByChannel[ch]),
		}
		comparison.WordCountByChannel[ch] = gs.WordCount
		comparison.SpeakingTimeByChannel[ch] = SpeakingTime{
			DurationMs:      gs.TotalDurationMs,
			DurationSeconds: float64(gs.TotalDurationMs) / 1000,
		}
	}

	return MultichannelReport{
		Metadata:             buildMetadata(t, grouped),
		FullTranscript:       t.Text,
		Channels:             channels,
		ChannelComparison:    comparison,
		ConversationAnalysis: analyzeConversation(cmp, grouped.Len()),
	}
}

// analyzeConversation maps the two-channel balance ratio onto a conversation
// type. Calls with any other channel count keep the zero-value analysis; the
// ratio convention only holds for pairs.
func analyzeConversation(cmp analysis.ComparisonResult, numChannels int) ConversationAnalysis {
	if numChannels != 2 {
		return ConversationAnalysis{}
	}
	switch {
	case cmp.BalanceRatio > analysis.BalancedThreshold:
		return ConversationAnalysis{
			ConversationType: "dialogue",
			InteractionLevel: analysis.StyleBalanced,
			Notes:            []string{"Both speakers contribute roughly equally"},
		}
	case cmp.BalanceRatio > analysis.ModerateThreshold:
		return ConversationAnalysis{
			ConversationType: "interview",
			InteractionLevel: analysis.StyleModerate,
			Notes:            []string{"One speaker is more dominant"},
		}
	default:
		return ConversationAnalysis{
			ConversationType: "monologue",
			InteractionLevel: analysis.StyleLow,
			Notes:            []string{"One speaker dominates the conversation"},
		}
	}
}

func wordSegments(t *types.Transcript) []types.Segment {
	segments := make([]types.Segment, 0, len(t.Words))
	for _, w := range t.Words {
		conf := w.Confidence
		segments = append(segments, types.Segment{
			GroupKey:   channelOrDefault(w.Channel),
			Text:       w.Text,
			StartMs:    w.StartMs,
			EndMs:      w.EndMs,
			Confidence: &conf,
		})
	}
	return segments
}

func channelOrDefault(ch string) string {
	if ch == "" {
		return defaultChannel
	}
	return ch
}
