package analysis

import (
	"sort"

	"speech-insights-go/internal/types"
)

const (
	previewLimit   = 100
	highlightCount = 3
)

// SegmentHighlight is one of the longest uninterrupted segments.
type SegmentHighlight struct {
	GroupKey        string  `json:"group_key"`
	DurationSeconds float64 `json:"duration_seconds"`
	Preview         string  `json:"preview"`
}

// FlowAnalysis describes the turn-taking dynamics of a conversation.
type FlowAnalysis struct {
	TotalSpeakerChanges  int                `json:"total_speaker_changes"`
	SpeakerChangeRatio   float64            `json:"speaker_change_ratio"`
	AvgSegmentDurationMs float64            `json:"avg_segment_duration_ms"`
	ConversationStyle    string             `json:"conversation_style"`
	LongestSegments      []SegmentHighlight `json:"longest_uninterrupted_segments"`
}

// AnalyzeFlow computes turn-taking statistics over segments in input order:
// how often the group key changes between consecutive segments, the average
// segment duration, a style label on the speaker-change axis, and the top
// longest segments with a short text preview.
func AnalyzeFlow(segments []types.Segment) FlowAnalysis {
	if len(segments) == 0 {
		return FlowAnalysis{ConversationStyle: StyleUnknown}
	}

	changes := 0
	var totalDur int64
	for i, s := range segments {
		if i > 0 && s.GroupKey != segments[i-1].GroupKey {
			changes++
		}
		totalDur += s.DurationMs()
	}
	ratio := float64(changes) / float64(len(segments))

	sorted := make([]types.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DurationMs() > sorted[j].DurationMs()
	})
	n := highlightCount
	if len(sorted) < n {
		n = len(sorted)
	}
	highlights := make([]SegmentHighlight, 0, n)
	for _, s := range sorted[:n] {
		highlights = append(highlights, SegmentHighlight{
			GroupKey:        s.GroupKey,
			DurationSeconds: float64(s.DurationMs()) / 1000,
			Preview:         preview(s.Text),
		})
	}

	return FlowAnalysis{
		TotalSpeakerChanges:  changes,
		SpeakerChangeRatio:   ratio,
		AvgSegmentDurationMs: float64(totalDur) / float64(len(segments)),
		ConversationStyle:    StyleFromChanges(ratio),
		LongestSegments:      highlights,
	}
}

// preview truncates on rune boundaries so multi-byte text stays valid UTF-8.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
