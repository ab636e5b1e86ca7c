// Package report turns completed transcripts into the structured JSON
// documents served by the API: one shape for speaker-diarized audio, one for
// multichannel audio. All heavy lifting is delegated to internal/analysis.
package report

import (
	"speech-insights-go/internal/analysis"
	"speech-insights-go/internal/types"
)

// Metadata describes the transcript as a whole.
type Metadata struct {
	AudioDurationMs   int64   `json:"audio_duration_ms"`
	Language          string  `json:"language,omitempty"`
	NumGroupsDetected int     `json:"num_groups_detected"`
	TotalWords        int     `json:"total_words"`
	ConfidenceAverage float64 `json:"confidence_average"`
}

// SpeakerStat extends the core group totals with derived per-speaker
// figures.
type SpeakerStat struct {
	analysis.GroupStats
	SpeakingTimePercentage float64 `json:"speaking_time_percentage"`
	AvgSegmentDurationMs   float64 `json:"avg_segment_duration_ms"`
	TotalDurationSeconds   float64 `json:"total_duration_seconds"`
}

// DiarizationReport is the full structured result for speaker-diarized
// audio.
type DiarizationReport struct {
	Metadata           Metadata                  `json:"metadata"`
	FullTranscript     string                    `json:"full_transcript"`
	SpeakerSegments    []types.Segment           `json:"speaker_segments"`
	SpeakerStatistics  map[string]SpeakerStat    `json:"speaker_statistics"`
	SpeakerTranscripts map[string]string         `json:"speaker_transcripts"`
	ConversationFlow   analysis.FlowAnalysis     `json:"conversation_flow"`
	SpeakerComparison  analysis.ComparisonResult `json:"speaker_comparison"`
}

// BuildDiarizationReport aggregates a transcript's utterances by speaker.
func BuildDiarizationReport(t *types.Transcript) DiarizationReport {
	segments := utteranceSegments(t)
	grouped := analysis.Group(segments)
	cmp := analysis.Compare(grouped)

	stats := make(map[string]SpeakerStat, grouped.Len())
	transcripts := make(map[string]string, grouped.Len())
	for _, speaker := range grouped.Keys() {
		gs, _ := grouped.Get(speaker)
		st := SpeakerStat{
			GroupStats:             *gs,
			SpeakingTimePercentage: cmp.DurationShareByGroup[speaker],
			TotalDurationSeconds:   float64(gs.TotalDurationMs) / 1000,
		}
		if gs.SegmentCount > 0 {
			st.AvgSegmentDurationMs = float64(gs.TotalDurationMs) / float64(gs.SegmentCount)
		}
		stats[speaker] = st
		transcripts[speaker] = gs.Transcript
	}

	return DiarizationReport{
		Metadata:           buildMetadata(t, grouped),
		FullTranscript:     t.Text,
		SpeakerSegments:    segments,
		SpeakerStatistics:  stats,
		SpeakerTranscripts: transcripts,
		ConversationFlow:   analysis.AnalyzeFlow(segments),
		SpeakerComparison:  cmp,
	}
}

func buildMetadata(t *types.Transcript, grouped *analysis.GroupedStats) Metadata {
	totalWords := len(t.Words)
	if totalWords == 0 {
		for _, k := range grouped.Keys() {
			gs, _ := grouped.Get(k)
			totalWords += gs.WordCount
		}
	}
	return Metadata{
		AudioDurationMs:   t.AudioDuration * 1000,
		Language:          t.LanguageCode,
		NumGroupsDetected: grouped.Len(),
		TotalWords:        totalWords,
		ConfidenceAverage: t.Confidence,
	}
}

func utteranceSegments(t *types.Transcript) []types.Segment {
	segments := make([]types.Segment, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		conf := u.Confidence
		segments = append(segments, types.Segment{
			GroupKey:   u.Speaker,
			Text:       u.Text,
			StartMs:    u.StartMs,
			EndMs:      u.EndMs,
			Confidence: &conf,
		})
	}
	return segments
}
