// Package analysis is the pure aggregation core: it groups timestamped
// transcript segments by speaker label or channel id and compares the
// resulting per-group totals. Nothing here performs I/O; every function is
// deterministic over its arguments and safe to call concurrently.
package analysis

import (
	"strings"

	"speech-insights-go/internal/types"
)

// GroupStats holds the totals accumulated for a single group key.
type GroupStats struct {
	TotalDurationMs int64  `json:"total_duration_ms"`
	SegmentCount    int    `json:"segment_count"`
	WordCount       int    `json:"word_count"`
	Transcript      string `json:"transcript"`
	// AverageConfidence is nil when no segment in the group carried a
	// confidence value.
	AverageConfidence *float64 `json:"average_confidence,omitempty"`
}

// GroupedStats is an insertion-ordered mapping of group key to GroupStats.
// Keys are kept in first-seen input order; dominant-group tie-breaking
// depends on that order.
type GroupedStats struct {
	keys  []string
	stats map[string]*GroupStats
}

// Keys returns the group keys in first-seen order.
func (g *GroupedStats) Keys() []string { return g.keys }

// Get returns the stats for key, or nil/false when the key never appeared.
func (g *GroupedStats) Get(key string) (*GroupStats, bool) {
	s, ok := g.stats[key]
	return s, ok
}

// Len returns the number of distinct groups.
func (g *GroupedStats) Len() int { return len(g.keys) }

type groupAcc struct {
	durationMs int64
	segments   int
	words      int
	texts      []string
	confSum    float64
	confCount  int
}

// Group aggregates segments by their group key in a single pass. Segments
// need not be time-sorted; per-group text concatenation preserves input
// order, not time order. An empty input yields an empty (non-nil) result.
// A segment whose EndMs precedes its StartMs contributes zero duration but
// still counts toward SegmentCount and WordCount; upstream transcription
// data occasionally arrives with reordered timestamps.
func Group(segments []types.Segment) *GroupedStats {
	out := &GroupedStats{stats: map[string]*GroupStats{}}
	accs := map[string]*groupAcc{}

	for _, s := range segments {
		a, ok := accs[s.GroupKey]
		if !ok {
			a = &groupAcc{}
			accs[s.GroupKey] = a
			out.keys = append(out.keys, s.GroupKey)
		}
		a.durationMs += s.DurationMs()
		a.segments++
		a.words += len(strings.Fields(s.Text))
		a.texts = append(a.texts, s.Text)
		if s.Confidence != nil {
			a.confSum += *s.Confidence
			a.confCount++
		}
	}

	for _, k := range out.keys {
		a := accs[k]
		gs := &GroupStats{
			TotalDurationMs: a.durationMs,
			SegmentCount:    a.segments,
			WordCount:       a.words,
			Transcript:      strings.Join(a.texts, " "),
		}
		if a.confCount > 0 {
			avg := a.confSum / float64(a.confCount)
			gs.AverageConfidence = &avg
		}
		out.stats[k] = gs
	}
	return out
}
