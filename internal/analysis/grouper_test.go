package analysis

import (
	"testing"

	"speech-insights-go/internal/types"
)

func conf(v float64) *float64 { return &v }

func TestGroupBasic(t *testing.T) {
	segments := []types.Segment{
		{GroupKey: "A", Text: "hi there", StartMs: 0, EndMs: 1000},
		{GroupKey: "B", Text: "hello", StartMs: 1000, EndMs: 1500},
		{GroupKey: "A", Text: "bye", StartMs: 1500, EndMs: 2000},
	}
	grouped := Group(segments)

	if grouped.Len() != 2 {
		t.Fatalf("expected 2 groups, got %d", grouped.Len())
	}
	a, ok := grouped.Get("A")
	if !ok {
		t.Fatal("group A missing")
	}
	if a.TotalDurationMs != 1500 {
		t.Errorf("A duration = %d, want 1500", a.TotalDurationMs)
	}
	if a.WordCount != 3 {
		t.Errorf("A word count = %d, want 3", a.WordCount)
	}
	if a.SegmentCount != 2 {
		t.Errorf("A segment count = %d, want 2", a.SegmentCount)
	}
	if a.Transcript != "hi there bye" {
		t.Errorf("A transcript = %q, want %q", a.Transcript, "hi there bye")
	}
	b, _ := grouped.Get("B")
	if b.TotalDurationMs != 500 || b.WordCount != 1 || b.Transcript != "hello" {
		t.Errorf("B stats = %+v, want duration 500, 1 word, text %q", b, "hello")
	}
}

func TestGroupFirstSeenOrder(t *testing.T) {
	segments := []types.Segment{
		{GroupKey: "B", Text: "x", StartMs: 0, EndMs: 100},
		{GroupKey: "A", Text: "y", StartMs: 100, EndMs: 200},
		{GroupKey: "B", Text: "z", StartMs: 200, EndMs: 300},
	}
	keys := Group(segments).Keys()
	want := []string{"B", "A"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestGroupEmpty(t *testing.T) {
	grouped := Group(nil)
	if grouped == nil {
		t.Fatal("expected non-nil result for empty input")
	}
	if grouped.Len() != 0 {
		t.Errorf("expected empty grouping, got %d groups", grouped.Len())
	}
}

func TestGroupClampsInvertedTimestamps(t *testing.T) {
	segments := []types.Segment{
		{GroupKey: "A", Text: "out of order", StartMs: 1000, EndMs: 900},
	}
	a, _ := Group(segments).Get("A")
	if a.TotalDurationMs != 0 {
		t.Errorf("duration = %d, want 0 for inverted timestamps", a.TotalDurationMs)
	}
	if a.SegmentCount != 1 {
		t.Errorf("segment count = %d, want 1", a.SegmentCount)
	}
	if a.WordCount != 3 {
		t.Errorf("word count = %d, want 3", a.WordCount)
	}
}

func TestGroupSegmentCountSum(t *testing.T) {
	segments := []types.Segment{
		{GroupKey: "A", Text: "a", StartMs: 0, EndMs: 10},
		{GroupKey: "B", Text: "b", StartMs: 10, EndMs: 20},
		{GroupKey: "C", Text: "c", StartMs: 20, EndMs: 30},
		{GroupKey: "A", Text: "d", StartMs: 30, EndMs: 40},
		{GroupKey: "B", Text: "e", StartMs: 40, EndMs: 50},
	}
	grouped := Group(segments)
	sum := 0
	for _, k := range grouped.Keys() {
		gs, _ := grouped.Get(k)
		sum += gs.SegmentCount
	}
	if sum != len(segments) {
		t.Errorf("segment count sum = %d, want %d", sum, len(segments))
	}
}

func TestGroupConcatenationPreservesInputOrder(t *testing.T) {
	// Input is deliberately not time-sorted; concatenation must follow input
	// order, not timestamps.
	segments := []types.Segment{
		{GroupKey: "A", Text: "second", StartMs: 5000, EndMs: 6000},
		{GroupKey: "A", Text: "first", StartMs: 0, EndMs: 1000},
	}
	a, _ := Group(segments).Get("A")
	if a.Transcript != "second first" {
		t.Errorf("transcript = %q, want %q", a.Transcript, "second first")
	}
}

func TestGroupAverageConfidence(t *testing.T) {
	tests := []struct {
		name     string
		segments []types.Segment
		want     *float64
	}{
		{
			name: "mean of present confidences",
			segments: []types.Segment{
				{GroupKey: "A", Text: "x", StartMs: 0, EndMs: 10, Confidence: conf(0.8)},
				{GroupKey: "A", Text: "y", StartMs: 10, EndMs: 20, Confidence: conf(0.6)},
			},
			want: conf(0.7),
		},
		{
			name: "missing confidences ignored",
			segments: []types.Segment{
				{GroupKey: "A", Text: "x", StartMs: 0, EndMs: 10, Confidence: conf(0.9)},
				{GroupKey: "A", Text: "y", StartMs: 10, EndMs: 20},
			},
			want: conf(0.9),
		},
		{
			name: "no confidences present",
			segments: []types.Segment{
				{GroupKey: "A", Text: "x", StartMs: 0, EndMs: 10},
			},
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := Group(tc.segments).Get("A")
			switch {
			case tc.want == nil && a.AverageConfidence != nil:
				t.Errorf("average confidence = %v, want nil", *a.AverageConfidence)
			case tc.want != nil && a.AverageConfidence == nil:
				t.Errorf("average confidence = nil, want %v", *tc.want)
			case tc.want != nil && !almostEqual(*a.AverageConfidence, *tc.want):
				t.Errorf("average confidence = %v, want %v", *a.AverageConfidence, *tc.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
