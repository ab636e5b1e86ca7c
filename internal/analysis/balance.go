package analysis

// Classification breakpoints shared by both style axes. Exported so tests
// and callers can target the exact boundaries.
const (
	BalancedThreshold  = 0.7
	ModerateThreshold  = 0.4
	InterviewThreshold = 0.2
)

// DominantNone is the sentinel dominant group for empty input.
const DominantNone = "none"

// Style labels for the balance (word-count ratio) axis.
const (
	StyleBalanced = "balanced"
	StyleModerate = "moderate"
	StyleLow      = "low"
)

// Style labels for the speaker-change axis.
const (
	StyleHighlyInteractive = "highly_interactive"
	StyleConversational    = "conversational"
	StyleInterview         = "interview_style"
	StyleMonologue         = "monologue_style"
	StyleUnknown           = "unknown"
)

// ComparisonResult summarizes how the groups relate to each other.
type ComparisonResult struct {
	// DurationShareByGroup maps each group to its percentage (0-100) of the
	// total speaking time. All zero when the total duration is zero.
	DurationShareByGroup map[string]float64 `json:"duration_share_by_group"`
	// DominantGroup is the group with the highest word count; ties go to the
	// first-seen group. DominantNone when there are no groups.
	DominantGroup string `json:"dominant_group"`
	// BalanceRatio is min/max word count when exactly two groups are
	// present, 0.0 otherwise by convention.
	BalanceRatio float64 `json:"balance_ratio"`
	StyleLabel   string  `json:"style_label"`
}

// Compare derives share percentages, the dominant group, the two-group
// balance ratio and a style label from grouped totals. Pure function; never
// fails.
func Compare(stats *GroupedStats) ComparisonResult {
	res := ComparisonResult{
		DurationShareByGroup: map[string]float64{},
		DominantGroup:        DominantNone,
	}
	if stats == nil || stats.Len() == 0 {
		res.StyleLabel = StyleFromBalance(0)
		return res
	}

	var total int64
	for _, k := range stats.Keys() {
		total += stats.stats[k].TotalDurationMs
	}
	for _, k := range stats.Keys() {
		if total > 0 {
			res.DurationShareByGroup[k] = 100 * float64(stats.stats[k].TotalDurationMs) / float64(total)
		} else {
			res.DurationShareByGroup[k] = 0.0
		}
	}

	best := -1
	for _, k := range stats.Keys() {
		if wc := stats.stats[k].WordCount; wc > best {
			best = wc
			res.DominantGroup = k
		}
	}

	// The ratio is only meaningful for pairwise comparison; other group
	// counts keep the 0.0 convention rather than guessing at a metric.
	if stats.Len() == 2 {
		a := stats.stats[stats.keys[0]].WordCount
		b := stats.stats[stats.keys[1]].WordCount
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi > 0 {
			res.BalanceRatio = float64(lo) / float64(hi)
		}
	}

	res.StyleLabel = StyleFromBalance(res.BalanceRatio)
	return res
}

// StyleFromBalance classifies a two-group word-count ratio.
func StyleFromBalance(ratio float64) string {
	switch {
	case ratio > BalancedThreshold:
		return StyleBalanced
	case ratio > ModerateThreshold:
		return StyleModerate
	default:
		return StyleLow
	}
}

// StyleFromChanges classifies a speaker-change ratio (changes between
// consecutive segments divided by segment count).
func StyleFromChanges(ratio float64) string {
	switch {
	case ratio > BalancedThreshold:
		return StyleHighlyInteractive
	case ratio > ModerateThreshold:
		return StyleConversational
	case ratio > InterviewThreshold:
		return StyleInterview
	default:
		return StyleMonologue
	}
}
