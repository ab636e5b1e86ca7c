package types

// Segment is one timestamped unit of spoken text attributed to a speaker
// label or an audio channel. GroupKey is whichever of the two the caller
// aggregates by.
type Segment struct {
	GroupKey   string   `json:"group_key"`
	Text       string   `json:"text"`
	StartMs    int64    `json:"start_ms"`
	EndMs      int64    `json:"end_ms"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// DurationMs returns the segment's duration, clamped to zero when upstream
// data arrives with inverted timestamps.
func (s Segment) DurationMs() int64 {
	d := s.EndMs - s.StartMs
	if d < 0 {
		return 0
	}
	return d
}

// Word is a single recognized word as returned by the transcription API.
type Word struct {
	Text       string  `json:"text"`
	StartMs    int64   `json:"start"`
	EndMs      int64   `json:"end"`
	Confidence float64 `json:"confidence"`
	Channel    string  `json:"channel,omitempty"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Utterance is a speaker-attributed span produced by diarization.
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	StartMs    int64   `json:"start"`
	EndMs      int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is one sentiment-analysis span. Sentiment is POSITIVE, NEGATIVE
// or NEUTRAL.
type Sentiment struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	StartMs    int64   `json:"start"`
	EndMs      int64   `json:"end"`
	Channel    string  `json:"channel,omitempty"`
}

// Entity is one detected entity span.
type Entity struct {
	Text       string `json:"text"`
	EntityType string `json:"entity_type"`
	StartMs    int64  `json:"start"`
	EndMs      int64  `json:"end"`
	Channel    string `json:"channel,omitempty"`
}

// Transcript mirrors the transcription API's job resource. Status moves
// through queued/processing before settling on completed or error.
type Transcript struct {
	ID            string      `json:"id"`
	Status        string      `json:"status"`
	Text          string      `json:"text"`
	LanguageCode  string      `json:"language_code,omitempty"`
	AudioDuration int64       `json:"audio_duration,omitempty"` // seconds
	Confidence    float64     `json:"confidence,omitempty"`
	Utterances    []Utterance `json:"utterances,omitempty"`
	Words         []Word      `json:"words,omitempty"`
	Sentiments    []Sentiment `json:"sentiment_analysis_results,omitempty"`
	Entities      []Entity    `json:"entities,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// CallRecord is one row from the batch dataset sheet.
type CallRecord struct {
	CallID   string `json:"call_id"`
	AudioURL string `json:"audio_url"`
	Language string `json:"language,omitempty"`
}
