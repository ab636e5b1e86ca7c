package transcription

import (
	"strings"

	"speech-insights-go/internal/types"
)

// mockTranscript returns a fixed two-party conversation so the pipeline can
// run without credentials. Channel attribution is filled only when the
// request asked for multichannel.
func mockTranscript(req Request) *types.Transcript {
	t := &types.Transcript{
		ID:            "mock-transcript",
		Status:        "completed",
		LanguageCode:  "en",
		AudioDuration: 12,
		Confidence:    0.94,
		Text: "Hello, thanks for calling support. Hi, my order arrived broken. " +
			"I am sorry to hear that, let me check. Okay. I have issued a replacement.",
	}

	utterances := []types.Utterance{
		{Speaker: "A", Text: "Hello, thanks for calling support.", StartMs: 0, EndMs: 2400, Confidence: 0.96},
		{Speaker: "B", Text: "Hi, my order arrived broken.", StartMs: 2400, EndMs: 4900, Confidence: 0.93},
		{Speaker: "A", Text: "I am sorry to hear that, let me check.", StartMs: 4900, EndMs: 7800, Confidence: 0.95},
		{Speaker: "B", Text: "Okay.", StartMs: 7800, EndMs: 8300, Confidence: 0.90},
		{Speaker: "A", Text: "I have issued a replacement.", StartMs: 8300, EndMs: 11200, Confidence: 0.94},
	}
	t.Utterances = utterances

	channelFor := func(speaker string) string {
		if !req.Multichannel {
			return ""
		}
		if speaker == "A" {
			return "1"
		}
		return "2"
	}
	for _, u := range utterances {
		words := strings.Fields(u.Text)
		if len(words) == 0 {
			continue
		}
		step := (u.EndMs - u.StartMs) / int64(len(words))
		cursor := u.StartMs
		for _, w := range words {
			t.Words = append(t.Words, types.Word{
				Text:       w,
				StartMs:    cursor,
				EndMs:      cursor + step,
				Confidence: u.Confidence,
				Channel:    channelFor(u.Speaker),
				Speaker:    u.Speaker,
			})
			cursor += step
		}
	}

	if req.SentimentAnalysis {
		t.Sentiments = []types.Sentiment{
			{Text: utterances[0].Text, Sentiment: "POSITIVE", Confidence: 0.88, StartMs: 0, EndMs: 2400, Channel: channelFor("A")},
			{Text: utterances[1].Text, Sentiment: "NEGATIVE", Confidence: 0.91, StartMs: 2400, EndMs: 4900, Channel: channelFor("B")},
			{Text: utterances[4].Text, Sentiment: "POSITIVE", Confidence: 0.85, StartMs: 8300, EndMs: 11200, Channel: channelFor("A")},
		}
	}
	if req.EntityDetection {
		t.Entities = []types.Entity{
			{Text: "order", EntityType: "product", StartMs: 2400, EndMs: 2900, Channel: channelFor("B")},
		}
	}
	return t
}
