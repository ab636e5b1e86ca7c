package transcription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"speech-insights-go/internal/types"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:      baseURL,
		APIKey:       "test-key",
		Timeout:      2 * time.Second,
		PollInterval: 5 * time.Millisecond,
	}
}

func TestTranscribeSubmitAndPoll(t *testing.T) {
	polls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Errorf("missing auth header")
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transcript":
			var req Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			if !req.SpeakerLabels {
				t.Errorf("expected speaker_labels in request")
			}
			json.NewEncoder(w).Encode(types.Transcript{ID: "job-1", Status: "queued"})
		case r.Method == http.MethodGet && r.URL.Path == "/transcript/job-1":
			polls++
			status := "processing"
			if polls >= 2 {
				status = "completed"
			}
			json.NewEncoder(w).Encode(types.Transcript{ID: "job-1", Status: status, Text: "done"})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	tr, err := c.Transcribe(context.Background(), Request{AudioURL: "https://example.com/a.mp3", SpeakerLabels: true})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if tr.Text != "done" {
		t.Errorf("text = %q, want done", tr.Text)
	}
	if polls < 2 {
		t.Errorf("polls = %d, want at least 2", polls)
	}
}

func TestTranscribeImmediateCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.Transcript{ID: "job-2", Status: "completed", Text: "cached"})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	tr, err := c.Transcribe(context.Background(), Request{AudioURL: "https://example.com/a.mp3"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if tr.Text != "cached" {
		t.Errorf("text = %q, want cached", tr.Text)
	}
}

func TestTranscribeJobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(types.Transcript{ID: "job-3", Status: "queued"})
			return
		}
		json.NewEncoder(w).Encode(types.Transcript{ID: "job-3", Status: "error", Error: "bad audio"})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	if _, err := c.Transcribe(context.Background(), Request{AudioURL: "https://example.com/a.mp3"}); err == nil {
		t.Fatal("expected error for failed job")
	}
}

func TestTranscribeRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(types.Transcript{ID: "job-4", Status: "completed"})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	if _, err := c.Transcribe(context.Background(), Request{AudioURL: "https://example.com/a.mp3"}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if attempts < 2 {
		t.Errorf("attempts = %d, want retry after 500", attempts)
	}
}

func TestTranscribeNoAPIKey(t *testing.T) {
	c := New(Config{})
	if _, err := c.Transcribe(context.Background(), Request{AudioURL: "https://example.com/a.mp3"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestTranscribeMock(t *testing.T) {
	c := New(Config{UseMock: true})
	tr, err := c.Transcribe(context.Background(), Request{
		AudioURL:          "https://example.com/a.mp3",
		Multichannel:      true,
		SentimentAnalysis: true,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if tr.Status != "completed" {
		t.Errorf("status = %q, want completed", tr.Status)
	}
	if len(tr.Utterances) == 0 || len(tr.Words) == 0 {
		t.Fatal("mock transcript missing utterances or words")
	}
	for _, w := range tr.Words {
		if w.Channel == "" {
			t.Errorf("word %q missing channel in multichannel mock", w.Text)
		}
	}
	if len(tr.Sentiments) == 0 {
		t.Error("mock transcript missing sentiments")
	}
}
