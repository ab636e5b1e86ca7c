// Package transcription talks to the hosted speech-to-text API: submit a
// job, poll until it settles, return the typed transcript. The client is
// constructed from an explicit Config; no package-level key state.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"speech-insights-go/internal/logger"
	"speech-insights-go/internal/types"
)

const (
	defaultBaseURL      = "https://api.assemblyai.com/v2"
	defaultTimeout      = 12 * time.Second
	defaultPollInterval = 1500 * time.Millisecond
	maxPollAttempts     = 40
)

// Config holds all client settings. Built once in main from the environment
// and passed in.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	PollInterval time.Duration
	// UseMock short-circuits the network entirely and returns a
	// deterministic transcript, for offline demos and tests.
	UseMock bool
}

// Request mirrors the API's job parameters.
type Request struct {
	AudioURL          string `json:"audio_url"`
	SpeakerLabels     bool   `json:"speaker_labels,omitempty"`
	SpeakersExpected  int    `json:"speakers_expected,omitempty"`
	Multichannel      bool   `json:"multichannel,omitempty"`
	SentimentAnalysis bool   `json:"sentiment_analysis,omitempty"`
	EntityDetection   bool   `json:"entity_detection,omitempty"`
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logrus.Entry
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.New().WithComponent("transcription"),
	}
}

// Transcribe submits the job and polls until it completes or fails.
func (c *Client) Transcribe(ctx context.Context, req Request) (*types.Transcript, error) {
	if c.cfg.UseMock {
		return mockTranscript(req), nil
	}
	if c.cfg.APIKey == "" {
		return nil, errors.New("transcription API key not set")
	}

	job, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}
	if job.Status == "completed" {
		return job, nil
	}
	return c.poll(ctx, job.ID)
}

func (c *Client) submit(ctx context.Context, req Request) (*types.Transcript, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var t types.Transcript
	err = c.doJSON(func() (*http.Request, error) {
		hr, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/transcript", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		hr.Header.Set("Content-Type", "application/json")
		hr.Header.Set("Authorization", c.cfg.APIKey)
		return hr, nil
	}, &t)
	if err != nil {
		return nil, fmt.Errorf("submit transcript: %w", err)
	}
	if t.Status == "error" {
		return nil, fmt.Errorf("transcription rejected: %s", t.Error)
	}
	return &t, nil
}

func (c *Client) poll(ctx context.Context, id string) (*types.Transcript, error) {
	for i := 0; i < maxPollAttempts; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}

		var t types.Transcript
		err := c.doJSON(func() (*http.Request, error) {
			hr, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/transcript/"+id, nil)
			if err != nil {
				return nil, err
			}
			hr.Header.Set("Authorization", c.cfg.APIKey)
			return hr, nil
		}, &t)
		if err != nil {
			c.log.WithError(err).Warn("polling failed")
			continue
		}
		c.log.WithFields(logrus.Fields{
			"transcript_id": id,
			"status":        t.Status,
		}).Debug("polling transcription")

		switch t.Status {
		case "completed":
			return &t, nil
		case "queued", "processing":
			continue
		case "error":
			return nil, fmt.Errorf("transcription failed: %s", t.Error)
		}
	}
	return nil, fmt.Errorf("transcription timeout")
}

// doJSON performs one JSON request with exponential-backoff retries. Each
// attempt rebuilds the request so the body can be re-read.
func (c *Client) doJSON(build func() (*http.Request, error), target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.cfg.Timeout
	var lastErr error
	op := func() error {
		req, err := build()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request failed: status=%d body=%s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}
