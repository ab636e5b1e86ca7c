package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"speech-insights-go/internal/dataset"
	"speech-insights-go/internal/logger"
	"speech-insights-go/internal/report"
	"speech-insights-go/internal/transcription"
)

const (
	demoLimit         = 5
	defaultTimeoutSec = 90
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "speech-insights-go").Info("starting service")

	cfg := transcription.Config{
		BaseURL: os.Getenv("TRANSCRIBE_API_URL"),
		APIKey:  os.Getenv("TRANSCRIBE_API_KEY"),
		UseMock: os.Getenv("USE_MOCK_TRANSCRIBE") == "true",
	}
	if cfg.APIKey == "" && !cfg.UseMock {
		log.Warn("TRANSCRIBE_API_KEY not set; transcription requests will fail")
	}
	client := transcription.New(cfg)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// speaker diarization endpoint
	mux.HandleFunc("/diarize", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "diarize")
		reqLog.Info("diarize request received")

		audioURL := r.URL.Query().Get("audio_url")
		if audioURL == "" {
			reqLog.Warn("missing audio_url")
			http.Error(w, "missing audio_url", http.StatusBadRequest)
			return
		}
		speakers := 0
		if s := r.URL.Query().Get("speakers_expected"); s != "" {
			fmt.Sscanf(s, "%d", &speakers)
		}
		ctx, cancel := requestContext(r)
		defer cancel()

		start := time.Now()
		t, err := client.Transcribe(ctx, transcription.Request{
			AudioURL:         audioURL,
			SpeakerLabels:    true,
			SpeakersExpected: speakers,
		})
		reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
		if err != nil {
			reqLog.WithError(err).Warn("transcription failed")
			http.Error(w, fmt.Sprintf("transcription failed: %v", err), http.StatusInternalServerError)
			return
		}
		reqLog.Info("transcription complete")
		writeJSON(w, reqLog, report.BuildDiarizationReport(t))
	})

	// multichannel endpoint
	mux.HandleFunc("/multichannel", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "multichannel")
		reqLog.Info("multichannel request received")

		audioURL := r.URL.Query().Get("audio_url")
		if audioURL == "" {
			reqLog.Warn("missing audio_url")
			http.Error(w, "missing audio_url", http.StatusBadRequest)
			return
		}
		ctx, cancel := requestContext(r)
		defer cancel()

		start := time.Now()
		t, err := client.Transcribe(ctx, transcription.Request{
			AudioURL:          audioURL,
			Multichannel:      true,
			SentimentAnalysis: true,
			EntityDetection:   true,
		})
		reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
		if err != nil {
			reqLog.WithError(err).Warn("transcription failed")
			http.Error(w, fmt.Sprintf("transcription failed: %v", err), http.StatusInternalServerError)
			return
		}
		reqLog.Info("transcription complete")
		writeJSON(w, reqLog, report.BuildMultichannelReport(t))
	})

	// demo endpoint (diarize first N rows from the dataset sheet)
	mux.HandleFunc("/demo", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "demo")
		reqLog.Info("demo invoked")

		records, err := dataset.Load(envOr("DATASET_PATH", "calls.xlsx"))
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		if len(records) > demoLimit {
			records = records[:demoLimit]
		}
		ctx, cancel := requestContext(r)
		defer cancel()

		var out []report.DiarizationReport
		for _, rec := range records {
			recLog := reqLog.WithField("call_id", rec.CallID).WithField("audio_url", rec.AudioURL)
			recLog.Info("processing demo call")
			t, err := client.Transcribe(ctx, transcription.Request{
				AudioURL:      rec.AudioURL,
				SpeakerLabels: true,
			})
			if err != nil {
				recLog.WithError(err).Warn("demo call failed")
				continue
			}
			out = append(out, report.BuildDiarizationReport(t))
		}
		writeJSON(w, reqLog, out)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// requestContext derives the per-request deadline from the timeout_sec query
// parameter, defaulting to 90s. Non-positive values fall back to the default
// rather than producing an already-expired context.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeoutSec := defaultTimeoutSec
	if t := r.URL.Query().Get("timeout_sec"); t != "" {
		fmt.Sscanf(t, "%d", &timeoutSec)
	}
	if timeoutSec <= 0 {
		timeoutSec = defaultTimeoutSec
	}
	return context.WithTimeout(r.Context(), time.Duration(timeoutSec)*time.Second)
}

func writeJSON(w http.ResponseWriter, log *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
