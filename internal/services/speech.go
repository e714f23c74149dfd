package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/config"
)

const (
	speechProvider  = "speechmatics"
	browserProvider = "browser"

	defaultPollInterval = 2 * time.Second
	defaultPollAttempts = 30

	jobStatusDone     = "done"
	jobStatusRejected = "rejected"
	jobStatusError    = "error"
)

// TranscriptionResult is always a usable value. Success=false with
// Provider="browser" tells the client to run its own speech recognition.
type TranscriptionResult struct {
	Success  bool
	Provider string
	Text     string
}

type SynthesisResult struct {
	Audio              []byte
	Provider           string
	UseBrowserFallback bool
}

// SpeechService submits and polls asynchronous transcription jobs and issues
// one-shot synthesis calls. Speech sits off the critical path of an interview
// (the candidate can always type), so neither method ever returns an error:
// every failure mode degrades to the browser fallback.
type SpeechService interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) TranscriptionResult
	Synthesize(ctx context.Context, text string) SynthesisResult
}

type speechService struct {
	apiKey           string
	baseURL          string
	httpClient       *http.Client
	synthesisTimeout time.Duration

	// overridable in tests
	pollInterval time.Duration
	pollAttempts int
}

func NewSpeechService(cfg config.SpeechConfig) SpeechService {
	return &speechService{
		apiKey:           cfg.APIKey,
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:       &http.Client{},
		synthesisTimeout: cfg.SynthesisTimeout,
		pollInterval:     defaultPollInterval,
		pollAttempts:     defaultPollAttempts,
	}
}

func browserTranscription() TranscriptionResult {
	return TranscriptionResult{Success: false, Provider: browserProvider}
}

// Transcribe implements SpeechService.
func (s *speechService) Transcribe(ctx context.Context, audio []byte, mimeType string) TranscriptionResult {
	if s.apiKey == "" {
		log.Warn("speech API key not configured, falling back to browser transcription")
		return browserTranscription()
	}

	jobID, err := s.submitJob(ctx, audio, mimeType)
	if err != nil {
		log.WithError(err).Warn("transcription job submission failed, falling back to browser transcription")
		return browserTranscription()
	}

	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			log.WithField("job_id", jobID).Warn("transcription polling cancelled")
			return browserTranscription()
		case <-time.After(s.pollInterval):
		}

		status, err := s.jobStatus(ctx, jobID)
		if err != nil {
			log.WithError(err).WithField("job_id", jobID).Warn("transcription status check failed")
			return browserTranscription()
		}

		switch status {
		case jobStatusDone:
			text, err := s.fetchTranscript(ctx, jobID)
			if err != nil {
				log.WithError(err).WithField("job_id", jobID).Warn("transcript fetch failed")
				return browserTranscription()
			}
			return TranscriptionResult{Success: true, Provider: speechProvider, Text: text}
		case jobStatusRejected, jobStatusError:
			log.WithField("job_id", jobID).
				WithField("status", status).
				Warn("transcription job failed, falling back to browser transcription")
			return browserTranscription()
		}
	}

	log.WithField("job_id", jobID).
		WithField("attempts", s.pollAttempts).
		Warn("transcription job never reached a terminal state")
	return browserTranscription()
}

type transcriptionConfig struct {
	Type                string            `json:"type"`
	TranscriptionConfig map[string]string `json:"transcription_config"`
}

func (s *speechService) submitJob(ctx context.Context, audio []byte, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="data_file"; filename="answer%s"`, extensionForMime(mimeType)))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create audio part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio part: %w", err)
	}

	cfg, err := json.Marshal(transcriptionConfig{
		Type: "transcription",
		TranscriptionConfig: map[string]string{
			"language":        "en",
			"operating_point": "enhanced",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal transcription config: %w", err)
	}
	if err := writer.WriteField("config", string(cfg)); err != nil {
		return "", fmt.Errorf("failed to write config field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/jobs", &body)
	if err != nil {
		return "", fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("job submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("job submission returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode submission response: %w", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("job submission returned no id")
	}

	return parsed.ID, nil
}

func (s *speechService) jobStatus(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("status check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("status check returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Job struct {
			Status string `json:"status"`
		} `json:"job"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode status response: %w", err)
	}

	return parsed.Job.Status, nil
}

// fetchTranscript keeps only "word" tokens and joins each token's first
// alternative with single spaces.
func (s *speechService) fetchTranscript(ctx context.Context, jobID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/jobs/"+jobID+"/transcript", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transcript request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcript fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("transcript fetch returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Results []struct {
			Type         string `json:"type"`
			Alternatives []struct {
				Content string `json:"content"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode transcript: %w", err)
	}

	var words []string
	for _, result := range parsed.Results {
		if result.Type != "word" || len(result.Alternatives) == 0 {
			continue
		}
		words = append(words, result.Alternatives[0].Content)
	}

	return strings.TrimSpace(strings.Join(words, " ")), nil
}

type synthesisRequest struct {
	Text        string `json:"text"`
	AudioFormat struct {
		Type       string `json:"type"`
		SampleRate int    `json:"sample_rate"`
	} `json:"audio_format"`
	VoiceConfig struct {
		Voice        string `json:"voice"`
		AudioProfile string `json:"audio_profile"`
	} `json:"voice_config"`
}

// Synthesize implements SpeechService. One call, no retry; the browser's own
// TTS is always an acceptable substitute.
func (s *speechService) Synthesize(ctx context.Context, text string) SynthesisResult {
	fallback := SynthesisResult{Provider: browserProvider, UseBrowserFallback: true}

	if s.apiKey == "" {
		log.Warn("speech API key not configured, falling back to browser synthesis")
		return fallback
	}

	payload := synthesisRequest{Text: text}
	payload.AudioFormat.Type = "wav"
	payload.AudioFormat.SampleRate = 22050
	payload.VoiceConfig.Voice = "en-US"
	payload.VoiceConfig.AudioProfile = "standard"

	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("failed to marshal synthesis request")
		return fallback
	}

	callCtx, cancel := context.WithTimeout(ctx, s.synthesisTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.baseURL+"/synthesis", bytes.NewReader(body))
	if err != nil {
		log.WithError(err).Warn("failed to build synthesis request")
		return fallback
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("synthesis call failed, falling back to browser synthesis")
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("synthesis call rejected, falling back to browser synthesis")
		return fallback
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil || len(audio) == 0 {
		log.WithError(err).Warn("failed to read synthesis audio")
		return fallback
	}

	return SynthesisResult{Audio: audio, Provider: speechProvider}
}

func extensionForMime(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	switch mimeType {
	case "audio/webm", "video/webm":
		return ".webm"
	case "audio/ogg", "application/ogg":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	default:
		return ".wav"
	}
}
