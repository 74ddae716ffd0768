package extractors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
)

const assemblyAIBaseURL = "https://api.assemblyai.com/v2"

// AssemblyAIProvider delegates transcription, speaker labels and
// sentiment analysis to the AssemblyAI API: upload the audio, create a
// transcript job, poll until it completes.
type AssemblyAIProvider struct {
	apiKey       string
	baseURL      string
	c            *http.Client
	pollInterval time.Duration
	log          *logrus.Logger
}

func NewAssemblyAIProvider(apiKey string, log *logrus.Logger) *AssemblyAIProvider {
	return &AssemblyAIProvider{
		apiKey:       apiKey,
		baseURL:      assemblyAIBaseURL,
		c:            &http.Client{Timeout: 60 * time.Second},
		pollInterval: 2 * time.Second,
		log:          log,
	}
}

func (p *AssemblyAIProvider) Name() string { return "assemblyai" }

type aaiUtterance struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Speaker    string  `json:"speaker"`
	Confidence float64 `json:"confidence"`
}

type aaiSentimentResult struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type aaiTranscript struct {
	ID               string               `json:"id"`
	Status           string               `json:"status"`
	Text             string               `json:"text"`
	Error            string               `json:"error,omitempty"`
	Utterances       []aaiUtterance       `json:"utterances"`
	SentimentResults []aaiSentimentResult `json:"sentiment_analysis_results"`
}

func (p *AssemblyAIProvider) Analyze(ctx context.Context, audioPath string) (*Transcription, error) {
	p.log.Infof("📤 Uploading audio to AssemblyAI: %s", audioPath)
	audioURL, err := p.upload(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("assemblyai upload: %w", err)
	}

	transcriptID, err := p.createTranscript(ctx, audioURL)
	if err != nil {
		return nil, fmt.Errorf("assemblyai create transcript: %w", err)
	}

	transcript, err := p.poll(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	p.log.Infof("✅ AssemblyAI transcription complete: %d utterances, %d sentiment results",
		len(transcript.Utterances), len(transcript.SentimentResults))

	return p.buildTranscription(transcript)
}

func (p *AssemblyAIProvider) buildTranscription(t *aaiTranscript) (*Transcription, error) {
	segments := make([]models.TranscriptSegment, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		segments = append(segments, models.TranscriptSegment{
			Text:       u.Text,
			Start:      float64(u.Start) / 1000,
			End:        float64(u.End) / 1000,
			Speaker:    u.Speaker,
			Confidence: u.Confidence,
		})
	}

	// TODO: wire sentiment_analysis_results into the text series once
	// the intended behavior is confirmed. For now every utterance keeps
	// the uniform even split while the real sentiment signal feeds the
	// emotion series below; changing this shifts downstream averages.
	textEntries := make([]models.SeriesEntry, 0, len(segments))
	for _, seg := range segments {
		textEntries = append(textEntries, models.SeriesEntry{
			Timestamp: seg.Midpoint(),
			Scores: models.Scores{
				models.SentimentPositive: 0.5,
				models.SentimentNegative: 0.5,
			},
		})
	}

	emotionEntries := make([]models.SeriesEntry, 0, len(t.SentimentResults))
	for _, r := range t.SentimentResults {
		midpoint := float64(r.Start+r.End) / 2000
		emotionEntries = append(emotionEntries, models.SeriesEntry{
			Timestamp: midpoint,
			Scores:    fusion.SentimentToEmotion(r.Sentiment, r.Confidence),
		})
	}

	textSeries, err := models.NewSignalSeries(models.SeriesTextSentiment, textEntries)
	if err != nil {
		return nil, fmt.Errorf("build sentiment series: %w", err)
	}
	emotionSeries, err := models.NewSignalSeries(models.SeriesAudioEmotion, emotionEntries)
	if err != nil {
		return nil, fmt.Errorf("build emotion series: %w", err)
	}

	return &Transcription{
		Text:          t.Text,
		Segments:      segments,
		TextSentiment: textSeries,
		AudioEmotion:  emotionSeries,
	}, nil
}

func (p *AssemblyAIProvider) upload(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/upload", file)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("upload %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.UploadURL, nil
}

func (p *AssemblyAIProvider) createTranscript(ctx context.Context, audioURL string) (string, error) {
	body := map[string]interface{}{
		"audio_url":          audioURL,
		"speaker_labels":     true,
		"sentiment_analysis": true,
		"language_code":      "en",
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/transcript", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("create transcript %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out aaiTranscript
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (p *AssemblyAIProvider) poll(ctx context.Context, transcriptID string) (*aaiTranscript, error) {
	for {
		transcript, err := p.getTranscript(ctx, transcriptID)
		if err != nil {
			return nil, err
		}

		switch transcript.Status {
		case "completed":
			return transcript, nil
		case "error":
			return nil, fmt.Errorf("assemblyai transcription failed: %s", transcript.Error)
		}

		p.log.Debugf("Transcription status: %s", transcript.Status)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}

func (p *AssemblyAIProvider) getTranscript(ctx context.Context, transcriptID string) (*aaiTranscript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/transcript/"+transcriptID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("get transcript %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out aaiTranscript
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
