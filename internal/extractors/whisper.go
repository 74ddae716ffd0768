package extractors

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
)

// WhisperProvider transcribes with the local Whisper CLI and scores
// each utterance with the sentiment sidecar. The audio-emotion series
// is derived from the per-utterance sentiment through the canonical
// sentiment→emotion mapping, since this path has no dedicated voice
// emotion model.
type WhisperProvider struct {
	model     string
	outputDir string
	sentiment *SentimentClient
	log       *logrus.Logger
}

func NewWhisperProvider(model string, sentiment *SentimentClient, log *logrus.Logger) *WhisperProvider {
	return &WhisperProvider{
		model:     model,
		outputDir: "/tmp/whisper-output",
		sentiment: sentiment,
		log:       log,
	}
}

func (p *WhisperProvider) Name() string { return "whisper" }

type whisperOutput struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (p *WhisperProvider) Analyze(ctx context.Context, audioPath string) (*Transcription, error) {
	out, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	segments := make([]models.TranscriptSegment, 0, len(out.Segments))
	for _, s := range out.Segments {
		segments = append(segments, models.TranscriptSegment{
			Text:       strings.TrimSpace(s.Text),
			Start:      s.Start,
			End:        s.End,
			Confidence: 1.0,
		})
	}

	textEntries := make([]models.SeriesEntry, 0, len(segments))
	emotionEntries := make([]models.SeriesEntry, 0, len(segments))
	for _, seg := range segments {
		scores := p.scoreSegment(ctx, seg.Text)
		textEntries = append(textEntries, models.SeriesEntry{
			Timestamp: seg.Midpoint(),
			Scores: models.Scores{
				models.SentimentPositive: scores.Positive,
				models.SentimentNegative: scores.Negative,
			},
		})

		label, confidence := dominantSentiment(scores)
		emotionEntries = append(emotionEntries, models.SeriesEntry{
			Timestamp: seg.Midpoint(),
			Scores:    fusion.SentimentToEmotion(label, confidence),
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
		Text:          strings.TrimSpace(out.Text),
		Segments:      segments,
		TextSentiment: textSeries,
		AudioEmotion:  emotionSeries,
	}, nil
}

// scoreSegment asks the sentiment sidecar for scores, falling back to
// the even split when the sidecar is unavailable so one flaky call does
// not sink the whole run.
func (p *WhisperProvider) scoreSegment(ctx context.Context, text string) SentimentScores {
	if p.sentiment == nil || text == "" {
		return SentimentScores{Positive: 0.5, Negative: 0.5}
	}
	scores, err := p.sentiment.AnalyzeText(ctx, text)
	if err != nil {
		p.log.Warnf("⚠️ Sentiment service failed, using neutral split: %v", err)
		return SentimentScores{Positive: 0.5, Negative: 0.5}
	}
	return *scores
}

func dominantSentiment(s SentimentScores) (string, float64) {
	if s.Negative > s.Positive {
		return models.SentimentNegative, s.Negative
	}
	return models.SentimentPositive, s.Positive
}

func (p *WhisperProvider) transcribe(ctx context.Context, audioPath string) (*whisperOutput, error) {
	p.log.Infof("🎙️ Starting local Whisper transcription for: %s", audioPath)
	if _, err := exec.LookPath("whisper"); err != nil {
		return nil, fmt.Errorf("whisper CLI not found")
	}

	os.MkdirAll(p.outputDir, 0755)

	cmd := exec.CommandContext(ctx,
		"whisper",
		audioPath,
		"--output_format", "json",
		"--output_dir", p.outputDir,
		"--model", p.model,
		"--language", "en",
		"--fp16", "False",
		"--condition_on_previous_text", "False",
	)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("whisper command failed: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	resultPath := filepath.Join(p.outputDir, baseName+".json")

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}
	defer os.Remove(resultPath)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}
	return &out, nil
}

// CheckWhisper reports whether the local Whisper CLI is available.
func CheckWhisper() bool {
	_, err := exec.LookPath("whisper")
	return err == nil
}
