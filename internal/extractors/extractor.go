// Package extractors holds the collaborators that turn raw media into
// signal series: audio extraction, transcription with sentiment, and
// facial emotion. The fusion core only ever sees their outputs.
package extractors

import (
	"context"
	"fmt"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// AudioExtractor produces a mono, 16kHz, 16-bit PCM WAV from a video
// file. Speech emotion models expect exactly this shape.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, outputDir string) (string, error)
}

// Transcription is the combined output of one transcription provider:
// the transcript, its segments, and the two audio-derived series.
type Transcription struct {
	Text          string
	Segments      []models.TranscriptSegment
	TextSentiment *models.SignalSeries
	AudioEmotion  *models.SignalSeries
}

// TranscriptionProvider turns an extracted audio file into a
// Transcription. Implementations differ in where the heavy lifting
// happens (local Whisper CLI vs the AssemblyAI API) but share this
// contract, so the pipeline core stays a single code path.
type TranscriptionProvider interface {
	Analyze(ctx context.Context, audioPath string) (*Transcription, error)
	Name() string
}

// FacialAnalyzer samples one video frame every interval seconds and
// scores it against the 7-category facial taxonomy. Frames where no
// face is detected still yield a neutral entry, so the series is never
// shorter than the number of sampled frames.
type FacialAnalyzer interface {
	AnalyzeVideo(ctx context.Context, videoPath string, intervalSecs int) (*models.SignalSeries, error)
}

// Manager selects the transcription provider for a run.
type Manager struct {
	whisper    TranscriptionProvider
	assemblyai TranscriptionProvider
}

func NewManager(whisper, assemblyai TranscriptionProvider) *Manager {
	return &Manager{whisper: whisper, assemblyai: assemblyai}
}

func (m *Manager) Provider(p models.TranscriptionProvider) (TranscriptionProvider, error) {
	switch p {
	case models.ProviderWhisper, "":
		if m.whisper == nil {
			return nil, fmt.Errorf("whisper provider not configured")
		}
		return m.whisper, nil
	case models.ProviderAssemblyAI:
		if m.assemblyai == nil {
			return nil, fmt.Errorf("assemblyai provider not configured: missing API key")
		}
		return m.assemblyai, nil
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", p)
	}
}
