package extractors

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// FFmpegExtractor shells out to ffmpeg to pull the audio track out of a
// video file as mono 16kHz pcm_s16le, the format the downstream speech
// models expect.
type FFmpegExtractor struct {
	log *logrus.Logger
}

func NewFFmpegExtractor(log *logrus.Logger) *FFmpegExtractor {
	return &FFmpegExtractor{log: log}
}

func (e *FFmpegExtractor) ExtractAudio(ctx context.Context, videoPath, outputDir string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("video file not found: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioFile := filepath.Join(outputDir, base+".wav")

	cmd := exec.CommandContext(ctx,
		"ffmpeg",
		"-i", videoPath,
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		"-v", "quiet",
		audioFile,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		e.log.Errorf("❌ FFmpeg error: %v, output: %s", err, string(output))
		return "", fmt.Errorf("audio extraction failed: %w", err)
	}

	if _, err := os.Stat(audioFile); os.IsNotExist(err) {
		return "", fmt.Errorf("audio file was not created: %s", audioFile)
	}

	e.log.Infof("✅ Audio extraction successful: %s", audioFile)
	return audioFile, nil
}

// CheckFFmpeg verifies ffmpeg is installed and on PATH.
func CheckFFmpeg() error {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH")
	}
	return nil
}
