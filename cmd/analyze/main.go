// Command analyze runs the full pipeline on one local video without
// the API or the queue: extract, transcribe, fuse, report.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boemer00/cooper-video-analysis/internal/config"
	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/extractors"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
	"github.com/boemer00/cooper-video-analysis/internal/reporting"
)

var (
	flagProvider       string
	flagOutputDir      string
	flagAPIKey         string
	flagModel          string
	flagFacial         bool
	flagFacialInterval int
	flagNoPlots        bool
)

func main() {
	root := &cobra.Command{
		Use:   "cooper-analyze <video>",
		Short: "Analyze the sentiment and emotion of a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
		SilenceUsage: true,
	}

	root.Flags().StringVar(&flagProvider, "provider", "whisper", "transcription provider (whisper or assemblyai)")
	root.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "output", "directory for plots and the result JSON")
	root.Flags().StringVar(&flagAPIKey, "api-key", "", "AssemblyAI API key (defaults to ASSEMBLYAI_API_KEY)")
	root.Flags().StringVar(&flagModel, "model", "", "whisper model size (defaults to WHISPER_MODEL)")
	root.Flags().BoolVar(&flagFacial, "facial", false, "enable facial emotion analysis")
	root.Flags().IntVar(&flagFacialInterval, "facial-interval", 1, "seconds between sampled video frames")
	root.Flags().BoolVar(&flagNoPlots, "no-plots", false, "skip chart generation")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, videoPath string) error {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("video file not accessible: %w", err)
	}

	provider, err := buildProvider(cfg, log)
	if err != nil {
		return err
	}

	if err := extractors.CheckFFmpeg(); err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp(cfg.Analysis.TempDir, "analyze-*")
	if err != nil {
		tempDir, err = os.MkdirTemp("", "analyze-*")
		if err != nil {
			return err
		}
	}
	defer os.RemoveAll(tempDir)

	audioPath, err := extractors.NewFFmpegExtractor(log).ExtractAudio(ctx, videoPath, tempDir)
	if err != nil {
		return err
	}

	transcription, err := provider.Analyze(ctx, audioPath)
	if err != nil {
		return err
	}

	var facialSeries *models.SignalSeries
	if flagFacial {
		if cfg.Services.FacialEmotion.URL == "" {
			return fmt.Errorf("facial analysis requires a facial_emotion service in the services config")
		}
		facial := extractors.NewFacialClient(cfg.Services.FacialEmotion.URL, log)
		facialSeries, err = facial.AnalyzeVideo(ctx, videoPath, flagFacialInterval)
		if err != nil {
			log.Warnf("⚠️ Facial analysis failed, continuing without it: %v", err)
			facialSeries = nil
		}
	}

	timeline := fusion.Fuse(transcription.TextSentiment, transcription.AudioEmotion, transcription.Segments, facialSeries)

	result := &models.AnalysisResult{
		Transcript:  transcription.Text,
		TextScores:  fusion.Average(timeline.TextSentiment),
		AudioScores: fusion.Average(timeline.AudioEmotion),
		Timeline:    timeline,
		GeneratedAt: time.Now(),
	}
	if timeline.HasFacial() {
		result.FacialScores = fusion.Average(timeline.FacialEmotion)
	}

	outputDir := flagOutputDir
	if !flagNoPlots && cfg.Services.Visualization.URL != "" {
		viz := reporting.NewVizClient(cfg.Services.Visualization.URL)
		if path, err := viz.GenerateTimelinePlot(ctx, reporting.BuildTimelinePlot(timeline), outputDir); err != nil {
			log.Warnf("⚠️ Timeline plot failed: %v", err)
		} else {
			result.PlotPaths = append(result.PlotPaths, path)
		}
		if path, err := viz.GenerateDistributionPlot(ctx, reporting.BuildDistributionPlot(timeline), outputDir); err != nil {
			log.Warnf("⚠️ Distribution plot failed: %v", err)
		} else {
			result.PlotPaths = append(result.PlotPaths, path)
		}
	}

	resultPath, err := reporting.WriteResultJSON(result, outputDir)
	if err != nil {
		return err
	}

	fmt.Println(reporting.Summary(result))
	fmt.Printf("\nResult written to %s\n", resultPath)
	for _, p := range result.PlotPaths {
		fmt.Printf("Plot written to %s\n", p)
	}
	return nil
}

func buildProvider(cfg *config.Config, log *logrus.Logger) (extractors.TranscriptionProvider, error) {
	switch models.TranscriptionProvider(flagProvider) {
	case models.ProviderWhisper:
		if !extractors.CheckWhisper() {
			return nil, fmt.Errorf("whisper CLI not found in PATH")
		}
		model := flagModel
		if model == "" {
			model = cfg.Analysis.WhisperModel
		}
		var sentiment *extractors.SentimentClient
		if cfg.Services.Sentiment.URL != "" {
			sentiment = extractors.NewSentimentClient(cfg.Services.Sentiment.URL)
		}
		return extractors.NewWhisperProvider(model, sentiment, log), nil

	case models.ProviderAssemblyAI:
		apiKey := flagAPIKey
		if apiKey == "" {
			apiKey = cfg.Analysis.AssemblyAIKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("AssemblyAI API key required (use --api-key or ASSEMBLYAI_API_KEY)")
		}
		return extractors.NewAssemblyAIProvider(apiKey, log), nil

	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", flagProvider)
	}
}
