package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/config"
	"github.com/boemer00/cooper-video-analysis/internal/extractors"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/cache"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/queue"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/store"
	"github.com/boemer00/cooper-video-analysis/internal/reporting"
	"github.com/boemer00/cooper-video-analysis/internal/workers/analyzer"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	repo := store.NewRedisStore(redisClient, time.Duration(cfg.Analysis.ResultTTLHours)*time.Hour)
	jobQueue := queue.NewRedisQueue(redisClient.Client)

	var sentiment *extractors.SentimentClient
	if cfg.Services.Sentiment.URL != "" {
		sentiment = extractors.NewSentimentClient(cfg.Services.Sentiment.URL)
	}

	whisper := extractors.NewWhisperProvider(cfg.Analysis.WhisperModel, sentiment, log)

	var assemblyai extractors.TranscriptionProvider
	if cfg.Analysis.AssemblyAIKey != "" {
		assemblyai = extractors.NewAssemblyAIProvider(cfg.Analysis.AssemblyAIKey, log)
	}

	opts := analyzer.Options{
		TempDir:     cfg.Analysis.TempDir,
		WorkerCount: cfg.Analysis.WorkerCount,
	}
	if cfg.Services.FacialEmotion.URL != "" {
		opts.Facial = extractors.NewFacialClient(cfg.Services.FacialEmotion.URL, log)
	}
	if cfg.Services.Visualization.URL != "" {
		opts.Viz = reporting.NewVizClient(cfg.Services.Visualization.URL)
	}

	processor := analyzer.NewProcessor(
		repo,
		jobQueue,
		extractors.NewFFmpegExtractor(log),
		extractors.NewManager(whisper, assemblyai),
		opts,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		cancel()
	}()

	log.Infof("🚀 Starting %d analysis workers", cfg.Analysis.WorkerCount)
	if err := processor.Run(ctx); err != nil {
		log.Fatalf("Worker pool failed: %v", err)
	}
}
