// Package analyzer runs the analysis pipeline: workers pull queued
// jobs, drive the extractor collaborators, fuse the resulting series
// and store the outcome.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/domain/repositories"
	"github.com/boemer00/cooper-video-analysis/internal/extractors"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/queue"
	"github.com/boemer00/cooper-video-analysis/internal/reporting"
)

type Processor struct {
	repo        repositories.AnalysisRepository
	queue       *queue.RedisQueue
	extractor   extractors.AudioExtractor
	providers   *extractors.Manager
	facial      extractors.FacialAnalyzer
	viz         *reporting.VizClient
	tempDir     string
	workerCount int
	log         *logrus.Logger
}

type Options struct {
	TempDir     string
	WorkerCount int
	Facial      extractors.FacialAnalyzer
	Viz         *reporting.VizClient
}

func NewProcessor(repo repositories.AnalysisRepository, q *queue.RedisQueue, extractor extractors.AudioExtractor, providers *extractors.Manager, opts Options, log *logrus.Logger) *Processor {
	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = "/tmp/cooper-analysis"
	}
	os.MkdirAll(tempDir, 0o755)

	workerCount := opts.WorkerCount
	if workerCount <= 0 {
		workerCount = 4
	}

	return &Processor{
		repo:        repo,
		queue:       q,
		extractor:   extractor,
		providers:   providers,
		facial:      opts.Facial,
		viz:         opts.Viz,
		tempDir:     tempDir,
		workerCount: workerCount,
		log:         log,
	}
}

func (p *Processor) Run(ctx context.Context) error {
	if err := p.validateSystemRequirements(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	for i := 0; i < p.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.workerLoop(ctx, workerID)
		}(i + 1)
	}

	<-ctx.Done()
	p.log.Info("🛑 Shutting down workers...")
	wg.Wait()
	p.log.Info("✅ All workers stopped")
	return nil
}

func (p *Processor) validateSystemRequirements() error {
	if err := extractors.CheckFFmpeg(); err != nil {
		return fmt.Errorf("system requirements not met: %w", err)
	}
	if !extractors.CheckWhisper() {
		p.log.Warn("⚠️ whisper CLI not found, only the AssemblyAI provider will work")
	}
	return nil
}

func (p *Processor) workerLoop(ctx context.Context, workerID int) {
	p.log.Infof("🔥 Worker %d ready", workerID)
	for {
		select {
		case <-ctx.Done():
			p.log.Infof("🔴 Worker %d shutting down", workerID)
			return
		default:
			job, err := p.queue.DequeueAnalysis(ctx)
			if err != nil {
				if !strings.Contains(err.Error(), "redis: nil") && ctx.Err() == nil {
					p.log.Errorf("❌ Worker %d queue error: %v", workerID, err)
				}
				time.Sleep(500 * time.Millisecond)
				continue
			}

			start := time.Now()
			p.log.Infof("⚡ Worker %d: Processing analysis %s", workerID, job.AnalysisID)
			p.processAnalysis(ctx, job)
			p.log.Infof("✅ Worker %d: Finished analysis %s in %v", workerID, job.AnalysisID, time.Since(start))
		}
	}
}

func (p *Processor) processAnalysis(ctx context.Context, job *queue.AnalysisJob) {
	p.publishEvent(ctx, job.AnalysisID, models.EventAnalysisStarted, 0, "starting", nil)
	p.updateStatus(ctx, job.AnalysisID, "extracting_audio", 10)

	audioPath, err := p.extractor.ExtractAudio(ctx, job.VideoPath, p.tempDir)
	if err != nil {
		p.handleError(ctx, job.AnalysisID, "audio_extraction", err)
		return
	}
	defer os.Remove(audioPath)
	p.publishEvent(ctx, job.AnalysisID, models.EventAudioExtracted, 20, "extracting_audio", nil)

	provider, err := p.providers.Provider(job.Options.Provider)
	if err != nil {
		p.handleError(ctx, job.AnalysisID, "provider_selection", err)
		return
	}

	p.updateStatus(ctx, job.AnalysisID, "transcribing", 35)
	transcription, err := provider.Analyze(ctx, audioPath)
	if err != nil {
		p.handleError(ctx, job.AnalysisID, "transcription", err)
		return
	}

	p.publishEvent(ctx, job.AnalysisID, models.EventTranscriptReady, 50, "transcribing", &models.TranscriptData{
		Text:         transcription.Text,
		SegmentCount: len(transcription.Segments),
		WordCount:    len(strings.Fields(transcription.Text)),
	})
	p.publishEvent(ctx, job.AnalysisID, models.EventSentimentReady, 55, "scoring_sentiment", nil)
	p.publishEvent(ctx, job.AnalysisID, models.EventEmotionReady, 60, "scoring_emotion", nil)

	facialSeries := p.analyzeFaces(ctx, job)

	p.updateStatus(ctx, job.AnalysisID, "fusing_timeline", 75)
	timeline := fusion.Fuse(transcription.TextSentiment, transcription.AudioEmotion, transcription.Segments, facialSeries)
	p.publishEvent(ctx, job.AnalysisID, models.EventTimelineFused, 78, "fusing_timeline", nil)

	result := &models.AnalysisResult{
		AnalysisID:  job.AnalysisID,
		Transcript:  transcription.Text,
		TextScores:  fusion.Average(timeline.TextSentiment),
		AudioScores: fusion.Average(timeline.AudioEmotion),
		Timeline:    timeline,
		GeneratedAt: time.Now(),
	}
	if timeline.HasFacial() {
		result.FacialScores = fusion.Average(timeline.FacialEmotion)
	}

	p.generateOutputs(ctx, job, timeline, result)

	if err := p.repo.SaveResult(ctx, result); err != nil {
		p.handleError(ctx, job.AnalysisID, "save_result", err)
		return
	}

	now := time.Now()
	p.repo.UpdateAnalysisStatus(ctx, job.AnalysisID, models.AnalysisStatusCompleted, "completed", 100)
	p.repo.UpdateAnalysisCompletedAt(ctx, job.AnalysisID, &now)
	p.publishEvent(ctx, job.AnalysisID, models.EventAnalysisCompleted, 100, "completed", map[string]interface{}{
		"text_scores":  result.TextScores,
		"audio_scores": result.AudioScores,
	})
}

// analyzeFaces is best effort: a failing facial sidecar degrades the
// run to audio and text only instead of failing it.
func (p *Processor) analyzeFaces(ctx context.Context, job *queue.AnalysisJob) *models.SignalSeries {
	if !job.Options.EnableFacial || p.facial == nil {
		return nil
	}

	p.updateStatus(ctx, job.AnalysisID, "facial_analysis", 65)
	series, err := p.facial.AnalyzeVideo(ctx, job.VideoPath, job.Options.FacialIntervalSecs)
	if err != nil {
		p.log.Warnf("⚠️ Facial analysis failed for %s, continuing without it: %v", job.AnalysisID, err)
		return nil
	}

	p.publishEvent(ctx, job.AnalysisID, models.EventFacialReady, 70, "facial_analysis", nil)
	return series
}

// generateOutputs writes the plots and the result JSON into the run's
// output directory. Failures here are logged, not fatal: the numeric
// result still exists in the store.
func (p *Processor) generateOutputs(ctx context.Context, job *queue.AnalysisJob, timeline *models.Timeline, result *models.AnalysisResult) {
	outputDir := filepath.Join(job.Options.OutputDir, job.AnalysisID)

	if job.Options.GeneratePlots && p.viz != nil {
		p.updateStatus(ctx, job.AnalysisID, "generating_plots", 85)

		if path, err := p.viz.GenerateTimelinePlot(ctx, reporting.BuildTimelinePlot(timeline), outputDir); err != nil {
			p.log.Warnf("⚠️ Timeline plot failed for %s: %v", job.AnalysisID, err)
		} else {
			result.PlotPaths = append(result.PlotPaths, path)
		}

		if path, err := p.viz.GenerateDistributionPlot(ctx, reporting.BuildDistributionPlot(timeline), outputDir); err != nil {
			p.log.Warnf("⚠️ Distribution plot failed for %s: %v", job.AnalysisID, err)
		} else {
			result.PlotPaths = append(result.PlotPaths, path)
		}

		if len(result.PlotPaths) > 0 {
			p.publishEvent(ctx, job.AnalysisID, models.EventPlotsGenerated, 90, "generating_plots", result.PlotPaths)
		}
	}

	if _, err := reporting.WriteResultJSON(result, outputDir); err != nil {
		p.log.Warnf("⚠️ Failed to write result JSON for %s: %v", job.AnalysisID, err)
	}
}

func (p *Processor) handleError(ctx context.Context, analysisID, stage string, err error) {
	p.log.Errorf("❌ Analysis %s failed at %s: %v", analysisID, stage, err)

	if updateErr := p.repo.UpdateAnalysisError(ctx, analysisID, err.Error()); updateErr != nil {
		p.log.Errorf("❌ Failed to record error for %s: %v", analysisID, updateErr)
	}

	p.publishFailure(ctx, analysisID, stage, err)
}

func (p *Processor) updateStatus(ctx context.Context, analysisID, stage string, progress int) {
	if err := p.repo.UpdateAnalysisStatus(ctx, analysisID, models.AnalysisStatusProcessing, stage, progress); err != nil {
		p.log.Errorf("❌ Failed to update status for %s: %v", analysisID, err)
	}
	p.publishEvent(ctx, analysisID, models.EventAnalysisProgress, progress, stage, nil)
}

func (p *Processor) publishEvent(ctx context.Context, analysisID string, event models.StreamEventType, progress int, stage string, data interface{}) {
	msg := &models.StreamMessage{
		AnalysisID: analysisID,
		EventType:  event,
		Data:       data,
		Progress:   &models.ProgressData{Progress: progress, CurrentStage: stage},
	}
	if err := p.queue.PublishUpdate(ctx, msg); err != nil {
		p.log.Debugf("Stream publish failed for %s: %v", analysisID, err)
	}
}

func (p *Processor) publishFailure(ctx context.Context, analysisID, stage string, cause error) {
	msg := &models.StreamMessage{
		AnalysisID: analysisID,
		EventType:  models.EventAnalysisFailed,
		Error: &models.ErrorData{
			Code:    "processing_failed",
			Message: cause.Error(),
			Stage:   stage,
		},
	}
	if err := p.queue.PublishUpdate(ctx, msg); err != nil {
		p.log.Debugf("Stream publish failed for %s: %v", analysisID, err)
	}
}
