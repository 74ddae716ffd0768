package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/domain/repositories"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/queue"
)

// AnalysisQueue is the slice of the job queue the service needs:
// handing a run to the worker pool. Satisfied by *queue.RedisQueue.
type AnalysisQueue interface {
	EnqueueAnalysis(ctx context.Context, job queue.AnalysisJob) error
}

type AnalysisService interface {
	StartAnalysis(ctx context.Context, req *StartAnalysisRequest) (*StartAnalysisResponse, error)
	GetAnalysisStatus(ctx context.Context, analysisID string) (*AnalysisStatusResponse, error)
	GetAnalysisResult(ctx context.Context, analysisID string) (*models.AnalysisResult, error)
}

type StartAnalysisRequest struct {
	VideoPath string                  `json:"video_path" binding:"required"`
	Options   *models.AnalysisOptions `json:"options"`
}

type StartAnalysisResponse struct {
	AnalysisID    string                `json:"analysis_id"`
	Status        models.AnalysisStatus `json:"status"`
	Message       string                `json:"message"`
	StreamChannel string                `json:"stream_channel"`
}

type AnalysisStatusResponse struct {
	AnalysisID      string                `json:"analysis_id"`
	Status          models.AnalysisStatus `json:"status"`
	CurrentStage    string                `json:"current_stage"`
	ProgressPercent int                   `json:"progress_percentage"`
	Error           string                `json:"error,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	LastUpdated     time.Time             `json:"last_updated"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
}

type analysisService struct {
	repo            repositories.AnalysisRepository
	queue           AnalysisQueue
	defaultInterval int
	defaultOutput   string
	log             *logrus.Logger
}

func NewAnalysisService(repo repositories.AnalysisRepository, q AnalysisQueue, defaultFacialInterval int, defaultOutputDir string, log *logrus.Logger) AnalysisService {
	return &analysisService{
		repo:            repo,
		queue:           q,
		defaultInterval: defaultFacialInterval,
		defaultOutput:   defaultOutputDir,
		log:             log,
	}
}

func (s *analysisService) StartAnalysis(ctx context.Context, req *StartAnalysisRequest) (*StartAnalysisResponse, error) {
	if err := validateVideoPath(req.VideoPath); err != nil {
		return nil, fmt.Errorf("invalid video path: %w", err)
	}

	opts := models.AnalysisOptions{GeneratePlots: true}
	if req.Options != nil {
		opts = *req.Options
	}
	s.applyDefaults(&opts)
	if err := validateProvider(opts.Provider); err != nil {
		return nil, err
	}

	analysisID := uuid.New().String()
	now := time.Now()

	analysis := &models.VideoAnalysis{
		ID:        analysisID,
		VideoPath: req.VideoPath,
		Status:    models.AnalysisStatusPending,
		Stage:     "queued",
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to create analysis record: %w", err)
	}

	job := queue.AnalysisJob{
		AnalysisID: analysisID,
		VideoPath:  req.VideoPath,
		Options:    opts,
		EnqueuedAt: now,
	}
	if err := s.queue.EnqueueAnalysis(ctx, job); err != nil {
		s.log.Errorf("❌ Failed to enqueue analysis %s: %v", analysisID, err)
		return nil, fmt.Errorf("failed to enqueue analysis: %w", err)
	}

	s.log.Infof("📤 Analysis %s queued for %s", analysisID, req.VideoPath)

	return &StartAnalysisResponse{
		AnalysisID:    analysisID,
		Status:        models.AnalysisStatusPending,
		Message:       "Analysis queued",
		StreamChannel: fmt.Sprintf("analysis_updates:%s", analysisID),
	}, nil
}

func (s *analysisService) GetAnalysisStatus(ctx context.Context, analysisID string) (*AnalysisStatusResponse, error) {
	analysis, err := s.repo.GetAnalysisByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	return &AnalysisStatusResponse{
		AnalysisID:      analysis.ID,
		Status:          analysis.Status,
		CurrentStage:    analysis.Stage,
		ProgressPercent: analysis.Progress,
		Error:           analysis.Error,
		CreatedAt:       analysis.CreatedAt,
		LastUpdated:     analysis.UpdatedAt,
		CompletedAt:     analysis.CompletedAt,
	}, nil
}

func (s *analysisService) GetAnalysisResult(ctx context.Context, analysisID string) (*models.AnalysisResult, error) {
	analysis, err := s.repo.GetAnalysisByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	switch analysis.Status {
	case models.AnalysisStatusCompleted:
		return s.repo.GetResult(ctx, analysisID)
	case models.AnalysisStatusFailed:
		return nil, fmt.Errorf("analysis %s failed: %s", analysisID, analysis.Error)
	default:
		return nil, fmt.Errorf("analysis %s is not finished yet (status: %s)", analysisID, analysis.Status)
	}
}

func (s *analysisService) applyDefaults(opts *models.AnalysisOptions) {
	if opts.Provider == "" {
		opts.Provider = models.ProviderWhisper
	}
	if opts.FacialIntervalSecs <= 0 {
		opts.FacialIntervalSecs = s.defaultInterval
	}
	if opts.OutputDir == "" {
		opts.OutputDir = s.defaultOutput
	}
	if opts.Language == "" {
		opts.Language = "en"
	}
}

func validateVideoPath(path string) error {
	if path == "" {
		return fmt.Errorf("video path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("video file not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("video path is a directory")
	}
	return nil
}

func validateProvider(p models.TranscriptionProvider) error {
	switch p {
	case models.ProviderWhisper, models.ProviderAssemblyAI:
		return nil
	default:
		return fmt.Errorf("unsupported transcription provider: %s", p)
	}
}
