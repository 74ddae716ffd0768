package repositories

import (
	"context"
	"time"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// AnalysisRepository tracks the run records and results of in-flight
// analyses. The backing store is ephemeral (TTL-bounded); historical
// persistence is deliberately out of scope.
type AnalysisRepository interface {
	// run records
	CreateAnalysis(ctx context.Context, analysis *models.VideoAnalysis) error
	GetAnalysisByID(ctx context.Context, id string) (*models.VideoAnalysis, error)
	UpdateAnalysisStatus(ctx context.Context, id string, status models.AnalysisStatus, stage string, progress int) error
	UpdateAnalysisError(ctx context.Context, id string, errMsg string) error
	UpdateAnalysisCompletedAt(ctx context.Context, id string, completedAt *time.Time) error

	// results
	SaveResult(ctx context.Context, result *models.AnalysisResult) error
	GetResult(ctx context.Context, analysisID string) (*models.AnalysisResult, error)
}
