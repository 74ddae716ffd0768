package models

import (
	"time"
)

type AnalysisStatus string

const (
	AnalysisStatusPending    AnalysisStatus = "pending"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusCompleted  AnalysisStatus = "completed"
	AnalysisStatusFailed     AnalysisStatus = "failed"
)

// TranscriptionProvider selects which collaborator produces the
// transcript and sentiment streams for a run.
type TranscriptionProvider string

const (
	ProviderWhisper    TranscriptionProvider = "whisper"
	ProviderAssemblyAI TranscriptionProvider = "assemblyai"
)

// AnalysisOptions are the per-run knobs accepted by the API and CLI.
type AnalysisOptions struct {
	Provider            TranscriptionProvider `json:"provider"`
	EnableFacial        bool                  `json:"enable_facial"`
	FacialIntervalSecs  int                   `json:"facial_interval_seconds"`
	OutputDir           string                `json:"output_dir"`
	GeneratePlots       bool                  `json:"generate_plots"`
	Language            string                `json:"language"`
}

// VideoAnalysis is the run record tracked while a job moves through the
// pipeline. It lives in the result store for the duration of one run;
// historical persistence is out of scope.
type VideoAnalysis struct {
	ID          string          `json:"id"`
	VideoPath   string          `json:"video_path"`
	Status      AnalysisStatus  `json:"status"`
	Stage       string          `json:"processing_stage"`
	Progress    int             `json:"progress_percentage"`
	Options     AnalysisOptions `json:"options"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// AnalysisResult is the plain-data output of one completed run,
// consumed by the reporting layer and the API. Scores are the headline
// time-means; the Timeline carries the full native-cadence series.
type AnalysisResult struct {
	AnalysisID   string          `json:"analysis_id"`
	Transcript   string          `json:"transcript"`
	TextScores   CategoryAverage `json:"text_scores"`
	AudioScores  CategoryAverage `json:"audio_scores"`
	FacialScores CategoryAverage `json:"facial_scores,omitempty"`
	Timeline     *Timeline       `json:"timeline"`
	PlotPaths    []string        `json:"plot_paths,omitempty"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
