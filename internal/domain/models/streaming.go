package models

import "time"

type StreamEventType string

const (
	EventAnalysisStarted  StreamEventType = "analysis_started"
	EventAudioExtracted   StreamEventType = "audio_extracted"
	EventTranscriptReady  StreamEventType = "transcript_ready"
	EventSentimentReady   StreamEventType = "sentiment_ready"
	EventEmotionReady     StreamEventType = "emotion_ready"
	EventFacialReady      StreamEventType = "facial_ready"
	EventTimelineFused    StreamEventType = "timeline_fused"
	EventPlotsGenerated   StreamEventType = "plots_generated"
	EventAnalysisProgress StreamEventType = "analysis_progress"

	EventAnalysisCompleted StreamEventType = "analysis_completed"
	EventAnalysisFailed    StreamEventType = "analysis_failed"
)

// StreamMessage is published on the run's pub/sub channel after each
// pipeline stage so a UI can follow progress without polling.
type StreamMessage struct {
	AnalysisID string          `json:"analysis_id"`
	EventType  StreamEventType `json:"event_type"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       interface{}     `json:"data,omitempty"`
	Progress   *ProgressData   `json:"progress,omitempty"`
	Error      *ErrorData      `json:"error,omitempty"`
}

type ProgressData struct {
	Progress     int    `json:"progress"`
	CurrentStage string `json:"current_stage"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage"`
}

// TranscriptData is the payload of EventTranscriptReady.
type TranscriptData struct {
	Text         string `json:"text"`
	SegmentCount int    `json:"segment_count"`
	WordCount    int    `json:"word_count"`
}
