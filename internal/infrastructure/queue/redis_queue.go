package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

const analysisQueueKey = "analysis_queue"

type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(redisClient *redis.Client) *RedisQueue {
	return &RedisQueue{client: redisClient}
}

// AnalysisJob is the unit of work a worker dequeues: one video to
// analyze end to end.
type AnalysisJob struct {
	AnalysisID string                 `json:"analysis_id"`
	VideoPath  string                 `json:"video_path"`
	Options    models.AnalysisOptions `json:"options"`
	EnqueuedAt time.Time              `json:"enqueued_at"`
}

func (q *RedisQueue) EnqueueAnalysis(ctx context.Context, job AnalysisJob) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.client.LPush(ctx, analysisQueueKey, jobData).Err()
}

func (q *RedisQueue) DequeueAnalysis(ctx context.Context) (*AnalysisJob, error) {
	result, err := q.client.BRPop(ctx, 30*time.Second, analysisQueueKey).Result()
	if err != nil {
		return nil, err
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid queue result")
	}

	var job AnalysisJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return &job, nil
}

// PublishUpdate sends a stage event on the run's pub/sub channel so a
// UI can follow progress without polling the API.
func (q *RedisQueue) PublishUpdate(ctx context.Context, msg *models.StreamMessage) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	msgData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	channel := fmt.Sprintf("analysis_updates:%s", msg.AnalysisID)
	return q.client.Publish(ctx, channel, msgData).Err()
}
