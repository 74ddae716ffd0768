// Package store implements the analysis repository on redis. Records
// carry a TTL so a finished run's status and result stay retrievable
// for a while without turning redis into a historical archive.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/infrastructure/cache"
)

var ErrNotFound = errors.New("analysis not found")

type RedisStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisStore(client *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func analysisKey(id string) string { return "analysis:" + id }
func resultKey(id string) string   { return "analysis_result:" + id }

func (s *RedisStore) CreateAnalysis(ctx context.Context, analysis *models.VideoAnalysis) error {
	return s.setJSON(ctx, analysisKey(analysis.ID), analysis)
}

func (s *RedisStore) GetAnalysisByID(ctx context.Context, id string) (*models.VideoAnalysis, error) {
	var analysis models.VideoAnalysis
	if err := s.getJSON(ctx, analysisKey(id), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *RedisStore) UpdateAnalysisStatus(ctx context.Context, id string, status models.AnalysisStatus, stage string, progress int) error {
	analysis, err := s.GetAnalysisByID(ctx, id)
	if err != nil {
		return err
	}

	analysis.Status = status
	analysis.Stage = stage
	analysis.Progress = progress
	analysis.UpdatedAt = time.Now()
	return s.setJSON(ctx, analysisKey(id), analysis)
}

func (s *RedisStore) UpdateAnalysisError(ctx context.Context, id string, errMsg string) error {
	analysis, err := s.GetAnalysisByID(ctx, id)
	if err != nil {
		return err
	}

	analysis.Status = models.AnalysisStatusFailed
	analysis.Error = errMsg
	analysis.UpdatedAt = time.Now()
	return s.setJSON(ctx, analysisKey(id), analysis)
}

func (s *RedisStore) UpdateAnalysisCompletedAt(ctx context.Context, id string, completedAt *time.Time) error {
	analysis, err := s.GetAnalysisByID(ctx, id)
	if err != nil {
		return err
	}

	analysis.CompletedAt = completedAt
	analysis.UpdatedAt = time.Now()
	return s.setJSON(ctx, analysisKey(id), analysis)
}

func (s *RedisStore) SaveResult(ctx context.Context, result *models.AnalysisResult) error {
	return s.setJSON(ctx, resultKey(result.AnalysisID), result)
}

func (s *RedisStore) GetResult(ctx context.Context, analysisID string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := s.getJSON(ctx, resultKey(analysisID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RedisStore) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *RedisStore) getJSON(ctx context.Context, key string, v interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
