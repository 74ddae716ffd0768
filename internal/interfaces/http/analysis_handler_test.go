package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/domain/services"
)

type fakeService struct {
	startResp  *services.StartAnalysisResponse
	startErr   error
	statusResp *services.AnalysisStatusResponse
	statusErr  error
	result     *models.AnalysisResult
	resultErr  error
}

func (s *fakeService) StartAnalysis(_ context.Context, _ *services.StartAnalysisRequest) (*services.StartAnalysisResponse, error) {
	return s.startResp, s.startErr
}

func (s *fakeService) GetAnalysisStatus(_ context.Context, _ string) (*services.AnalysisStatusResponse, error) {
	return s.statusResp, s.statusErr
}

func (s *fakeService) GetAnalysisResult(_ context.Context, _ string) (*models.AnalysisResult, error) {
	return s.result, s.resultErr
}

func newTestRouter(svc services.AnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAnalysisHandler(svc).RegisterRoutes(router)
	return router
}

func TestStartAnalysisAccepted(t *testing.T) {
	svc := &fakeService{
		startResp: &services.StartAnalysisResponse{
			AnalysisID: "run-1",
			Status:     models.AnalysisStatusPending,
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]string{"video_path": "/data/clip.mp4"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	var resp services.StartAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "run-1", resp.AnalysisID)
}

func TestStartAnalysisMissingBody(t *testing.T) {
	router := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartAnalysisBadPath(t *testing.T) {
	svc := &fakeService{startErr: fmt.Errorf("invalid video path: no such file")}
	router := newTestRouter(svc)

	body, _ := json.Marshal(map[string]string{"video_path": "/missing.mp4"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStatusNotFound(t *testing.T) {
	svc := &fakeService{statusErr: fmt.Errorf("analysis not found: nope")}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analyses/nope", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTimelineInFlight(t *testing.T) {
	svc := &fakeService{resultErr: fmt.Errorf("analysis run-2 is not finished yet (status: processing)")}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analyses/run-2/timeline", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestGetTimelineCompleted(t *testing.T) {
	svc := &fakeService{
		result: &models.AnalysisResult{
			AnalysisID: "run-3",
			TextScores: models.CategoryAverage{
				models.SentimentPositive: 0.55,
				models.SentimentNegative: 0.45,
			},
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analyses/run-3/timeline", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, "run-3", result.AnalysisID)
	require.Equal(t, 0.55, result.TextScores[models.SentimentPositive])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "healthy")
}
