package extractors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// FacialClient talks to the facial-emotion sidecar, which samples one
// frame every N seconds and scores each against the 7-category
// taxonomy. Frames without a detectable face come back (or are filled
// in here) as neutral entries, so the series covers every sampled
// frame.
type FacialClient struct {
	baseURL string
	c       *http.Client
	log     *logrus.Logger
}

type facialRequest struct {
	VideoPath       string `json:"video_path"`
	IntervalSeconds int    `json:"interval_seconds"`
}

type facialFrame struct {
	Timestamp float64            `json:"timestamp"`
	Scores    map[string]float64 `json:"scores"`
	Detected  bool               `json:"face_detected"`
}

type facialResponse struct {
	Frames []facialFrame `json:"frames"`
}

func NewFacialClient(baseURL string, log *logrus.Logger) *FacialClient {
	return &FacialClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       &http.Client{Timeout: 30 * time.Minute},
		log:     log,
	}
}

func (f *FacialClient) AnalyzeVideo(ctx context.Context, videoPath string, intervalSecs int) (*models.SignalSeries, error) {
	if intervalSecs < 1 {
		intervalSecs = 1
	}

	b, err := json.Marshal(facialRequest{VideoPath: videoPath, IntervalSeconds: intervalSecs})
	if err != nil {
		return nil, fmt.Errorf("facial marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/analyze-video", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("facial %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out facialResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("facial decode: %w", err)
	}

	entries := make([]models.SeriesEntry, 0, len(out.Frames))
	for _, frame := range out.Frames {
		entries = append(entries, models.SeriesEntry{
			Timestamp: frame.Timestamp,
			Scores:    normalizeFacialScores(frame.Scores),
		})
	}

	series, err := models.NewSignalSeries(models.SeriesFacialEmotion, entries)
	if err != nil {
		return nil, fmt.Errorf("build facial series: %w", err)
	}

	f.log.Infof("👤 Facial analysis complete: %d sampled frames", series.Len())
	return series, nil
}

// normalizeFacialScores fits a frame's scores onto the full 7-category
// taxonomy. A frame with no scores at all (detection failed and the
// sidecar sent nothing useful) becomes the neutral fallback entry.
func normalizeFacialScores(raw map[string]float64) models.Scores {
	scores := make(models.Scores, len(models.FacialEmotionCategories))
	for _, c := range models.FacialEmotionCategories {
		scores[c] = 0
	}

	total := 0.0
	for k, v := range raw {
		key := strings.ToLower(k)
		if _, ok := scores[key]; ok {
			scores[key] = v
			total += v
		}
	}

	if total == 0 {
		scores[models.EmotionNeutral] = 1.0
	}
	return scores
}
