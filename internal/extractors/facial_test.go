package extractors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

func TestFacialClientAnalyzeVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze-video", r.URL.Path)

		var req facialRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "/videos/run.mp4", req.VideoPath)
		require.Equal(t, 2, req.IntervalSeconds)

		json.NewEncoder(w).Encode(facialResponse{Frames: []facialFrame{
			{Timestamp: 0, Scores: map[string]float64{"Happy": 0.8, "Neutral": 0.2}, Detected: true},
			{Timestamp: 2, Scores: nil, Detected: false},
		}})
	}))
	defer srv.Close()

	client := NewFacialClient(srv.URL, logrus.New())
	series, err := client.AnalyzeVideo(context.Background(), "/videos/run.mp4", 2)

	require.NoError(t, err)
	require.Equal(t, models.SeriesFacialEmotion, series.Kind)
	require.Equal(t, 2, series.Len())

	// Detected frame keeps its scores, lowercased onto the full taxonomy.
	require.InDelta(t, 0.8, series.Entries[0].Scores["happy"], 1e-9)
	require.InDelta(t, 0.2, series.Entries[0].Scores["neutral"], 1e-9)
	require.Len(t, series.Entries[0].Scores, 7)

	// Undetected frame becomes the neutral fallback, not a gap.
	require.Equal(t, 1.0, series.Entries[1].Scores["neutral"])
	require.Equal(t, 0.0, series.Entries[1].Scores["happy"])
}

func TestNormalizeFacialScoresDropsUnknownCategories(t *testing.T) {
	scores := normalizeFacialScores(map[string]float64{"happy": 0.5, "confused": 0.5})

	require.Len(t, scores, 7)
	require.Equal(t, 0.5, scores["happy"])
	_, ok := scores["confused"]
	require.False(t, ok)
}
