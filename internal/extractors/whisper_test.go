package extractors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

func TestDominantSentiment(t *testing.T) {
	label, confidence := dominantSentiment(SentimentScores{Positive: 0.7, Negative: 0.3})
	require.Equal(t, models.SentimentPositive, label)
	require.Equal(t, 0.7, confidence)

	label, confidence = dominantSentiment(SentimentScores{Positive: 0.2, Negative: 0.8})
	require.Equal(t, models.SentimentNegative, label)
	require.Equal(t, 0.8, confidence)

	// ties resolve to positive
	label, _ = dominantSentiment(SentimentScores{Positive: 0.5, Negative: 0.5})
	require.Equal(t, models.SentimentPositive, label)
}

func TestScoreSegmentFallsBackWithoutSidecar(t *testing.T) {
	p := NewWhisperProvider("tiny", nil, logrus.New())

	scores := p.scoreSegment(context.Background(), "great stuff")
	require.Equal(t, SentimentScores{Positive: 0.5, Negative: 0.5}, scores)
}

func TestScoreSegmentFallsBackOnSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewWhisperProvider("tiny", NewSentimentClient(srv.URL), logrus.New())

	scores := p.scoreSegment(context.Background(), "great stuff")
	require.Equal(t, SentimentScores{Positive: 0.5, Negative: 0.5}, scores)
}
