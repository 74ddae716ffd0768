package reporting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
)

func sentimentSeries(t *testing.T, entries []models.SeriesEntry) *models.SignalSeries {
	t.Helper()
	s, err := models.NewSignalSeries(models.SeriesTextSentiment, entries)
	require.NoError(t, err)
	return s
}

func emotionSeries(t *testing.T, entries []models.SeriesEntry) *models.SignalSeries {
	t.Helper()
	s, err := models.NewSignalSeries(models.SeriesAudioEmotion, entries)
	require.NoError(t, err)
	return s
}

func TestBuildTimelinePlot(t *testing.T) {
	text := sentimentSeries(t, []models.SeriesEntry{
		{Timestamp: 0.5, Scores: models.Scores{models.SentimentPositive: 0.7, models.SentimentNegative: 0.3}},
		{Timestamp: 2.0, Scores: models.Scores{models.SentimentPositive: 0.4, models.SentimentNegative: 0.6}},
		{Timestamp: 4.0, Scores: models.Scores{models.SentimentPositive: 0.6, models.SentimentNegative: 0.4}},
	})
	audio := emotionSeries(t, []models.SeriesEntry{
		{Timestamp: 1.0, Scores: models.Scores{
			models.EmotionHappy: 0.6, models.EmotionSad: 0.1,
			models.EmotionAngry: 0.1, models.EmotionNeutral: 0.2,
		}},
		{Timestamp: 3.0, Scores: models.Scores{
			models.EmotionHappy: 0.2, models.EmotionSad: 0.3,
			models.EmotionAngry: 0.1, models.EmotionNeutral: 0.4,
		}},
	})

	tl := fusion.Fuse(text, audio, nil, nil)
	data := BuildTimelinePlot(tl)

	// sentiment keeps its own axis verbatim
	require.Equal(t, []float64{0.5, 2.0, 4.0}, data.Sentiment.Axis)
	require.Equal(t, []float64{0.7, 0.4, 0.6}, data.Sentiment.Values[models.SentimentPositive])

	// emotion axis is resampled onto the reference bounds
	require.Equal(t, []float64{0.5, 4.0}, data.Emotion.Axis)
	require.Len(t, data.Emotion.Values[models.EmotionHappy], 2)
	require.Equal(t, 0.6, data.Emotion.Values[models.EmotionHappy][0])

	require.Nil(t, data.Facial)
}

func TestBuildTimelinePlotEmptyStreams(t *testing.T) {
	tl := fusion.Fuse(nil, nil, nil, nil)
	data := BuildTimelinePlot(tl)

	require.Empty(t, data.Sentiment.Axis)
	require.Empty(t, data.Emotion.Axis)
	require.Empty(t, data.Sentiment.Values[models.SentimentPositive])
	require.Nil(t, data.Facial)
}

func TestBuildDistributionPlotFallbacks(t *testing.T) {
	tl := fusion.Fuse(nil, nil, nil, nil)
	data := BuildDistributionPlot(tl)

	require.Equal(t, 0.5, data.SentimentAverages[models.SentimentPositive])
	require.Equal(t, 0.5, data.SentimentAverages[models.SentimentNegative])
	require.Equal(t, 1.0, data.EmotionAverages[models.EmotionNeutral])
	require.Nil(t, data.FacialAverages)
}

func TestSummaryOrdersByScore(t *testing.T) {
	result := &models.AnalysisResult{
		TextScores: models.CategoryAverage{
			models.SentimentPositive: 0.55,
			models.SentimentNegative: 0.45,
		},
		AudioScores: models.CategoryAverage{
			models.EmotionHappy:   0.7,
			models.EmotionSad:     0.1,
			models.EmotionAngry:   0.1,
			models.EmotionNeutral: 0.1,
		},
	}

	text := Summary(result)
	require.Contains(t, text, "Text sentiment: positive 55.0%, negative 45.0%")
	require.Contains(t, text, "Audio emotion: happy 70.0%, angry 10.0%, neutral 10.0%, sad 10.0%")
	require.NotContains(t, text, "Facial emotion")
}

func TestWriteResultJSON(t *testing.T) {
	dir := t.TempDir()
	result := &models.AnalysisResult{
		AnalysisID: "abc-123",
		TextScores: models.CategoryAverage{models.SentimentPositive: 0.5, models.SentimentNegative: 0.5},
	}

	path, err := WriteResultJSON(result, filepath.Join(dir, "out"))
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"abc-123"`)
}
