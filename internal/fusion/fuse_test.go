package fusion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
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

func TestFuseIsLossless(t *testing.T) {
	text := sentimentSeries(t, []models.SeriesEntry{
		{Timestamp: 0.5, Scores: models.Scores{"positive": 0.9, "negative": 0.1}},
		{Timestamp: 2.0, Scores: models.Scores{"positive": 0.2, "negative": 0.8}},
	})
	audio := emotionSeries(t, []models.SeriesEntry{
		{Timestamp: 1.0, Scores: models.Scores{"happy": 0.7, "sad": 0.1, "angry": 0.1, "neutral": 0.1}},
	})
	segments := []models.TranscriptSegment{
		{Text: "hello there", Start: 0.0, End: 1.0, Speaker: "A", Confidence: 0.95},
		{Text: "this is bad", Start: 1.5, End: 2.5, Speaker: "B", Confidence: 0.88},
	}

	tl := Fuse(text, audio, segments, nil)

	require.Equal(t, text.Entries, tl.TextSentiment.Entries)
	require.Equal(t, audio.Entries, tl.AudioEmotion.Entries)
	require.Equal(t, segments, tl.Segments)
	require.Nil(t, tl.FacialEmotion)
	require.Equal(t, []float64{0.5, 2.0}, tl.ReferenceAxis())
}

func TestFusePreservesFacialSeries(t *testing.T) {
	scores := models.Scores{
		"angry": 0, "disgust": 0, "fear": 0, "happy": 0.9,
		"sad": 0, "surprise": 0.1, "neutral": 0,
	}
	facial, err := models.NewSignalSeries(models.SeriesFacialEmotion, []models.SeriesEntry{
		{Timestamp: 1.0, Scores: scores},
	})
	require.NoError(t, err)

	tl := Fuse(nil, nil, nil, facial)
	require.True(t, tl.HasFacial())
	require.Equal(t, facial.Entries, tl.FacialEmotion.Entries)
}

func TestFuseEmptyTextSeriesIsValid(t *testing.T) {
	audio := emotionSeries(t, []models.SeriesEntry{
		{Timestamp: 2.0, Scores: models.Scores{"happy": 0.3, "sad": 0.2, "angry": 0.1, "neutral": 0.4}},
	})

	tl := Fuse(models.EmptySeries(models.SeriesTextSentiment), audio, nil, nil)

	require.NotNil(t, tl)
	require.Empty(t, tl.ReferenceAxis())
	require.Equal(t, 1, tl.AudioEmotion.Len())
}

func TestFuseNilSeriesNormalizedToEmpty(t *testing.T) {
	tl := Fuse(nil, nil, nil, nil)

	require.NotNil(t, tl.TextSentiment)
	require.NotNil(t, tl.AudioEmotion)
	require.True(t, tl.TextSentiment.IsEmpty())
	require.True(t, tl.AudioEmotion.IsEmpty())
	require.False(t, tl.HasFacial())
}
