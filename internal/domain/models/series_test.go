package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSignalSeriesValid(t *testing.T) {
	s, err := NewSignalSeries(SeriesTextSentiment, []SeriesEntry{
		{Timestamp: 0.5, Scores: Scores{"positive": 0.9, "negative": 0.1}},
		{Timestamp: 2.0, Scores: Scores{"positive": 0.2, "negative": 0.8}},
	})

	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, []float64{0.5, 2.0}, s.Timestamps())
	require.Equal(t, []float64{0.9, 0.2}, s.CategoryValues("positive"))
}

func TestNewSignalSeriesEmptyIsValid(t *testing.T) {
	s, err := NewSignalSeries(SeriesAudioEmotion, nil)

	require.NoError(t, err)
	require.True(t, s.IsEmpty())
	require.Empty(t, s.Timestamps())
}

func TestNewSignalSeriesRejectsMissingCategory(t *testing.T) {
	_, err := NewSignalSeries(SeriesAudioEmotion, []SeriesEntry{
		{Timestamp: 0, Scores: Scores{"happy": 0.5, "sad": 0.2, "angry": 0.1, "neutral": 0.2}},
		{Timestamp: 1, Scores: Scores{"happy": 0.5, "sad": 0.5}},
	})

	require.ErrorIs(t, err, ErrInconsistentCategorySet)
}

func TestNewSignalSeriesRejectsUnknownCategory(t *testing.T) {
	_, err := NewSignalSeries(SeriesTextSentiment, []SeriesEntry{
		{Timestamp: 0, Scores: Scores{"positive": 0.5, "bored": 0.5}},
	})

	require.ErrorIs(t, err, ErrInconsistentCategorySet)
}

func TestNewSignalSeriesRejectsDecreasingTimestamps(t *testing.T) {
	_, err := NewSignalSeries(SeriesTextSentiment, []SeriesEntry{
		{Timestamp: 2.0, Scores: Scores{"positive": 0.5, "negative": 0.5}},
		{Timestamp: 1.0, Scores: Scores{"positive": 0.5, "negative": 0.5}},
	})

	require.ErrorIs(t, err, ErrTimestampOrder)
}

func TestNewSignalSeriesAllowsEqualTimestamps(t *testing.T) {
	_, err := NewSignalSeries(SeriesTextSentiment, []SeriesEntry{
		{Timestamp: 1.0, Scores: Scores{"positive": 0.5, "negative": 0.5}},
		{Timestamp: 1.0, Scores: Scores{"positive": 0.6, "negative": 0.4}},
	})

	require.NoError(t, err)
}

func TestNewSignalSeriesUnknownKind(t *testing.T) {
	_, err := NewSignalSeries(SeriesKind("vibes"), nil)
	require.ErrorIs(t, err, ErrUnknownSeriesKind)
}

func TestSegmentMidpoint(t *testing.T) {
	seg := TranscriptSegment{Start: 1.0, End: 3.0}
	require.Equal(t, 2.0, seg.Midpoint())
}
