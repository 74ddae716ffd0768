package fusion

import (
	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// Average reduces a series to the arithmetic time-mean of each category
// in its taxonomy.
//
// Empty series resolve to the neutral fallbacks rather than zeros or an
// error: a sentiment series averages to {positive: 0.5, negative: 0.5}
// and an emotion series (voice or facial) to {neutral: 1.0}. "No
// signal" renders as neutral in the report, not as a failure.
func Average(s *models.SignalSeries) models.CategoryAverage {
	if s == nil || s.IsEmpty() {
		return fallbackAverage(seriesKind(s))
	}

	avg := make(models.CategoryAverage, len(s.Kind.Categories()))
	n := float64(s.Len())
	for _, category := range s.Kind.Categories() {
		sum := 0.0
		for _, e := range s.Entries {
			sum += e.Scores[category]
		}
		avg[category] = sum / n
	}
	return avg
}

func seriesKind(s *models.SignalSeries) models.SeriesKind {
	if s == nil {
		return models.SeriesTextSentiment
	}
	return s.Kind
}

func fallbackAverage(kind models.SeriesKind) models.CategoryAverage {
	switch kind {
	case models.SeriesTextSentiment:
		return models.CategoryAverage{
			models.SentimentPositive: 0.5,
			models.SentimentNegative: 0.5,
		}
	default:
		return models.CategoryAverage{models.EmotionNeutral: 1.0}
	}
}
