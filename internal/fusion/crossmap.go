package fusion

import (
	"strings"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// Fixed split of negative sentiment between sad and angry. A
// simplifying heuristic, not a learned weighting.
const (
	negativeSadShare   = 0.6
	negativeAngryShare = 0.4
)

// SentimentToEmotion maps a coarse positive/negative/neutral sentiment
// label with confidence c onto the 4-category emotion taxonomy:
//
//	positive → {happy: c, neutral: 1-c}
//	negative → {sad: 0.6c, angry: 0.4c, neutral: 1-c}
//	neutral  → {neutral: c}
//
// Unrecognized labels are treated as neutral. All four categories are
// always present in the result so it forms a valid series entry.
func SentimentToEmotion(sentiment string, confidence float64) models.Scores {
	scores := models.Scores{
		models.EmotionHappy:   0,
		models.EmotionSad:     0,
		models.EmotionAngry:   0,
		models.EmotionNeutral: 0,
	}

	switch strings.ToLower(sentiment) {
	case models.SentimentPositive:
		scores[models.EmotionHappy] = confidence
		scores[models.EmotionNeutral] = 1 - confidence
	case models.SentimentNegative:
		scores[models.EmotionSad] = confidence * negativeSadShare
		scores[models.EmotionAngry] = confidence * negativeAngryShare
		scores[models.EmotionNeutral] = 1 - confidence
	default:
		scores[models.EmotionNeutral] = confidence
	}
	return scores
}

// EmotionToSentiment is the inverse direction: positive = happy,
// negative = sad + angry, re-normalized to sum to 1. When both sides
// are zero (a fully neutral estimate) it falls back to the even
// {0.5, 0.5} split.
//
// Note the round trip is intentionally lossy: positive 0.8 maps to
// {happy: 0.8, neutral: 0.2} and back to {positive: 1.0, negative: 0},
// because the neutral share carries no sentiment signal to recover.
func EmotionToSentiment(emotion models.Scores) models.Scores {
	positive := emotion[models.EmotionHappy]
	negative := emotion[models.EmotionSad] + emotion[models.EmotionAngry]

	total := positive + negative
	if total == 0 {
		return models.Scores{
			models.SentimentPositive: 0.5,
			models.SentimentNegative: 0.5,
		}
	}

	return models.Scores{
		models.SentimentPositive: positive / total,
		models.SentimentNegative: negative / total,
	}
}
