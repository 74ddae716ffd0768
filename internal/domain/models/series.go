package models

import (
	"errors"
	"fmt"
	"sort"
)

// SeriesKind tags which taxonomy a SignalSeries reports its scores
// against. Every entry in a series must carry exactly the categories of
// its kind.
type SeriesKind string

const (
	SeriesTextSentiment SeriesKind = "text_sentiment"
	SeriesAudioEmotion  SeriesKind = "audio_emotion"
	SeriesFacialEmotion SeriesKind = "facial_emotion"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	EmotionHappy    = "happy"
	EmotionSad      = "sad"
	EmotionAngry    = "angry"
	EmotionNeutral  = "neutral"
	EmotionDisgust  = "disgust"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
)

var (
	// SentimentCategories is the taxonomy of the text-sentiment series.
	SentimentCategories = []string{SentimentPositive, SentimentNegative}

	// EmotionCategories is the 4-category taxonomy used for voice emotion.
	EmotionCategories = []string{EmotionHappy, EmotionSad, EmotionAngry, EmotionNeutral}

	// FacialEmotionCategories is the fixed 7-category taxonomy the facial
	// emotion collaborator reports against.
	FacialEmotionCategories = []string{
		EmotionAngry, EmotionDisgust, EmotionFear, EmotionHappy,
		EmotionSad, EmotionSurprise, EmotionNeutral,
	}
)

var (
	ErrInconsistentCategorySet = errors.New("inconsistent category set")
	ErrTimestampOrder          = errors.New("timestamps must be non-decreasing")
	ErrUnknownSeriesKind       = errors.New("unknown series kind")
)

// Scores maps a category name to a confidence in [0,1]. Extractors are
// responsible for clamping; the core never re-normalizes a Scores map
// outside the sentiment/emotion cross-mapping.
type Scores map[string]float64

// SeriesEntry is one sampled estimate on a series' own time axis.
type SeriesEntry struct {
	Timestamp float64 `json:"timestamp"`
	Scores    Scores  `json:"scores"`
}

// SignalSeries is an ordered sequence of (timestamp, scores) estimates
// produced by one extractor at its own cadence. A series is built once
// via NewSignalSeries and not mutated afterward.
type SignalSeries struct {
	Kind    SeriesKind    `json:"kind"`
	Entries []SeriesEntry `json:"entries"`
}

// Categories returns the taxonomy for a series kind.
func (k SeriesKind) Categories() []string {
	switch k {
	case SeriesTextSentiment:
		return SentimentCategories
	case SeriesAudioEmotion:
		return EmotionCategories
	case SeriesFacialEmotion:
		return FacialEmotionCategories
	default:
		return nil
	}
}

// NewSignalSeries validates entries against the kind's taxonomy and
// timestamp ordering. An empty entries slice is a valid, degraded
// series; mismatched category keys are a hard error rather than being
// defaulted to zero, so downstream averages can never be silently
// computed over a partial taxonomy.
func NewSignalSeries(kind SeriesKind, entries []SeriesEntry) (*SignalSeries, error) {
	categories := kind.Categories()
	if categories == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeriesKind, kind)
	}

	want := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		want[c] = struct{}{}
	}

	prev := 0.0
	for i, e := range entries {
		if i > 0 && e.Timestamp < prev {
			return nil, fmt.Errorf("%w: entry %d at %.3fs after %.3fs", ErrTimestampOrder, i, e.Timestamp, prev)
		}
		prev = e.Timestamp

		if len(e.Scores) != len(want) {
			return nil, fmt.Errorf("%w: entry %d has categories %v, want %v",
				ErrInconsistentCategorySet, i, sortedKeys(e.Scores), categories)
		}
		for c := range e.Scores {
			if _, ok := want[c]; !ok {
				return nil, fmt.Errorf("%w: entry %d has unexpected category %q",
					ErrInconsistentCategorySet, i, c)
			}
		}
	}

	return &SignalSeries{Kind: kind, Entries: entries}, nil
}

// EmptySeries returns a valid zero-entry series of the given kind.
func EmptySeries(kind SeriesKind) *SignalSeries {
	return &SignalSeries{Kind: kind}
}

func (s *SignalSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

func (s *SignalSeries) IsEmpty() bool { return s.Len() == 0 }

// Timestamps returns the series' own time axis.
func (s *SignalSeries) Timestamps() []float64 {
	if s == nil {
		return nil
	}
	ts := make([]float64, len(s.Entries))
	for i, e := range s.Entries {
		ts[i] = e.Timestamp
	}
	return ts
}

// CategoryValues returns the score of one category across all entries,
// in entry order.
func (s *SignalSeries) CategoryValues(category string) []float64 {
	if s == nil {
		return nil
	}
	vals := make([]float64, len(s.Entries))
	for i, e := range s.Entries {
		vals[i] = e.Scores[category]
	}
	return vals
}

func sortedKeys(m Scores) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
