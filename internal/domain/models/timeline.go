package models

// TranscriptSegment is one utterance of the transcript, carried on the
// Timeline for display only; the fusion core never analyzes it further.
type TranscriptSegment struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Midpoint returns the segment's center timestamp in seconds, the
// point the per-utterance sentiment estimate is anchored to.
func (s TranscriptSegment) Midpoint() float64 {
	return (s.Start + s.End) / 2
}

// Timeline is the fused aggregate of one analysis run. Each series
// keeps its own native timestamps; the text-sentiment axis is the
// reference axis by convention, so consumers plotting the audio or
// facial series against it must resample first. A Timeline is built
// once by fusion.Fuse and not mutated afterward.
type Timeline struct {
	TextSentiment *SignalSeries       `json:"text_sentiment"`
	AudioEmotion  *SignalSeries       `json:"audio_emotion"`
	FacialEmotion *SignalSeries       `json:"facial_emotion,omitempty"`
	Segments      []TranscriptSegment `json:"segments"`
}

// ReferenceAxis returns the text-sentiment timestamps. It is empty
// when no speech was detected, which is a valid degraded state.
func (t *Timeline) ReferenceAxis() []float64 {
	if t == nil || t.TextSentiment == nil {
		return nil
	}
	return t.TextSentiment.Timestamps()
}

// HasFacial reports whether facial analysis ran and produced entries.
func (t *Timeline) HasFacial() bool {
	return t != nil && t.FacialEmotion != nil && !t.FacialEmotion.IsEmpty()
}

// CategoryAverage maps a category to its time-mean score. It is derived
// on demand from one series and never persisted independently of it.
type CategoryAverage map[string]float64
