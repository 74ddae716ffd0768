// Package fusion merges the independently sampled sentiment and emotion
// streams of one analysis run into a single timeline and derives the
// summary statistics the reporting layer renders.
package fusion

import (
	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// Fuse combines the text-sentiment series, the audio-emotion series,
// the transcript segments and the optional facial-emotion series into
// one Timeline. No resampling happens here: each series keeps its own
// native timestamps, and the text series' axis becomes the reference
// axis by convention. Consumers needing equal-length aligned arrays use
// ResampleAxis.
//
// An empty (or nil) text series yields a Timeline with an empty
// reference axis, which downstream code reports as "no sentiment data"
// rather than an error. A nil facial series means facial analysis did
// not run.
func Fuse(text, audio *models.SignalSeries, segments []models.TranscriptSegment, facial *models.SignalSeries) *models.Timeline {
	if text == nil {
		text = models.EmptySeries(models.SeriesTextSentiment)
	}
	if audio == nil {
		audio = models.EmptySeries(models.SeriesAudioEmotion)
	}

	return &models.Timeline{
		TextSentiment: text,
		AudioEmotion:  audio,
		FacialEmotion: facial,
		Segments:      segments,
	}
}
