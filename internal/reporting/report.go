// Package reporting turns a fused timeline into the plain-data chart
// payloads and text summaries the presentation layer consumes. No
// chart objects are built here; rendering happens in the visualization
// collaborator.
package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
	"github.com/boemer00/cooper-video-analysis/internal/fusion"
)

// SeriesPlot is one line chart: its own (possibly resampled) time axis
// plus one value slice per category, all of equal length.
type SeriesPlot struct {
	Axis   []float64            `json:"axis"`
	Values map[string][]float64 `json:"values"`
}

// TimelinePlotData feeds the timeline_plot.png chart. The sentiment
// series uses the reference axis verbatim; the emotion and facial
// series get synthetic evenly spaced axes spanning the reference
// bounds, since their native cadences rarely match the reference
// length.
type TimelinePlotData struct {
	Sentiment SeriesPlot  `json:"sentiment"`
	Emotion   SeriesPlot  `json:"emotion"`
	Facial    *SeriesPlot `json:"facial,omitempty"`
}

// DistributionPlotData feeds the distribution_plot.png chart: the
// time-mean per category for each stream.
type DistributionPlotData struct {
	SentimentAverages models.CategoryAverage `json:"sentiment_averages"`
	EmotionAverages   models.CategoryAverage `json:"emotion_averages"`
	FacialAverages    models.CategoryAverage `json:"facial_averages,omitempty"`
}

// BuildTimelinePlot assembles the per-series plot lines from a fused
// timeline. An empty reference axis yields empty plots, which the
// renderer shows as "no data" rather than failing.
func BuildTimelinePlot(tl *models.Timeline) *TimelinePlotData {
	reference := tl.ReferenceAxis()

	data := &TimelinePlotData{
		Sentiment: seriesPlot(tl.TextSentiment, reference),
		Emotion:   seriesPlot(tl.AudioEmotion, fusion.ResampleAxis(reference, tl.AudioEmotion.Len())),
	}

	if tl.HasFacial() {
		facial := seriesPlot(tl.FacialEmotion, fusion.ResampleAxis(reference, tl.FacialEmotion.Len()))
		data.Facial = &facial
	}
	return data
}

func seriesPlot(s *models.SignalSeries, axis []float64) SeriesPlot {
	plot := SeriesPlot{Axis: axis, Values: map[string][]float64{}}
	for _, category := range s.Kind.Categories() {
		plot.Values[category] = s.CategoryValues(category)
	}
	return plot
}

// BuildDistributionPlot computes the headline averages for each stream,
// applying the neutral fallbacks for empty series.
func BuildDistributionPlot(tl *models.Timeline) *DistributionPlotData {
	data := &DistributionPlotData{
		SentimentAverages: fusion.Average(tl.TextSentiment),
		EmotionAverages:   fusion.Average(tl.AudioEmotion),
	}
	if tl.HasFacial() {
		data.FacialAverages = fusion.Average(tl.FacialEmotion)
	}
	return data
}

// Summary renders the headline metrics as display text, e.g.
// "Text sentiment: positive 55.0%, negative 45.0%".
func Summary(result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("Text sentiment: ")
	b.WriteString(formatAverages(result.TextScores))
	b.WriteString("\nAudio emotion: ")
	b.WriteString(formatAverages(result.AudioScores))
	if len(result.FacialScores) > 0 {
		b.WriteString("\nFacial emotion: ")
		b.WriteString(formatAverages(result.FacialScores))
	}
	return b.String()
}

func formatAverages(avg models.CategoryAverage) string {
	categories := make([]string, 0, len(avg))
	for c := range avg {
		categories = append(categories, c)
	}
	// highest score first, ties by name for stable output
	sort.Slice(categories, func(i, j int) bool {
		if avg[categories[i]] != avg[categories[j]] {
			return avg[categories[i]] > avg[categories[j]]
		}
		return categories[i] < categories[j]
	})

	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", c, avg[c]*100))
	}
	return strings.Join(parts, ", ")
}
