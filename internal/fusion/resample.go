package fusion

// ResampleAxis produces a synthetic, evenly spaced timestamp axis of
// exactly targetLength points spanning [min(reference), max(reference)].
// It lets a series sampled at a different cadence be plotted against
// the reference axis; the synthetic axis is a display convenience, not
// a claim about when each estimate actually occurred.
//
// Degenerate cases never panic: an empty reference returns an empty
// axis (routine when a video has no detected speech), targetLength < 1
// returns an empty axis, targetLength == 1 returns the axis start, and
// a single-point reference repeats that point.
func ResampleAxis(reference []float64, targetLength int) []float64 {
	if targetLength < 1 || len(reference) == 0 {
		return []float64{}
	}

	lo, hi := reference[0], reference[0]
	for _, t := range reference[1:] {
		if t < lo {
			lo = t
		}
		if t > hi {
			hi = t
		}
	}

	axis := make([]float64, targetLength)
	if targetLength == 1 || lo == hi {
		for i := range axis {
			axis[i] = lo
		}
		return axis
	}

	step := (hi - lo) / float64(targetLength-1)
	for i := range axis {
		axis[i] = lo + float64(i)*step
	}
	axis[targetLength-1] = hi
	return axis
}
