package peel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// scaleBuffers holds the per-pattern log-scale-factor buffers addressed by
// ScaleIdx. Rescaling is declared but only partially elaborated by spec
// §4.4/§9; this module resolves it per the documented intent and the
// original_source CPU implementation: per pattern, scan the max across ALL
// categories and states (not per-category), divide the partials row by it,
// and record log(max) in the named scale buffer (overwriting its previous
// value) so root integration can add it back before taking the final log.
type scaleBuffers struct {
	patternCount int
	bufferCount  int
	logScales    [][]float64 // logScales[scaleIdx][pattern]

	// gather is a reusable length C*S scratch row: the per-pattern slice of
	// a partials buffer is strided (category outer, state inner), so the
	// category/state values for one pattern are copied here contiguously
	// before handing them to gonum/floats.Max, which requires a contiguous
	// slice. Sized and preallocated once in newScaleBuffers from C,S (spec
	// §5: no allocation on the peeling path).
	gather []float64
}

// newScaleBuffers preallocates one length-P log-scale row per buffer slot
// up front, plus the length-C*S gather row sized from categoryCount and
// stateCount (spec §5: no allocation on the peeling path), indexed by
// ScaleIdx exactly as partials buffers are indexed by buffer index.
func newScaleBuffers(patternCount, categoryCount, stateCount, bufferCount int) *scaleBuffers {
	sb := &scaleBuffers{patternCount: patternCount, bufferCount: bufferCount}
	sb.logScales = make([][]float64, bufferCount)
	for i := range sb.logScales {
		sb.logScales[i] = make([]float64, patternCount)
	}
	sb.gather = make([]float64, categoryCount*stateCount)
	return sb
}

// rescale scans dest (length P*S*C) for the per-pattern max across
// categories and states, divides that pattern's values by it, and
// writes log(max) into the scale buffer named by idx, replacing what was
// there. Invoked from
// updatePartials (see peeling.go) after a kernel writes dest.
func (sb *scaleBuffers) rescale(d Dims, dest []float64, idx int) {
	s, p, c := d.StateCount, d.PatternCount, d.CategoryCount
	logScale := sb.logScales[idx]
	gather := sb.gather[:c*s]

	for k := 0; k < p; k++ {
		for l := 0; l < c; l++ {
			base := l*p*s + k*s
			copy(gather[l*s:(l+1)*s], dest[base:base+s])
		}
		max := floats.Max(gather)

		if max <= 0 {
			logScale[k] = 0
			continue
		}
		for l := 0; l < c; l++ {
			base := l*p*s + k*s
			floats.Scale(1/max, dest[base:base+s])
		}
		logScale[k] = math.Log(max)
	}
}

// accumulatedLogScale sums log(max) across the named scale buffers into
// out (length P), for root integration to add back before the final log.
func (sb *scaleBuffers) accumulatedLogScale(scaleIndices []int, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for _, idx := range scaleIndices {
		if idx == ScaleNone || idx < 0 || idx >= len(sb.logScales) {
			continue
		}
		for k, v := range sb.logScales[idx] {
			out[k] += v
		}
	}
}
