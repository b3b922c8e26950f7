package peel

import "math"

// updateTransitionMatrices builds one transition matrix per requested slot
// from the eigen cache of system e, an edge length, and the per-category
// rate scalers (spec §4.3). Each matrix is laid out as C blocks of an
// S x (S+1) row-major matrix whose final column is fixed to 1.0 — the
// ambiguity column described in spec §3/§9.
func (inst *Instance) updateTransitionMatrices(e int, probIndices []int, edgeLengths []float64) error {
	ec := inst.eigen
	if e < 0 || e >= ec.eigenCount {
		return outOfRange("eigen index %d out of range [0,%d)", e, ec.eigenCount)
	}
	if len(probIndices) != len(edgeLengths) {
		return outOfRange("probIndices length %d != edgeLengths length %d", len(probIndices), len(edgeLengths))
	}

	d := inst.dims
	s := d.StateCount
	c := d.CategoryCount
	tensor := ec.tensorRow(e)
	lambda := ec.eigenValuesRow(e)
	rates := inst.model.rates.live()

	tmp := inst.scratch.transitionExp // per-category scratch, preallocated, reused across requests

	for u, probIdx := range probIndices {
		if probIdx < 0 || probIdx >= d.MatrixCount {
			return outOfRange("matrix index %d out of range [0,%d)", probIdx, d.MatrixCount)
		}
		t := edgeLengths[u]

		inst.model.branchLengths.live()[probIdx] = t

		row := inst.store.flipMatrix(probIdx)
		width := s + 1

		for l := 0; l < c; l++ {
			rate := rates[l]
			for k := 0; k < s; k++ {
				tmp[k] = math.Exp(lambda[k] * t * rate)
			}

			catBase := l * s * width
			for i := 0; i < s; i++ {
				tensorBase := i * s * s
				rowBase := catBase + i*width
				for j := 0; j < s; j++ {
					var sum float64
					// contiguous stride-1 read of tensor[i*S*S + j*S + k] over k
					tBase := tensorBase + j*s
					for k := 0; k < s; k++ {
						sum += tensor[tBase+k] * tmp[k]
					}
					if sum < 0 {
						sum = 0 // clamp tiny eigendecomposition round-off
					}
					row[rowBase+j] = sum
				}
				row[rowBase+s] = 1.0 // ambiguity column
			}
		}
	}
	return nil
}
