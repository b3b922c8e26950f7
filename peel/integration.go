package peel

import "math"

// calculateRootLogLikelihoods implements spec §4.5.1: reduce one or more
// root-partials subsets across categories and states into per-pattern
// log-likelihoods, combining subsets by the given weights (which must sum
// to 1 across subsets; not enforced, caller responsibility per spec).
//
// scaleIndices, when non-nil, names one scale buffer per subset (ScaleNone
// to skip); each subset's log-scale is added back to that subset's
// likelihood before the subsets are combined and the final log() is taken,
// per the rescaling semantics resolved in rescale.go.
func (inst *Instance) calculateRootLogLikelihoods(rootIndices []int, weights []float64, stateFrequencies []float64, scaleIndices []int, outLogL []float64) error {
	d := inst.dims
	n := len(rootIndices)
	if len(weights) != n || len(stateFrequencies) != n*d.StateCount {
		return outOfRange("root subset arity mismatch: n=%d weights=%d freqs=%d", n, len(weights), len(stateFrequencies))
	}
	if len(outLogL) != d.PatternCount {
		return outOfRange("outLogL length %d, want %d", len(outLogL), d.PatternCount)
	}

	proportions := inst.model.proportions.live()
	mixture := inst.scratch.rootMixture
	subsetLL := inst.scratch.rootSubsetLL
	scaleAdd := inst.scratch.rootScaleAdd
	scaleIdxBuf := inst.scratch.rootScaleIdx

	for sIdx := 0; sIdx < n; sIdx++ {
		root := rootIndices[sIdx]
		if root < 0 || root >= d.BufferCount {
			return outOfRange("root buffer index %d out of range [0,%d)", root, d.BufferCount)
		}
		partials := inst.store.partialsRow(root)
		pi := stateFrequencies[sIdx*d.StateCount : (sIdx+1)*d.StateCount]
		w := weights[sIdx]

		categoryMixture(d, partials, proportions, inst.scratch.categoryMix, mixture)
		stateIntegrate(d, mixture, pi, subsetLL)

		if scaleIndices != nil {
			scaleIdxBuf[0] = scaleIndices[sIdx]
			inst.scale.accumulatedLogScale(scaleIdxBuf, scaleAdd)
			for k := range subsetLL {
				subsetLL[k] *= math.Exp(scaleAdd[k])
			}
		}

		if sIdx == 0 {
			for k := range outLogL {
				outLogL[k] = subsetLL[k] * w
			}
		} else {
			for k := range outLogL {
				outLogL[k] += subsetLL[k] * w
			}
		}
	}

	for k := range outLogL {
		outLogL[k] = math.Log(outLogL[k])
	}
	return nil
}

// EdgeDerivatives is reserved per spec §4.5.2/§9 for first/second analytic
// derivative outputs. It is never implemented (numerical derivatives are a
// non-goal per spec §1); CalculateEdgeLogLikelihoods rejects non-nil
// instances of this type with StatusGeneral.
type EdgeDerivatives struct {
	FirstDerivative  []float64
	SecondDerivative []float64
}

// calculateEdgeLogLikelihoods implements spec §4.5.2 for the single-subset
// (count == 1) case: the log-likelihood of the tree re-rooted at the given
// edge, using the parent's partials, the child's partials-or-states, and
// the transition matrix of the edge between them.
func (inst *Instance) calculateEdgeLogLikelihoods(parentIdx, childIdx, matrixIdx int, weight float64, stateFreqs []float64, scaleIdx int, outLogL []float64, deriv *EdgeDerivatives) error {
	if deriv != nil {
		return general("derivative outputs are unimplemented (reserved per spec)")
	}

	d := inst.dims
	if len(stateFreqs) != d.StateCount {
		return outOfRange("state frequencies length %d, want %d", len(stateFreqs), d.StateCount)
	}
	if len(outLogL) != d.PatternCount {
		return outOfRange("outLogL length %d, want %d", len(outLogL), d.PatternCount)
	}
	if parentIdx < 0 || parentIdx >= d.BufferCount {
		return outOfRange("parent buffer index %d out of range [0,%d)", parentIdx, d.BufferCount)
	}

	parent := inst.store.partialsRow(parentIdx)
	m := inst.store.matrixRow(matrixIdx)
	s, p, c := d.StateCount, d.PatternCount, d.CategoryCount
	w := width(d)

	proportions := inst.model.proportions.live()

	childIsTip := inst.isTip(childIdx) && inst.store.tipHasStates[childIdx] && !inst.store.useTipPartials(childIdx)

	// perPattern[k] accumulates Σ_l proportions[l] Σ_i freqs[i] parent[l,k,i] * (child contribution)
	perPattern := inst.scratch.edgePerPattern
	for k := range perPattern {
		perPattern[k] = 0
	}

	if childIsTip {
		states := inst.store.tipStates[childIdx]
		for l := 0; l < c; l++ {
			prop := proportions[l]
			catBase := l * s * w
			patBase := l * p * s
			for k := 0; k < p; k++ {
				st := states[k]
				var acc float64
				pBase := patBase + k*s
				for i := 0; i < s; i++ {
					acc += stateFreqs[i] * parent[pBase+i] * m[catBase+i*w+st]
				}
				perPattern[k] += prop * acc
			}
		}
	} else {
		child := inst.store.partialsRow(childIdx)
		for l := 0; l < c; l++ {
			prop := proportions[l]
			catBase := l * s * w
			patBase := l * p * s
			for k := 0; k < p; k++ {
				pBase := patBase + k*s
				var acc float64
				for i := 0; i < s; i++ {
					rowBase := catBase + i*w
					var innerSum float64
					for j := 0; j < s; j++ {
						innerSum += m[rowBase+j] * child[pBase+j]
					}
					acc += stateFreqs[i] * parent[pBase+i] * innerSum
				}
				perPattern[k] += prop * acc
			}
		}
	}

	if scaleIdx != ScaleNone {
		scaleAdd := inst.scratch.edgeScaleAdd
		scaleIdxBuf := inst.scratch.edgeScaleIdx
		scaleIdxBuf[0] = scaleIdx
		inst.scale.accumulatedLogScale(scaleIdxBuf, scaleAdd)
		for k := range perPattern {
			perPattern[k] *= math.Exp(scaleAdd[k])
		}
	}

	for k := range outLogL {
		outLogL[k] = math.Log(weight * perPattern[k])
	}
	return nil
}
