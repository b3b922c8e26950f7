package peel

// This file exposes the operations of spec §6 as methods on *Instance. Each
// wraps the corresponding unexported implementation with the
// uninitialized-instance guard; the unexported methods carry the actual
// logic so internal callers (tests, other core files) can skip the guard
// when they already know the instance is alive.

// SetTipStates copies a length-P compact state row into tip slot i.
func (inst *Instance) SetTipStates(tipIdx int, states []int) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setTipStates(tipIdx, states)
}

// SetTipPartials copies a length-P*S partials row into tip slot i,
// replicated across categories, and latches tips-use-partials mode.
func (inst *Instance) SetTipPartials(tipIdx int, partials []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setTipPartials(tipIdx, partials)
}

// GetPartials bulk-copies the currently-current partials buffer of slot i into dst.
func (inst *Instance) GetPartials(bufferIdx int, dst []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.getPartials(bufferIdx, dst)
}

// SetEigenDecomposition stores an eigensystem and its fused reduction tensor.
func (inst *Instance) SetEigenDecomposition(eigenIdx int, u, uinv, eigenValues []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setEigenDecomposition(eigenIdx, u, uinv, eigenValues)
}

// SetCategoryRates sets the per-category rate scalers.
func (inst *Instance) SetCategoryRates(rates []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setCategoryRates(rates)
}

// SetCategoryWeights sets the per-category mixture proportions.
func (inst *Instance) SetCategoryWeights(weights []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setCategoryWeights(weights)
}

// SetStateFrequencies sets the equilibrium state-frequency table.
func (inst *Instance) SetStateFrequencies(freqs []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.setStateFrequencies(freqs)
}

// UpdateTransitionMatrices builds a transition matrix per requested slot
// from eigen system eigenIdx, one branch length per slot.
func (inst *Instance) UpdateTransitionMatrices(eigenIdx int, probIndices []int, edgeLengths []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.updateTransitionMatrices(eigenIdx, probIndices, edgeLengths)
}

// UpdatePartials executes a batch of peeling operations in array order.
func (inst *Instance) UpdatePartials(ops []Operation, rescale bool) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.updatePartials(ops, rescale)
}

// CalculateRootLogLikelihoods reduces one or more root-partials subsets
// into per-pattern log-likelihoods. Pass a nil scaleIndices to skip the
// rescale-accumulation path entirely.
func (inst *Instance) CalculateRootLogLikelihoods(rootIndices []int, weights, stateFrequencies []float64, scaleIndices []int, outLogL []float64) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.calculateRootLogLikelihoods(rootIndices, weights, stateFrequencies, scaleIndices, outLogL)
}

// CalculateEdgeLogLikelihoods computes the log-likelihood of the tree
// re-rooted at a single edge (parent, child, its transition matrix).
// deriv must be nil; non-nil is rejected (derivatives are unimplemented).
func (inst *Instance) CalculateEdgeLogLikelihoods(parentIdx, childIdx, matrixIdx int, weight float64, stateFreqs []float64, scaleIdx int, outLogL []float64, deriv *EdgeDerivatives) error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.calculateEdgeLogLikelihoods(parentIdx, childIdx, matrixIdx, weight, stateFreqs, scaleIdx, outLogL, deriv)
}

// StoreState snapshots all mutable state for a later RestoreState.
func (inst *Instance) StoreState() error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.storeState()
}

// RestoreState reverts to the last StoreState snapshot.
func (inst *Instance) RestoreState() error {
	if err := inst.checkAlive(); err != nil {
		return err
	}
	return inst.restoreState()
}
