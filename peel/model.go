package peel

// rateModel holds the discrete-rate-category mixture model: per-category
// rate scalers and proportions, plus the most recently set state-frequency
// table (spec §3 "Rate model"). Root and edge integration take their
// frequencies as an argument and do not read this table. Each scalar table lives
// in its own arena so storeState/restoreState can snapshot and restore
// them by the pointer-swap idiom of spec §4.6.
type rateModel struct {
	categoryCount int
	stateCount    int

	rates       *arena // length C
	proportions *arena // length C

	// frequencies holds the most recently set table; S entries,
	// snapshotted the same way.
	frequencies *arena // length S

	// branchLengths records, per transition-matrix slot, the edge length
	// last used to build it — spec §4.6 lists branch lengths among the
	// scalar tables storeState/restoreState must snapshot.
	branchLengths *arena // length M
}

// newRateModel allocates every arena up front (spec §5: all allocation
// happens at instance creation, none on the update/peeling/integration
// paths). matrixCount sizes the branch-length arena.
func newRateModel(categoryCount, stateCount, matrixCount int) *rateModel {
	m := &rateModel{categoryCount: categoryCount, stateCount: stateCount}
	m.rates = newArena(categoryCount)
	m.proportions = newArena(categoryCount)
	m.frequencies = newArena(stateCount)
	m.branchLengths = newArena(matrixCount)
	return m
}

// setCategoryRates sets the C positive per-category rate scalers.
func (inst *Instance) setCategoryRates(rates []float64) error {
	if len(rates) != inst.model.categoryCount {
		return outOfRange("category rates length %d, want %d", len(rates), inst.model.categoryCount)
	}
	if StrictChecks {
		for _, r := range rates {
			if r <= 0 {
				return general("category rate %v must be positive", r)
			}
		}
	}
	copy(inst.model.rates.live(), rates)
	return nil
}

// setCategoryWeights sets the C nonneg category proportions; spec requires
// they sum to 1 (checked when StrictChecks is enabled).
func (inst *Instance) setCategoryWeights(weights []float64) error {
	if len(weights) != inst.model.categoryCount {
		return outOfRange("category weights length %d, want %d", len(weights), inst.model.categoryCount)
	}
	if StrictChecks {
		var sum float64
		for _, w := range weights {
			if w < 0 {
				return general("category weight %v must be nonneg", w)
			}
			sum += w
		}
		if diff := sum - 1.0; diff > 1e-6 || diff < -1e-6 {
			return general("category weights sum to %v, want 1.0", sum)
		}
	}
	copy(inst.model.proportions.live(), weights)
	return nil
}

// setStateFrequencies stores the S equilibrium state frequencies. Root and
// edge integration do not read them; they take frequencies as an argument.
func (inst *Instance) setStateFrequencies(freqs []float64) error {
	if len(freqs) != inst.model.stateCount {
		return outOfRange("state frequencies length %d, want %d", len(freqs), inst.model.stateCount)
	}
	copy(inst.model.frequencies.live(), freqs)
	return nil
}
