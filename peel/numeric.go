package peel

import "gonum.org/v1/gonum/floats"

// categoryMixture computes I[k,i] = Σ_l proportions[l] * partials[l,k,i] for
// every pattern k and state i (spec §4.5.1 step 2), writing into out
// (length P*S). Uses gonum/floats.Sum for the per-(k,i) reduction across
// categories, matching the teacher's ecosystem preference for gonum over a
// hand-rolled accumulator loop. scratch is a caller-owned length-C row
// (reused every (k,i), never allocated here) so the integration path stays
// allocation-free per spec §5.
func categoryMixture(d Dims, partials []float64, proportions []float64, scratch []float64, out []float64) {
	s, p, c := d.StateCount, d.PatternCount, d.CategoryCount
	for k := 0; k < p; k++ {
		for i := 0; i < s; i++ {
			for l := 0; l < c; l++ {
				scratch[l] = proportions[l] * partials[l*p*s+k*s+i]
			}
			out[k*s+i] = floats.Sum(scratch)
		}
	}
}

// stateIntegrate computes L[k] = Σ_i freqs[i] * mixture[k,i] (spec §4.5.1
// step 3 / §4.5.2's inner product) via gonum/floats.Dot.
func stateIntegrate(d Dims, mixture []float64, freqs []float64, out []float64) {
	s, p := d.StateCount, d.PatternCount
	for k := 0; k < p; k++ {
		out[k] = floats.Dot(freqs, mixture[k*s:(k+1)*s])
	}
}
