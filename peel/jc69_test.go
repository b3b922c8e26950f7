package peel

import "math"

// jc69Eigen returns the standard Hadamard eigendecomposition of the JC69
// rate matrix used throughout this test package: U = Uinv = H/2 (H the 4x4
// Hadamard matrix, which is symmetric and orthogonal up to the factor 2),
// with eigenvalues (0, -4/3, -4/3, -4/3). This reproduces the textbook
// closed form P(t)_ii = 1/4 + 3/4 e^{-4t/3}, P(t)_ij = 1/4 - 1/4 e^{-4t/3}
// for i != j (verified algebraically via Hadamard row/column orthogonality).
func jc69Eigen() (u, uinv, lambda []float64) {
	h := []float64{
		1, 1, 1, 1,
		1, -1, 1, -1,
		1, 1, -1, -1,
		1, -1, -1, 1,
	}
	u = make([]float64, 16)
	for i, v := range h {
		u[i] = v / 2
	}
	uinv = append([]float64{}, u...) // H is symmetric and self-inverse up to scale
	lambda = []float64{0, -4.0 / 3.0, -4.0 / 3.0, -4.0 / 3.0}
	return
}

// jc69Prob returns the exact closed-form JC69 transition probability
// P(t)_ij, used as an independent reference to check the eigen-cache-based
// transition builder.
func jc69Prob(t float64, i, j int) float64 {
	e := math.Exp(-4.0 * t / 3.0)
	if i == j {
		return 0.25 + 0.75*e
	}
	return 0.25 - 0.25*e
}
