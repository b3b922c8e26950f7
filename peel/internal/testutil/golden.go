// Package testutil provides shared test infrastructure for the peeling
// engine. It consolidates golden scenario types and assertion helpers used
// across peel/ test files.
package testutil

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenscenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is a fully worked peeling scenario: enough tip data, an
// eigen system, a rate model, and an operation batch to drive a
// peel.Instance end to end, plus the expected per-pattern log-likelihoods.
type GoldenScenario struct {
	Name             string        `json:"name"`
	StateCount       int           `json:"state_count"`
	PatternCount     int           `json:"pattern_count"`
	CategoryCount    int           `json:"category_count"`
	TipCount         int           `json:"tip_count"`
	BufferCount      int           `json:"buffer_count"`
	TipStates        [][]int       `json:"tip_states,omitempty"`
	TipPartials      [][]float64   `json:"tip_partials,omitempty"`
	EigenVectors     []float64     `json:"eigen_vectors"`
	EigenVectorsInv  []float64     `json:"eigen_vectors_inv"`
	EigenValues      []float64     `json:"eigen_values"`
	CategoryRates    []float64     `json:"category_rates"`
	CategoryWeights  []float64     `json:"category_weights"`
	StateFrequencies []float64     `json:"state_frequencies"`
	EdgeLengths      []float64     `json:"edge_lengths"`
	MatrixIndices    []int         `json:"matrix_indices"`
	Ops              []GoldenOp    `json:"ops"`
	RootBuffer       int           `json:"root_buffer"`
	ExpectedLogL     []float64     `json:"expected_log_likelihoods"`
	ExpectedRelTol   float64       `json:"expected_rel_tol"`
}

// GoldenOp mirrors the 6-tuple accepted by peel.Instance.UpdatePartials.
type GoldenOp struct {
	Dest     int `json:"dest"`
	ScaleIdx int `json:"scale_idx"`
	Child1   int `json:"child1"`
	Matrix1  int `json:"matrix1"`
	Child2   int `json:"child2"`
	Matrix2  int `json:"matrix2"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: peel/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	// Navigate from peel/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertFloat64SliceEqual compares two float64 slices elementwise with
// relative tolerance, reporting the index of the first mismatch.
func AssertFloat64SliceEqual(t *testing.T, name string, want, got []float64, relTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: length mismatch: got %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		AssertFloat64Equal(t, fmt.Sprintf("%s[%d]", name, i), want[i], got[i], relTol)
	}
}
