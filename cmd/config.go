// cmd/config.go
package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clademodel/peelcore/peel"
)

// ScenarioConfig is the on-disk description of one likelihood evaluation:
// dimensions, tip data, an eigendecomposition, category rates/weights, a
// peeling plan, and a root reduction. It mirrors peel.Dims and the
// peel.Operation wire shape closely enough that loading one is a direct
// field-by-field transcription, not a separate domain model.
type ScenarioConfig struct {
	Name string `yaml:"name"`

	TipCount      int `yaml:"tip_count"`
	BufferCount   int `yaml:"buffer_count"`
	StateCount    int `yaml:"state_count"`
	PatternCount  int `yaml:"pattern_count"`
	CategoryCount int `yaml:"category_count"`
	MatrixCount   int `yaml:"matrix_count"`

	TipStates   map[int][]int     `yaml:"tip_states"`
	TipPartials map[int][]float64 `yaml:"tip_partials"`

	EigenVectors    []float64 `yaml:"eigen_vectors"`
	EigenVectorsInv []float64 `yaml:"eigen_vectors_inv"`
	EigenValues     []float64 `yaml:"eigen_values"`

	CategoryRates    []float64 `yaml:"category_rates"`
	CategoryWeights  []float64 `yaml:"category_weights"`
	StateFrequencies []float64 `yaml:"state_frequencies"`

	MatrixIndices []int       `yaml:"matrix_indices"`
	EdgeLengths   []float64   `yaml:"edge_lengths"`
	Ops           []OpConfig  `yaml:"ops"`
	Rescale       bool        `yaml:"rescale"`

	RootBuffer int `yaml:"root_buffer"`
}

// OpConfig mirrors peel.Operation with YAML-friendly field names.
type OpConfig struct {
	Dest     int `yaml:"dest"`
	ScaleIdx int `yaml:"scale_idx"`
	Child1   int `yaml:"child1"`
	Matrix1  int `yaml:"matrix1"`
	Child2   int `yaml:"child2"`
	Matrix2  int `yaml:"matrix2"`
}

// LoadScenarioConfig reads and parses a scenario file. It does not validate
// the scenario against an *peel.Instance; call Validate for that.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	return &cfg, nil
}

// Dims builds the peel.Dims this scenario describes.
func (c *ScenarioConfig) Dims() peel.Dims {
	return peel.Dims{
		TipCount:      c.TipCount,
		BufferCount:   c.BufferCount,
		StateCount:    c.StateCount,
		PatternCount:  c.PatternCount,
		CategoryCount: c.CategoryCount,
		EigenCount:    1,
		MatrixCount:   c.MatrixCount,
	}
}

// Operations converts the YAML op list into peel.Operation values. When
// Rescale is disabled for the whole scenario, every op's scale_idx becomes
// peel.ScaleNone whatever the YAML names; when it is enabled, scale_idx is
// passed through unchanged (a scenario that rescales must name real indices).
func (c *ScenarioConfig) Operations() []peel.Operation {
	ops := make([]peel.Operation, len(c.Ops))
	for i, o := range c.Ops {
		idx := o.ScaleIdx
		if !c.Rescale {
			idx = peel.ScaleNone
		}
		ops[i] = peel.Operation{
			Dest:     o.Dest,
			ScaleIdx: idx,
			Child1:   o.Child1,
			Matrix1:  o.Matrix1,
			Child2:   o.Child2,
			Matrix2:  o.Matrix2,
		}
	}
	return ops
}

// Validate checks internal consistency of the scenario independent of any
// peel.Instance: array lengths against the declared dimensions.
func (c *ScenarioConfig) Validate() error {
	s := c.StateCount
	if len(c.EigenVectors) != s*s {
		return fmt.Errorf("eigen_vectors length %d, want %d", len(c.EigenVectors), s*s)
	}
	if len(c.EigenVectorsInv) != s*s {
		return fmt.Errorf("eigen_vectors_inv length %d, want %d", len(c.EigenVectorsInv), s*s)
	}
	if len(c.EigenValues) != s {
		return fmt.Errorf("eigen_values length %d, want %d", len(c.EigenValues), s)
	}
	if len(c.CategoryRates) != c.CategoryCount {
		return fmt.Errorf("category_rates length %d, want %d", len(c.CategoryRates), c.CategoryCount)
	}
	if len(c.CategoryWeights) != c.CategoryCount {
		return fmt.Errorf("category_weights length %d, want %d", len(c.CategoryWeights), c.CategoryCount)
	}
	if len(c.StateFrequencies) != s {
		return fmt.Errorf("state_frequencies length %d, want %d", len(c.StateFrequencies), s)
	}
	if len(c.MatrixIndices) != len(c.EdgeLengths) {
		return fmt.Errorf("matrix_indices length %d != edge_lengths length %d", len(c.MatrixIndices), len(c.EdgeLengths))
	}
	if c.RootBuffer < 0 || c.RootBuffer >= c.BufferCount {
		return fmt.Errorf("root_buffer %d out of range [0,%d)", c.RootBuffer, c.BufferCount)
	}
	return nil
}
