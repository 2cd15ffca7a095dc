package maxent

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DenseEntry is a rule together with its explicit feature vector.
type DenseEntry struct {
	LHS      string
	RHS      RHS
	Features []float64
}

// DenseModel stores an explicit feature vector per rule. It is used for
// hand-engineered features.
type DenseModel struct {
	rules map[string]map[RHS][]float64
	dim   int
}

// NewDenseModel builds a dense model from entries. All feature vectors must
// have the same length, and a rule repeated across entries must carry the
// same vector each time.
func NewDenseModel(entries []DenseEntry) (*DenseModel, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyModel
	}
	m := &DenseModel{rules: make(map[string]map[RHS][]float64)}
	for _, e := range entries {
		if err := m.Add(e.LHS, e.RHS, e.Features); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add records the feature vector of lhs --> rhs. The first call fixes the
// model's dimensionality. Re-adding a rule with an equal vector is a no-op.
func (m *DenseModel) Add(lhs string, rhs RHS, features []float64) error {
	if m.rules == nil {
		m.rules = make(map[string]map[RHS][]float64)
	}
	if m.dim == 0 {
		if len(features) == 0 {
			return ErrNoFeatures
		}
		m.dim = len(features)
	} else if len(features) != m.dim {
		return &DimensionMismatchError{Rule: Rule{lhs, rhs}, Want: m.dim, Got: len(features)}
	}

	d, ok := m.rules[lhs]
	if !ok {
		d = make(map[RHS][]float64)
		m.rules[lhs] = d
	}
	if old, ok := d[rhs]; ok {
		if !floats.Equal(old, features) {
			return &FeatureMismatchError{Rule: Rule{lhs, rhs}, Stored: old, Got: features}
		}
		return nil
	}
	d[rhs] = append([]float64(nil), features...)
	return nil
}

// Dim returns the feature dimensionality.
func (m *DenseModel) Dim() int {
	return m.dim
}

// NumRules returns the number of distinct rules stored.
func (m *DenseModel) NumRules() int {
	n := 0
	for _, d := range m.rules {
		n += len(d)
	}
	return n
}

// LHSs returns the model's LHSs in sorted order.
func (m *DenseModel) LHSs() []string {
	return sortedKeys(m.rules)
}

// RHSs returns the RHSs recorded for lhs.
func (m *DenseModel) RHSs(lhs string) ([]RHS, error) {
	d, ok := m.rules[lhs]
	if !ok {
		return nil, unknownLHS(lhs)
	}
	rhss := make([]RHS, 0, len(d))
	for rhs := range d {
		rhss = append(rhss, rhs)
	}
	sortRHSs(rhss)
	return rhss, nil
}

// FeatureVector returns the stored feature vector of a rule.
func (m *DenseModel) FeatureVector(lhs string, rhs RHS) []float64 {
	return m.rules[lhs][rhs]
}

// Score returns the dot product of weights and the rule's features.
func (m *DenseModel) Score(weights []float64, lhs string, rhs RHS) float64 {
	return DotScore(m, weights, lhs, rhs)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
