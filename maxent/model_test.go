package maxent

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestRHS(t *testing.T) {
	rhs := NewRHS("NP", "(VP x)")
	assert.Equal(t, []string{"NP", "(VP x)"}, rhs.Tokens())
	assert.Equal(t, "NP (VP x)", rhs.String())
	assert.NotEqual(t, NewRHS("a b"), NewRHS("a", "b"))
	assert.Equal(t, "S --> NP (VP x)", Rule{LHS: "S", RHS: rhs}.String())
}

func TestAggregate(t *testing.T) {
	ft, err := Aggregate([]Observation{
		{Freq: 3, LHS: "S", RHS: NewRHS("A")},
		{Freq: 1, LHS: "S", RHS: NewRHS("B")},
		{Freq: 2, LHS: "S", RHS: NewRHS("A")},
		{Freq: 0, LHS: "T", RHS: NewRHS("c", "d")},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, ft.Freq("S", NewRHS("A")))
	assert.Equal(t, 1, ft.Freq("S", NewRHS("B")))
	assert.Equal(t, 0, ft.Freq("T", NewRHS("c", "d")))
	assert.Equal(t, []string{"S", "T"}, ft.LHSs())
	assert.Equal(t, []RHS{NewRHS("A"), NewRHS("B")}, ft.RHSs("S"))
	assert.Equal(t, 6, ft.Total())

	_, err = Aggregate([]Observation{{Freq: -1, LHS: "S", RHS: NewRHS("A")}})
	assert.Error(t, err)
}

func TestDenseModelFeatureMismatch(t *testing.T) {
	_, err := NewDenseModel([]DenseEntry{
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1, 0}},
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1, 1}},
	})
	var mismatch *FeatureMismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.Equal(t, Rule{LHS: "S", RHS: NewRHS("A")}, mismatch.Rule)
	assert.Equal(t, []float64{1, 0}, mismatch.Stored)
	assert.Equal(t, []float64{1, 1}, mismatch.Got)
}

func TestDenseModelRepeatedRule(t *testing.T) {
	m, err := NewDenseModel([]DenseEntry{
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1, 0}},
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.NumRules())
	assert.Equal(t, 2, m.Dim())
	assert.Equal(t, []float64{1, 0}, m.FeatureVector("S", NewRHS("A")))
}

func TestDenseModelDimensionMismatch(t *testing.T) {
	_, err := NewDenseModel([]DenseEntry{
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1, 0}},
		{LHS: "S", RHS: NewRHS("B"), Features: []float64{1, 0, 0}},
	})
	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.Equal(t, 2, mismatch.Want)
	assert.Equal(t, 3, mismatch.Got)
}

func TestDenseModelEmpty(t *testing.T) {
	_, err := NewDenseModel(nil)
	assert.True(t, errors.Is(err, ErrEmptyModel))

	_, err = NewDenseModel([]DenseEntry{{LHS: "S", RHS: NewRHS("A")}})
	assert.True(t, errors.Is(err, ErrNoFeatures))
}

func TestDenseModelRHSs(t *testing.T) {
	m, err := NewDenseModel([]DenseEntry{
		{LHS: "S", RHS: NewRHS("B"), Features: []float64{0}},
		{LHS: "S", RHS: NewRHS("A"), Features: []float64{1}},
		{LHS: "NP", RHS: NewRHS("x"), Features: []float64{2}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"NP", "S"}, m.LHSs())
	rhss, err := m.RHSs("S")
	require.NoError(t, err)
	assert.Equal(t, []RHS{NewRHS("A"), NewRHS("B")}, rhss)

	_, err = m.RHSs("VP")
	assert.True(t, errors.Is(err, ErrUnknownLHS))

	assert.Equal(t, 4.0, m.Score([]float64{2}, "NP", NewRHS("x")))
	assert.Nil(t, m.FeatureVector("S", NewRHS("C")))
}

func TestIndicatorModel(t *testing.T) {
	rules := []Rule{
		{LHS: "S", RHS: NewRHS("NP", "VP")},
		{LHS: "NP", RHS: NewRHS("john")},
		{LHS: "S", RHS: NewRHS("VP")},
		{LHS: "S", RHS: NewRHS("NP", "VP")},
		{LHS: "NP", RHS: NewRHS("(D the)", "N")},
	}
	m, err := NewIndicatorModel(rules)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Dim())
	assert.Equal(t, 0, m.Index("S", NewRHS("NP", "VP")))
	assert.Equal(t, 1, m.Index("NP", NewRHS("john")))
	assert.Equal(t, 2, m.Index("S", NewRHS("VP")))
	assert.Equal(t, 3, m.Index("NP", NewRHS("(D the)", "N")))
	assert.Equal(t, -1, m.Index("NP", NewRHS("mary")))
	assert.Len(t, m.Rules(), 4)

	assert.Equal(t, []string{"NP", "S"}, m.LHSs())
	rhss, err := m.RHSs("NP")
	require.NoError(t, err)
	assert.Equal(t, []RHS{NewRHS("(D the)", "N"), NewRHS("john")}, rhss)

	_, err = m.RHSs("VP")
	assert.True(t, errors.Is(err, ErrUnknownLHS))

	assert.Equal(t, []float64{0, 0, 1, 0}, m.FeatureVector("S", NewRHS("VP")))
	assert.Nil(t, m.FeatureVector("S", NewRHS("NP")))

	_, err = NewIndicatorModel(nil)
	assert.True(t, errors.Is(err, ErrEmptyModel))
}

func TestIndicatorScoreMatchesDotProduct(t *testing.T) {
	m, err := NewIndicatorModel([]Rule{
		{LHS: "S", RHS: NewRHS("A")},
		{LHS: "S", RHS: NewRHS("B")},
		{LHS: "S", RHS: NewRHS("C")},
		{LHS: "T", RHS: NewRHS("a", "b")},
		{LHS: "T", RHS: NewRHS("c")},
	})
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		w := randomWeights(rnd, m.Dim(), 5)
		for _, r := range Rules(m) {
			want := floats.Dot(w, m.FeatureVector(r.LHS, r.RHS))
			assert.InDelta(t, want, m.Score(w, r.LHS, r.RHS), 1e-12, "rule %s", r)
			assert.InDelta(t, want, DotScore(m, w, r.LHS, r.RHS), 1e-12, "rule %s", r)
		}
	}
}

func randomWeights(rnd *rand.Rand, dim int, scale float64) []float64 {
	w := make([]float64, dim)
	for i := range w {
		w[i] = scale * (2*rnd.Float64() - 1)
	}
	return w
}
