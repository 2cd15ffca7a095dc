package loglin

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happyhackingspace/loglin/internal/trainfile"
	"github.com/happyhackingspace/loglin/maxent"
)

const twoRules = `# S prefers A
3 | S | A | 1.0
1 | S | B | 0.0
`

func writeTrainingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func probOf(rows []RuleProbability, lhs, rhs string) float64 {
	for _, r := range rows {
		if r.LHS == lhs && r.RHS == rhs {
			return r.Probability
		}
	}
	return -1
}

func TestTrainUnregularized(t *testing.T) {
	res, err := Train(writeTrainingFile(t, twoRules), nil)
	require.NoError(t, err)

	rows := res.Rows()
	require.Len(t, rows, 2)
	pA, pB := probOf(rows, "S", "A"), probOf(rows, "S", "B")
	assert.Greater(t, pA, pB)
	assert.InDelta(t, 0.75, pA, 1e-4)
	assert.Equal(t, 0.0, res.Penalty)
	assert.InDelta(t, 3*math.Log(0.75)+math.Log(0.25), res.LogLikelihood, 1e-6)
}

func TestTrainStrongRegularization(t *testing.T) {
	res, err := Train(writeTrainingFile(t, twoRules), &TrainConfig{Lambda: 1e6})
	require.NoError(t, err)

	assert.InDelta(t, 0, res.Training.Weights[0], 1e-4)
	rows := res.Rows()
	assert.InDelta(t, 0.5, probOf(rows, "S", "A"), 1e-4)
	assert.InDelta(t, 0.5, probOf(rows, "S", "B"), 1e-4)
}

func TestTrainBasic(t *testing.T) {
	path := writeTrainingFile(t, `
6 | S | NP VP |
2 | S | VP |
1 | NP | john |
1 | NP | (D the) N |
`)
	res, err := Train(path, &TrainConfig{Basic: true, Lambda: 0.001})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Model.Dim())

	rows := res.Rows()
	assert.InDelta(t, 0.75, probOf(rows, "S", "NP VP"), 0.01)
	assert.InDelta(t, 0.5, probOf(rows, "NP", "john"), 0.01)

	w := res.Weights()
	assert.Equal(t, []string{"S --> NP VP", "S --> VP", "NP --> john", "NP --> (D the) N"}, w.Rules)
	assert.Equal(t, 0.001, w.Lambda)
	assert.Equal(t, "bfgs", w.Method)
}

func TestTrainErrors(t *testing.T) {
	_, err := Train(writeTrainingFile(t, "3 | S | A | 1 0\n1 | S | B | 0 1 1\n"), nil)
	var dim *maxent.DimensionMismatchError
	assert.True(t, errors.As(err, &dim), "got %v", err)

	_, err = Train(writeTrainingFile(t, "3 | S | A | 1 0\n1 | S | A | 1 1\n"), nil)
	var feat *maxent.FeatureMismatchError
	assert.True(t, errors.As(err, &feat), "got %v", err)

	_, err = Train(writeTrainingFile(t, "3 | S | A\n"), nil)
	var mre *trainfile.MalformedRecordError
	assert.True(t, errors.As(err, &mre), "got %v", err)

	_, err = Train(writeTrainingFile(t, "# nothing\n"), nil)
	assert.True(t, errors.Is(err, maxent.ErrEmptyModel), "got %v", err)

	_, err = Train(writeTrainingFile(t, twoRules), &TrainConfig{Method: "newton"})
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	path := writeTrainingFile(t, twoRules)
	res, err := Train(path, &TrainConfig{Lambda: 0.1})
	require.NoError(t, err)

	rows, err := Report(path, res.Weights(), false)
	require.NoError(t, err)
	assert.Equal(t, res.Rows(), rows)

	_, err = Report(path, &Weights{Dim: 2, Weights: []float64{1, 2}}, false)
	var dim *maxent.DimensionMismatchError
	assert.True(t, errors.As(err, &dim), "got %v", err)

	_, err = Report(path, &Weights{Dim: 2, Weights: []float64{1, 2}, Rules: []string{"S --> B", "S --> A"}}, true)
	assert.ErrorContains(t, err, "different rules")
}

func TestMethods(t *testing.T) {
	assert.Contains(t, Methods(), "bfgs")
}
