package maxent

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownLHS is returned for an LHS the model was not built with.
	ErrUnknownLHS = errors.New("unknown lhs")
	// ErrUnknownRule is returned when training data references a rule the
	// model has no features for.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrEmptyModel is returned when a model is built from no rules.
	ErrEmptyModel = errors.New("model has no rules")
	// ErrNoFeatures is returned when a dense model's feature vectors are empty.
	ErrNoFeatures = errors.New("feature vectors are empty")
)

// DimensionMismatchError reports a feature vector whose length differs from
// the dimensionality fixed by the first rule.
type DimensionMismatchError struct {
	Rule Rule
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	if e.Rule == (Rule{}) {
		return fmt.Sprintf("mismatching dimensions: want %d, got %d", e.Want, e.Got)
	}
	return fmt.Sprintf("mismatching dimensions for %s: want %d, got %d", e.Rule, e.Want, e.Got)
}

// FeatureMismatchError reports a rule seen twice with different feature
// vectors.
type FeatureMismatchError struct {
	Rule   Rule
	Stored []float64
	Got    []float64
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("mismatching features for %s: have %v, got %v", e.Rule, e.Stored, e.Got)
}
