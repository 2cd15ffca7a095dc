// Package maxent implements log-linear (maximum-entropy) models over rules
// and their penalized maximum-likelihood training.
//
// A rule pairs a left-hand side (LHS) with one of its alternative right-hand
// sides (RHS). For a fixed LHS the model assigns each RHS the probability
//
//	P(rhs|lhs) = exp(w·f(lhs,rhs)) / Σ_rhs' exp(w·f(lhs,rhs'))
//
// where f is the rule's feature vector and w the trained weight vector.
package maxent

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// rhsSep joins RHS tokens. Tokens never contain control characters.
const rhsSep = "\x1f"

// RHS is an ordered sequence of tokens in a form that can key a map.
type RHS string

// NewRHS builds an RHS from its tokens.
func NewRHS(tokens ...string) RHS {
	return RHS(strings.Join(tokens, rhsSep))
}

// Tokens returns the token sequence.
func (r RHS) Tokens() []string {
	if r == "" {
		return nil
	}
	return strings.Split(string(r), rhsSep)
}

// String returns the tokens separated by single spaces.
func (r RHS) String() string {
	return strings.ReplaceAll(string(r), rhsSep, " ")
}

// Rule is an (LHS, RHS) pair, the unit to which features and probability
// mass attach.
type Rule struct {
	LHS string
	RHS RHS
}

// String renders the rule as "LHS --> RHS".
func (r Rule) String() string {
	return r.LHS + " --> " + r.RHS.String()
}

// FeatureModel maps rules to fixed-length feature vectors.
//
// Implementations are immutable once built. LHSs and RHSs return their
// results in a deterministic (sorted) order.
type FeatureModel interface {
	// LHSs returns every LHS with at least one recorded RHS.
	LHSs() []string
	// RHSs returns the RHSs recorded for lhs, or ErrUnknownLHS.
	RHSs(lhs string) ([]RHS, error)
	// Dim returns the feature dimensionality shared by all rules.
	Dim() int
	// FeatureVector returns the feature vector of a known rule. The result
	// must not be modified. It is nil for rules the model was not built with.
	FeatureVector(lhs string, rhs RHS) []float64
	// Score returns the linear score w·f(lhs,rhs).
	Score(weights []float64, lhs string, rhs RHS) float64
}

// DotScore is the generic score of a rule: the dot product of weights with
// the rule's feature vector.
func DotScore(m FeatureModel, weights []float64, lhs string, rhs RHS) float64 {
	return floats.Dot(weights, m.FeatureVector(lhs, rhs))
}

// Rules lists every rule of the model, LHSs in model order and RHSs sorted.
func Rules(m FeatureModel) []Rule {
	var rules []Rule
	for _, lhs := range m.LHSs() {
		rhss, _ := m.RHSs(lhs)
		for _, rhs := range rhss {
			rules = append(rules, Rule{LHS: lhs, RHS: rhs})
		}
	}
	return rules
}

// sortRHSs orders RHSs by their display text.
func sortRHSs(rhss []RHS) {
	sort.Slice(rhss, func(i, j int) bool {
		return rhss[i].String() < rhss[j].String()
	})
}

func unknownLHS(lhs string) error {
	return errors.Wrapf(ErrUnknownLHS, "lhs %q", lhs)
}
