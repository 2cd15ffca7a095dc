package maxent

import "math"

// ProbabilityTable holds P(rhs|lhs) for every rule of a model, keyed
// LHS -> RHS.
type ProbabilityTable map[string]map[RHS]float64

// Prob returns P(rhs|lhs), or 0 for a rule not in the table.
func (pt ProbabilityTable) Prob(lhs string, rhs RHS) float64 {
	return pt[lhs][rhs]
}

// Probabilities computes the distribution over RHSs of every LHS of m
// under weights.
func Probabilities(m FeatureModel, weights []float64) ProbabilityTable {
	pt := make(ProbabilityTable)
	for _, lhs := range m.LHSs() {
		rhss, _ := m.RHSs(lhs)
		scores := make([]float64, len(rhss))
		for i, rhs := range rhss {
			scores[i] = m.Score(weights, lhs, rhs)
		}
		probs := softmax(scores)
		d := make(map[RHS]float64, len(rhss))
		for i, rhs := range rhss {
			d[rhs] = probs[i]
		}
		pt[lhs] = d
	}
	return pt
}

// softmax normalizes exp(scores), shifting by the maximum score first so
// that large scores do not overflow and very negative ones do not all
// underflow to zero.
func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
