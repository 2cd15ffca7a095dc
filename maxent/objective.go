package maxent

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogLikelihoodFloor is the log-likelihood reported when some observed rule
// has probability exactly zero.
const LogLikelihoodFloor = -math.MaxFloat64

// Penalty returns the L2 penalty lambda/2 * ||weights||².
func Penalty(lambda float64, weights []float64) float64 {
	return lambda / 2 * floats.Dot(weights, weights)
}

// PenaltyGradient stores lambda * weights in dst.
func PenaltyGradient(dst []float64, lambda float64, weights []float64) {
	floats.ScaleTo(dst, lambda, weights)
}

// Objective is the L2-penalized negative log-likelihood of a frequency
// table under a feature model. All methods are pure functions of the
// weight vector.
type Objective struct {
	Model  FeatureModel
	Freqs  FrequencyTable
	Lambda float64
}

// LogLikelihood returns Σ freq * log P(rhs|lhs) over the frequency table.
func (o *Objective) LogLikelihood(weights []float64) float64 {
	return o.logLikelihood(Probabilities(o.Model, weights))
}

func (o *Objective) logLikelihood(pt ProbabilityTable) float64 {
	var ll float64
	for _, lhs := range o.Freqs.LHSs() {
		for _, rhs := range o.Freqs.RHSs(lhs) {
			p := pt.Prob(lhs, rhs)
			if p == 0 {
				return LogLikelihoodFloor
			}
			ll += float64(o.Freqs[lhs][rhs]) * math.Log(p)
		}
	}
	return ll
}

// Value returns penalty - log-likelihood, the quantity to minimize.
func (o *Objective) Value(weights []float64) float64 {
	return Penalty(o.Lambda, weights) - o.LogLikelihood(weights)
}

// Gradient stores the gradient of Value at weights in grad.
func (o *Objective) Gradient(grad, weights []float64) {
	o.gradient(grad, weights, Probabilities(o.Model, weights))
}

// ValueGradient stores the gradient in grad and returns the value, sharing
// one probability table between the two.
func (o *Objective) ValueGradient(grad, weights []float64) float64 {
	pt := Probabilities(o.Model, weights)
	o.gradient(grad, weights, pt)
	return Penalty(o.Lambda, weights) - o.logLikelihood(pt)
}

// gradient computes lambda*w - Σ freq * (f(lhs,rhs) - E_lhs[f]), where
// E_lhs[f] is the model expectation of the feature vector under lhs.
func (o *Objective) gradient(grad, weights []float64, pt ProbabilityTable) {
	dim := o.Model.Dim()
	lhss := o.Freqs.LHSs()

	expectation := make(map[string][]float64, len(lhss))
	for _, lhs := range lhss {
		e := make([]float64, dim)
		rhss, _ := o.Model.RHSs(lhs)
		for _, rhs := range rhss {
			floats.AddScaled(e, pt.Prob(lhs, rhs), o.Model.FeatureVector(lhs, rhs))
		}
		expectation[lhs] = e
	}

	llgrad := make([]float64, dim)
	for _, lhs := range lhss {
		e := expectation[lhs]
		for _, rhs := range o.Freqs.RHSs(lhs) {
			freq := float64(o.Freqs[lhs][rhs])
			floats.AddScaled(llgrad, freq, o.Model.FeatureVector(lhs, rhs))
			floats.AddScaled(llgrad, -freq, e)
		}
	}

	PenaltyGradient(grad, o.Lambda, weights)
	floats.Sub(grad, llgrad)
}
