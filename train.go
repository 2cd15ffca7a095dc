package loglin

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/happyhackingspace/loglin/internal/minimize"
	"github.com/happyhackingspace/loglin/internal/report"
	"github.com/happyhackingspace/loglin/maxent"
)

// TrainConfig holds configuration for training.
type TrainConfig struct {
	Lambda            float64
	Method            string
	MaxIterations     int
	GradientThreshold float64
	Basic             bool
}

// Result is a trained model.
type Result struct {
	*Data
	Training      *maxent.TrainResult
	Lambda        float64
	Method        string
	Penalty       float64
	LogLikelihood float64
}

// Train reads the training file at path and fits the model's weights. A nil
// config trains a dense model without regularization.
func Train(path string, config *TrainConfig) (*Result, error) {
	if config == nil {
		config = &TrainConfig{}
	}
	data, err := Load(path, config.Basic)
	if err != nil {
		return nil, err
	}
	return TrainData(data, config)
}

// TrainData fits the weights of an already loaded model.
func TrainData(data *Data, config *TrainConfig) (*Result, error) {
	if config == nil {
		config = &TrainConfig{}
	}
	tc := maxent.DefaultTrainerConfig()
	tc.Lambda = config.Lambda
	if config.Method != "" {
		tc.Method = config.Method
	}
	tc.MaxIterations = config.MaxIterations
	tc.GradientThreshold = config.GradientThreshold

	tr, err := maxent.Train(data.Model, data.Freqs, tc)
	if err != nil {
		return nil, errors.Wrap(err, "loglin")
	}

	obj := &maxent.Objective{Model: data.Model, Freqs: data.Freqs, Lambda: tc.Lambda}
	return &Result{
		Data:          data,
		Training:      tr,
		Lambda:        tc.Lambda,
		Method:        tc.Method,
		Penalty:       maxent.Penalty(tc.Lambda, tr.Weights),
		LogLikelihood: obj.LogLikelihood(tr.Weights),
	}, nil
}

// Rows scores every rule under the fitted weights.
func (r *Result) Rows() []RuleProbability {
	return r.Data.Rows(r.Training.Weights)
}

// Summary returns the training diagnostics for reporting.
func (r *Result) Summary() report.Summary {
	return report.Summary{
		Training:      r.Training,
		Penalty:       r.Penalty,
		LogLikelihood: r.LogLikelihood,
	}
}

// Weights returns the fitted weight vector in its emitted form.
func (r *Result) Weights() *Weights {
	return &Weights{
		Dim:     r.Model.Dim(),
		Lambda:  r.Lambda,
		Method:  r.Method,
		Weights: r.Training.Weights,
		Rules:   r.RuleLabels(),
	}
}

// Report scores the rules of the training file at path under previously
// emitted weights.
func Report(path string, weights *Weights, basic bool) ([]RuleProbability, error) {
	data, err := Load(path, basic)
	if err != nil {
		return nil, err
	}
	if weights.Dim != data.Model.Dim() || len(weights.Weights) != weights.Dim {
		return nil, errors.Wrap(&maxent.DimensionMismatchError{Want: data.Model.Dim(), Got: len(weights.Weights)}, "loglin")
	}
	if weights.Rules != nil && !slices.Equal(weights.Rules, data.RuleLabels()) {
		return nil, errors.New("loglin: weights were trained on different rules")
	}
	return data.Rows(weights.Weights), nil
}

// Methods lists the available minimization methods.
func Methods() []string {
	return minimize.Methods()
}
