package maxent

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/happyhackingspace/loglin/internal/minimize"
)

// TrainerConfig holds training hyperparameters.
type TrainerConfig struct {
	Lambda            float64   // L2 regularization strength
	Method            string    // minimization method, see minimize.Methods
	InitialWeights    []float64 // starting point; nil means the zero vector
	MaxIterations     int       // 0 leaves the limit to the method
	GradientThreshold float64   // 0 leaves the threshold to the method
}

// DefaultTrainerConfig returns unregularized maximum-likelihood training
// with BFGS from the zero vector.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Lambda: 0,
		Method: minimize.DefaultMethod,
	}
}

// TrainResult holds the fitted weights and the minimizer's diagnostics.
type TrainResult struct {
	Weights         []float64
	Objective       float64
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
	Message         string
	Converged       bool
}

// Train fits the weights of m to the frequencies in freqs by minimizing
// the L2-penalized negative log-likelihood. A run that stops without
// converging still returns its last point; only structural problems with
// the inputs are errors.
func Train(m FeatureModel, freqs FrequencyTable, config TrainerConfig) (*TrainResult, error) {
	if err := freqs.Validate(m); err != nil {
		return nil, err
	}

	dim := m.Dim()
	initial := config.InitialWeights
	if initial == nil {
		initial = make([]float64, dim)
	} else if len(initial) != dim {
		return nil, &DimensionMismatchError{Want: dim, Got: len(initial)}
	}

	obj := &Objective{Model: m, Freqs: freqs, Lambda: config.Lambda}
	problem := minimize.Problem{
		Func: obj.Value,
		Grad: obj.Gradient,
	}

	slog.Debug("Training log-linear model", "dim", dim, "lambda", config.Lambda, "method", config.Method)
	res, err := minimize.Minimize(problem, initial, minimize.Settings{
		Method:            config.Method,
		MaxIterations:     config.MaxIterations,
		GradientThreshold: config.GradientThreshold,
	})
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}
	if !res.Converged {
		slog.Warn("Training did not converge", "status", res.Status, "iterations", res.Iterations)
	}
	slog.Debug("Training finished", "objective", res.F, "iterations", res.Iterations)

	return &TrainResult{
		Weights:         res.X,
		Objective:       res.F,
		Iterations:      res.Iterations,
		FuncEvaluations: res.FuncEvaluations,
		GradEvaluations: res.GradEvaluations,
		Message:         res.Message,
		Converged:       res.Converged,
	}, nil
}
