// Package minimize finds local minima of smooth functions. It fronts the
// quasi-Newton methods of gonum's optimize package and a small built-in
// L-BFGS with backtracking line search, behind one result type.
package minimize

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// Method names accepted in Settings.Method.
const (
	MethodBFGS            = "bfgs"
	MethodLBFGS           = "lbfgs"
	MethodCG              = "cg"
	MethodGradientDescent = "gd"
	MethodNelderMead      = "nelder-mead"
	MethodBacktrack       = "backtrack"

	DefaultMethod = MethodBFGS
)

// ErrUnknownMethod is returned for a Settings.Method that names no method.
var ErrUnknownMethod = errors.New("unknown minimization method")

var gonumMethods = map[string]func() optimize.Method{
	MethodBFGS:            func() optimize.Method { return &optimize.BFGS{} },
	MethodLBFGS:           func() optimize.Method { return &optimize.LBFGS{} },
	MethodCG:              func() optimize.Method { return &optimize.CG{} },
	MethodGradientDescent: func() optimize.Method { return &optimize.GradientDescent{} },
	MethodNelderMead:      func() optimize.Method { return &optimize.NelderMead{} },
}

// Methods returns the accepted method names in sorted order.
func Methods() []string {
	names := []string{MethodBacktrack}
	for name := range gonumMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Problem is a function to minimize together with its gradient.
// Neither function may modify or retain x.
type Problem struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64)
}

// Settings controls a minimization run. Zero values select each method's
// defaults.
type Settings struct {
	Method            string
	MaxIterations     int
	GradientThreshold float64
}

// Result is the outcome of a minimization run, converged or not.
type Result struct {
	X               []float64
	F               float64
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
	Status          string
	Message         string
	Converged       bool
}

// Minimize minimizes p starting from x0. Failing to converge is not an
// error: the result carries the last location reached and Converged is
// false. Errors are returned only when no result could be produced.
func Minimize(p Problem, x0 []float64, s Settings) (*Result, error) {
	method := s.Method
	if method == "" {
		method = DefaultMethod
	}
	if method == MethodBacktrack {
		return backtrack(p, x0, s), nil
	}
	newMethod, ok := gonumMethods[method]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%q (want one of %v)", method, Methods())
	}

	settings := &optimize.Settings{
		GradientThreshold: s.GradientThreshold,
		MajorIterations:   s.MaxIterations,
		Recorder:          logRecorder{},
	}
	res, err := optimize.Minimize(optimize.Problem{Func: p.Func, Grad: p.Grad}, x0, settings, newMethod())
	if res == nil {
		return nil, errors.Wrap(err, "minimize")
	}

	out := &Result{
		X:               res.X,
		F:               res.F,
		Iterations:      res.MajorIterations,
		FuncEvaluations: res.FuncEvaluations,
		GradEvaluations: res.GradEvaluations,
		Status:          res.Status.String(),
		Converged:       err == nil && converged(res.Status),
	}
	out.Message = message(out.Converged, out.Status, err)
	return out, nil
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}

func message(ok bool, status string, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("Optimization did not converge (%s): %v", status, err)
	case !ok:
		return fmt.Sprintf("Optimization did not converge (%s)", status)
	default:
		return fmt.Sprintf("Optimization terminated successfully (%s)", status)
	}
}

// logRecorder reports every major iteration of a gonum method at debug level.
type logRecorder struct{}

func (logRecorder) Init() error { return nil }

func (logRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	slog.Debug("Minimizer iteration",
		"iteration", stats.MajorIterations,
		"objective", loc.F,
		"max_gradient", floats.Norm(loc.Gradient, math.Inf(1)))
	return nil
}
