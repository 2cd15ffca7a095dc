package minimize

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	backtrackMaxIterations = 100
	backtrackEpsilon       = 1e-5
	backtrackMemory        = 10
	armijo                 = 1e-4
	maxHalvings            = 20
)

// Statuses reported by the backtracking method.
const (
	statusGradientThreshold = "GradientThreshold"
	statusIterationLimit    = "IterationLimit"
	statusLineSearchFailure = "LineSearchFailure"
)

// backtrack runs L-BFGS with an Armijo backtracking line search.
func backtrack(p Problem, x0 []float64, s Settings) *Result {
	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = backtrackMaxIterations
	}
	eps := s.GradientThreshold
	if eps <= 0 {
		eps = backtrackEpsilon
	}

	n := len(x0)
	x := append([]float64(nil), x0...)
	grad := make([]float64, n)
	f := p.Func(x)
	p.Grad(grad, x)
	res := &Result{FuncEvaluations: 1, GradEvaluations: 1, Status: statusIterationLimit}

	mem := newLBFGS(n, backtrackMemory)
	xNew := make([]float64, n)
	newGrad := make([]float64, n)
	sVec := make([]float64, n)
	yVec := make([]float64, n)

	for iter := 0; iter < maxIter; iter++ {
		if floats.Norm(grad, math.Inf(1)) < eps {
			res.Status = statusGradientThreshold
			break
		}

		dir := mem.computeDirection(grad)
		if floats.Dot(dir, grad) >= 0 {
			// Curvature pairs gave an ascent direction; restart from steepest descent.
			mem.reset()
			dir = mem.computeDirection(grad)
		}

		step, fNew, evals := lineSearch(p.Func, x, dir, f, grad, xNew)
		res.FuncEvaluations += evals
		if step == 0 {
			slog.Warn("Line search failed, stopping", "iteration", iter+1)
			res.Status = statusLineSearchFailure
			break
		}

		p.Grad(newGrad, xNew)
		res.GradEvaluations++

		floats.SubTo(sVec, xNew, x)
		floats.SubTo(yVec, newGrad, grad)
		mem.update(sVec, yVec)

		copy(x, xNew)
		copy(grad, newGrad)
		f = fNew
		res.Iterations = iter + 1
		slog.Debug("Minimizer iteration", "iteration", res.Iterations, "objective", f, "step", step)
	}
	if res.Status == statusIterationLimit && floats.Norm(grad, math.Inf(1)) < eps {
		res.Status = statusGradientThreshold
	}

	res.X = x
	res.F = f
	res.Converged = res.Status == statusGradientThreshold
	res.Message = message(res.Converged, res.Status, nil)
	return res
}

// lineSearch halves the step from 1 until the Armijo sufficient-decrease
// condition holds. The accepted point is left in xNew. It returns the step,
// the function value there and the number of evaluations; a zero step
// means no acceptable point was found.
func lineSearch(fn func([]float64) float64, x, dir []float64, f float64, grad, xNew []float64) (float64, float64, int) {
	dirDeriv := floats.Dot(dir, grad)
	if dirDeriv >= 0 {
		return 0, f, 0
	}

	step := 1.0
	for trial := 0; trial < maxHalvings; trial++ {
		floats.AddScaledTo(xNew, x, step, dir)
		fNew := fn(xNew)
		if fNew <= f+armijo*step*dirDeriv {
			return step, fNew, trial + 1
		}
		step *= 0.5
	}
	return 0, f, maxHalvings
}

// lbfgs holds the curvature pairs of the L-BFGS two-loop recursion.
type lbfgs struct {
	n    int // number of variables
	m    int // memory size
	s    [][]float64
	y    [][]float64
	rho  []float64
	k    int
	size int
}

func newLBFGS(n, m int) *lbfgs {
	return &lbfgs{
		n:   n,
		m:   m,
		s:   make([][]float64, m),
		y:   make([][]float64, m),
		rho: make([]float64, m),
	}
}

func (l *lbfgs) reset() {
	l.k = 0
	l.size = 0
}

func (l *lbfgs) update(s, y []float64) {
	sy := floats.Dot(s, y)
	if sy <= 0 {
		return
	}
	idx := l.k % l.m
	l.s[idx] = append(l.s[idx][:0], s...)
	l.y[idx] = append(l.y[idx][:0], y...)
	l.rho[idx] = 1.0 / sy
	l.k++
	if l.size < l.m {
		l.size++
	}
}

// computeDirection returns -H·grad for the current inverse Hessian
// approximation H.
func (l *lbfgs) computeDirection(grad []float64) []float64 {
	q := append([]float64(nil), grad...)

	if l.size == 0 {
		floats.Scale(-1, q)
		return q
	}

	alpha := make([]float64, l.size)

	// First loop, newest pair first.
	for i := l.size - 1; i >= 0; i-- {
		idx := l.slot(i)
		alpha[i] = l.rho[idx] * floats.Dot(l.s[idx], q)
		floats.AddScaled(q, -alpha[i], l.y[idx])
	}

	// Scale by H_0 = (s_k^T y_k) / (y_k^T y_k)
	latest := l.slot(l.size - 1)
	if yy := floats.Dot(l.y[latest], l.y[latest]); yy > 0 {
		floats.Scale(floats.Dot(l.s[latest], l.y[latest])/yy, q)
	}

	// Second loop, oldest pair first.
	for i := 0; i < l.size; i++ {
		idx := l.slot(i)
		beta := l.rho[idx] * floats.Dot(l.y[idx], q)
		floats.AddScaled(q, alpha[i]-beta, l.s[idx])
	}

	floats.Scale(-1, q)
	return q
}

// slot maps the i-th stored pair (0 = oldest) to its ring buffer index.
func (l *lbfgs) slot(i int) int {
	return (l.k - l.size + i) % l.m
}
