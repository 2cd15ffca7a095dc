// Package report formats trained log-linear models for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/happyhackingspace/loglin/maxent"
)

// Output formats accepted by Write.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

const rule = "######################################"

// Row is the fitted score and probability of one rule.
type Row struct {
	LHS         string  `json:"lhs" csv:"lhs"`
	RHS         string  `json:"rhs" csv:"rhs"`
	Score       float64 `json:"score" csv:"score"`
	Probability float64 `json:"probability" csv:"probability"`
}

// Rows scores every rule of m under weights. Rows are grouped by LHS in
// model order, with RHSs sorted within each LHS.
func Rows(m maxent.FeatureModel, weights []float64) []Row {
	pt := maxent.Probabilities(m, weights)
	var rows []Row
	for _, r := range maxent.Rules(m) {
		rows = append(rows, Row{
			LHS:         r.LHS,
			RHS:         r.RHS.String(),
			Score:       m.Score(weights, r.LHS, r.RHS),
			Probability: pt.Prob(r.LHS, r.RHS),
		})
	}
	return rows
}

// Write renders rows in the given format.
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case FormatText, "":
		return WriteText(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	case FormatCSV:
		return WriteCSV(w, rows)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// WriteText writes one tab-separated line per rule: score, probability
// and the rule itself, framed by separator lines.
func WriteText(w io.Writer, rows []Row) error {
	var b strings.Builder
	b.WriteString(rule + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%12.6f\t%.6f\t%s --> %s\n", r.Score, r.Probability, r.LHS, r.RHS)
	}
	b.WriteString(rule + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteCSV writes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(&rows, w)
}

// Summary describes the outcome of a training run.
type Summary struct {
	Training      *maxent.TrainResult
	Penalty       float64
	LogLikelihood float64
}

// WriteSummary writes the optimizer diagnostics, the fitted weights and
// the decomposition of the objective at the optimum.
func WriteSummary(w io.Writer, s Summary) error {
	t := s.Training
	var b strings.Builder
	b.WriteString("Optimization results:\n")
	fmt.Fprintf(&b, "         Function value:       %f\n", t.Objective)
	fmt.Fprintf(&b, "         Iterations:           %d\n", t.Iterations)
	fmt.Fprintf(&b, "         Function evaluations: %d\n", t.FuncEvaluations)
	fmt.Fprintf(&b, "         Gradient evaluations: %d\n", t.GradEvaluations)
	fmt.Fprintf(&b, "         %s\n", t.Message)
	fmt.Fprintf(&b, "Found optimal parameter values: %v\n", t.Weights)
	fmt.Fprintf(&b, "At this point:  penalty - log-likelihood  =  %f - %f  =  %f\n",
		s.Penalty, s.LogLikelihood, s.Penalty-s.LogLikelihood)
	_, err := io.WriteString(w, b.String())
	return err
}
