// Package trainfile reads training data files.
//
// Each non-blank line that does not start with '#' is one record with four
// '|'-separated fields:
//
//	FREQ | LHS | RHS TOKENS | FEATURE VALUES
//
// for example
//
//	3 | S | NP (VP sleeps) | 1.0 0.5
//
// FEATURE VALUES may be empty when only indicator features are used.
package trainfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/happyhackingspace/loglin/internal/textutil"
	"github.com/happyhackingspace/loglin/maxent"
)

// Record is one parsed training line.
type Record struct {
	Freq     int
	LHS      string
	RHS      []string
	Features []float64
}

// Rule returns the record's rule.
func (r Record) Rule() maxent.Rule {
	return maxent.Rule{LHS: r.LHS, RHS: maxent.NewRHS(r.RHS...)}
}

// MalformedRecordError reports a line that is not a valid record.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Line == 0 {
		return "malformed record: " + e.Reason
	}
	return fmt.Sprintf("malformed record on line %d: %s", e.Line, e.Reason)
}

// Parse parses a single record line. The returned error is a
// *MalformedRecordError without a line number.
func Parse(line string) (Record, error) {
	fields := textutil.SplitFields(strings.TrimSpace(line))
	if len(fields) != 4 {
		return Record{}, malformed("wrong number of fields: want 4, got %d", len(fields))
	}

	freq, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, malformed("frequency %q is not an integer", fields[0])
	}
	if freq < 0 {
		return Record{}, malformed("frequency %d is negative", freq)
	}

	lhs := fields[1]
	if !textutil.IsToken(lhs) {
		return Record{}, malformed("left hand side %q is not a valid token", lhs)
	}

	rhs := textutil.Tokenize(fields[2])
	if len(rhs) == 0 {
		return Record{}, malformed("right hand side is empty")
	}

	values := strings.Fields(fields[3])
	feats := make([]float64, len(values))
	for i, v := range values {
		feats[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return Record{}, malformed("feature value %q is not a number", v)
		}
	}

	return Record{Freq: freq, LHS: lhs, RHS: rhs, Features: feats}, nil
}

func malformed(format string, args ...any) error {
	return &MalformedRecordError{Reason: fmt.Sprintf(format, args...)}
}

// Read parses every record in r. Parsing stops at the first malformed
// line.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if textutil.IsSkippable(line) {
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			var mre *MalformedRecordError
			if errors.As(err, &mre) {
				mre.Line = lineNum
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read training data")
	}
	return records, nil
}

// ReadFile parses the training file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return records, nil
}

// Observations returns the (frequency, rule) part of records.
func Observations(records []Record) []maxent.Observation {
	obs := make([]maxent.Observation, len(records))
	for i, r := range records {
		obs[i] = maxent.Observation{Freq: r.Freq, LHS: r.LHS, RHS: maxent.NewRHS(r.RHS...)}
	}
	return obs
}

// DenseEntries returns the (rule, feature vector) part of records.
func DenseEntries(records []Record) []maxent.DenseEntry {
	entries := make([]maxent.DenseEntry, len(records))
	for i, r := range records {
		entries[i] = maxent.DenseEntry{LHS: r.LHS, RHS: maxent.NewRHS(r.RHS...), Features: r.Features}
	}
	return entries
}

// Rules returns the rule of every record, in file order.
func Rules(records []Record) []maxent.Rule {
	rules := make([]maxent.Rule, len(records))
	for i, r := range records {
		rules[i] = r.Rule()
	}
	return rules
}
