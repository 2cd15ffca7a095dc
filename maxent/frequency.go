package maxent

import (
	"sort"

	"github.com/pkg/errors"
)

// Observation is one (frequency, LHS, RHS) training record.
type Observation struct {
	Freq int
	LHS  string
	RHS  RHS
}

// FrequencyTable holds the total observed frequency of every rule,
// keyed LHS -> RHS.
type FrequencyTable map[string]map[RHS]int

// Aggregate folds observations into a FrequencyTable, summing the
// frequencies of observations that share a rule.
func Aggregate(obs []Observation) (FrequencyTable, error) {
	ft := make(FrequencyTable)
	for _, o := range obs {
		if o.Freq < 0 {
			return nil, errors.Errorf("negative frequency %d for %s", o.Freq, Rule{o.LHS, o.RHS})
		}
		ft.Add(o.LHS, o.RHS, o.Freq)
	}
	return ft, nil
}

// Add adds freq observations of the rule lhs --> rhs.
func (ft FrequencyTable) Add(lhs string, rhs RHS, freq int) {
	d, ok := ft[lhs]
	if !ok {
		d = make(map[RHS]int)
		ft[lhs] = d
	}
	d[rhs] += freq
}

// Freq returns the total frequency of a rule.
func (ft FrequencyTable) Freq(lhs string, rhs RHS) int {
	return ft[lhs][rhs]
}

// LHSs returns the table's LHSs in sorted order.
func (ft FrequencyTable) LHSs() []string {
	lhss := make([]string, 0, len(ft))
	for lhs := range ft {
		lhss = append(lhss, lhs)
	}
	sort.Strings(lhss)
	return lhss
}

// RHSs returns the RHSs recorded for lhs in sorted order.
func (ft FrequencyTable) RHSs(lhs string) []RHS {
	d := ft[lhs]
	rhss := make([]RHS, 0, len(d))
	for rhs := range d {
		rhss = append(rhss, rhs)
	}
	sortRHSs(rhss)
	return rhss
}

// Total returns the sum of all frequencies.
func (ft FrequencyTable) Total() int {
	total := 0
	for _, d := range ft {
		for _, f := range d {
			total += f
		}
	}
	return total
}

// Validate checks that every rule in the table is known to the model.
func (ft FrequencyTable) Validate(m FeatureModel) error {
	for _, lhs := range ft.LHSs() {
		known, err := m.RHSs(lhs)
		if err != nil {
			return errors.Wrap(ErrUnknownRule, err.Error())
		}
		set := make(map[RHS]bool, len(known))
		for _, rhs := range known {
			set[rhs] = true
		}
		for _, rhs := range ft.RHSs(lhs) {
			if !set[rhs] {
				return errors.Wrapf(ErrUnknownRule, "%s", Rule{lhs, rhs})
			}
		}
	}
	return nil
}
