package maxent

import "sync"

// ruleIndex maps rules to dense integer IDs in first-seen order.
type ruleIndex struct {
	toID   map[Rule]int
	toRule []Rule
}

func newRuleIndex() *ruleIndex {
	return &ruleIndex{toID: make(map[Rule]int)}
}

// add returns the rule's ID, assigning the next one if the rule is new.
func (x *ruleIndex) add(r Rule) int {
	if id, ok := x.toID[r]; ok {
		return id
	}
	id := len(x.toRule)
	x.toID[r] = id
	x.toRule = append(x.toRule, r)
	return id
}

// get returns the rule's ID, or -1 if not found.
func (x *ruleIndex) get(r Rule) int {
	if id, ok := x.toID[r]; ok {
		return id
	}
	return -1
}

func (x *ruleIndex) size() int {
	return len(x.toRule)
}

// IndicatorModel has one indicator feature per distinct rule, so that the
// model reproduces a classical generative rule model. Rule i's feature
// vector is the standard basis vector e_i.
type IndicatorModel struct {
	index *ruleIndex
	rhss  map[string][]RHS

	mu       sync.Mutex
	featvecs map[Rule][]float64
}

// NewIndicatorModel builds an indicator model over rules. Repeated rules
// collapse onto the index of their first occurrence.
func NewIndicatorModel(rules []Rule) (*IndicatorModel, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyModel
	}
	m := &IndicatorModel{
		index:    newRuleIndex(),
		rhss:     make(map[string][]RHS),
		featvecs: make(map[Rule][]float64),
	}
	for _, r := range rules {
		n := m.index.size()
		if m.index.add(r) == n {
			m.rhss[r.LHS] = append(m.rhss[r.LHS], r.RHS)
		}
	}
	for _, rhss := range m.rhss {
		sortRHSs(rhss)
	}
	return m, nil
}

// Dim returns the number of distinct rules.
func (m *IndicatorModel) Dim() int {
	return m.index.size()
}

// Index returns the feature index of a rule, or -1 if unknown.
func (m *IndicatorModel) Index(lhs string, rhs RHS) int {
	return m.index.get(Rule{lhs, rhs})
}

// Rules returns the rules in index order.
func (m *IndicatorModel) Rules() []Rule {
	return append([]Rule(nil), m.index.toRule...)
}

// LHSs returns the model's LHSs in sorted order.
func (m *IndicatorModel) LHSs() []string {
	return sortedKeys(m.rhss)
}

// RHSs returns the RHSs recorded for lhs.
func (m *IndicatorModel) RHSs(lhs string) ([]RHS, error) {
	rhss, ok := m.rhss[lhs]
	if !ok {
		return nil, unknownLHS(lhs)
	}
	return append([]RHS(nil), rhss...), nil
}

// FeatureVector returns the basis vector of a rule. Vectors are built on
// first request and cached.
func (m *IndicatorModel) FeatureVector(lhs string, rhs RHS) []float64 {
	r := Rule{lhs, rhs}
	idx := m.index.get(r)
	if idx < 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.featvecs[r]; ok {
		return v
	}
	v := make([]float64, m.index.size())
	v[idx] = 1
	m.featvecs[r] = v
	return v
}

// Score returns the weight of the rule's indicator feature, which equals the
// dot product with its basis vector.
func (m *IndicatorModel) Score(weights []float64, lhs string, rhs RHS) float64 {
	return weights[m.index.get(Rule{lhs, rhs})]
}
