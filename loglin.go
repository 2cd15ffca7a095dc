// Package loglin trains log-linear rule models from frequency data.
//
// A training file lists observed rules with their frequencies and feature
// vectors; Train fits the feature weights by L2-penalized maximum
// likelihood:
//
//	res, _ := loglin.Train("grammar.txt", &loglin.TrainConfig{Lambda: 0.1})
//	for _, r := range res.Rows() {
//	    fmt.Println(r.LHS, r.RHS, r.Probability)
//	}
package loglin

import (
	"github.com/pkg/errors"

	"github.com/happyhackingspace/loglin/internal/report"
	"github.com/happyhackingspace/loglin/internal/trainfile"
	"github.com/happyhackingspace/loglin/maxent"
)

// RuleProbability is the fitted score and probability of one rule.
type RuleProbability = report.Row

// Weights is the emitted weight vector of a training run.
type Weights = report.WeightsFile

// Data is a feature model together with the frequencies it is trained on.
type Data struct {
	Model maxent.FeatureModel
	Freqs maxent.FrequencyTable
	// Records is the number of records read.
	Records int
}

// Load reads a training file and builds its feature model and frequency
// table. With basic set, the model has one indicator feature per rule and
// the file's feature columns are ignored.
func Load(path string, basic bool) (*Data, error) {
	records, err := trainfile.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loglin")
	}
	data, err := FromRecords(records, basic)
	if err != nil {
		return nil, errors.Wrapf(err, "loglin: %s", path)
	}
	return data, nil
}

// FromRecords builds the feature model and frequency table of records.
func FromRecords(records []trainfile.Record, basic bool) (*Data, error) {
	var (
		model maxent.FeatureModel
		err   error
	)
	if basic {
		model, err = maxent.NewIndicatorModel(trainfile.Rules(records))
	} else {
		model, err = maxent.NewDenseModel(trainfile.DenseEntries(records))
	}
	if err != nil {
		return nil, err
	}
	freqs, err := maxent.Aggregate(trainfile.Observations(records))
	if err != nil {
		return nil, err
	}
	return &Data{Model: model, Freqs: freqs, Records: len(records)}, nil
}

// RuleLabels returns the rule of each weight for indicator models, nil
// otherwise.
func (d *Data) RuleLabels() []string {
	im, ok := d.Model.(*maxent.IndicatorModel)
	if !ok {
		return nil
	}
	rules := im.Rules()
	labels := make([]string, len(rules))
	for i, r := range rules {
		labels[i] = r.String()
	}
	return labels
}

// Rows scores every rule of the model under weights.
func (d *Data) Rows(weights []float64) []RuleProbability {
	return report.Rows(d.Model, weights)
}
