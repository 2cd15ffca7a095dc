package report

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// WeightsFile is the emitted weight vector of a training run.
type WeightsFile struct {
	Dim     int       `json:"dim"`
	Lambda  float64   `json:"lambda"`
	Method  string    `json:"method,omitempty"`
	Weights []float64 `json:"weights"`
	// Rules labels each weight with its rule for indicator models.
	Rules []string `json:"rules,omitempty"`
}

// SaveWeights writes the weights file as JSON.
func SaveWeights(wf *WeightsFile, path string) error {
	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadWeights reads a weights file written by SaveWeights.
func LoadWeights(path string) (*WeightsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wf WeightsFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, errors.Wrapf(err, "parse weights file %s", path)
	}
	if len(wf.Weights) != wf.Dim {
		return nil, errors.Errorf("weights file %s: %d weights for dimension %d", path, len(wf.Weights), wf.Dim)
	}
	return &wf, nil
}
