// Copyright 2024 The emo-classifier authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	calibrationGridStart = 0.05
	calibrationGridStop  = 0.95
	calibrationGridStep  = 0.05
)

type PrecAndRecall struct {
	Precision float64
	Recall    float64
	F1        float64
}

func (pr PrecAndRecall) String() string {
	return fmt.Sprintf("precision: %.2f, recall: %.2f, F1: %.2f", pr.Precision, pr.Recall, pr.F1)
}

// PrecisionRecall evaluates binary decisions against the truth for
// a single label.
func PrecisionRecall(pred, truth []bool) PrecAndRecall {
	numTruePositives := 0
	numRelevant := 0
	numRetrieved := 0
	for i := range pred {
		if truth[i] {
			numRelevant++
		}
		if pred[i] {
			numRetrieved++
			if truth[i] {
				numTruePositives++
			}
		}
	}
	var precision, recall float64
	if numRetrieved > 0 {
		precision = float64(numTruePositives) / float64(numRetrieved)
	}
	if numRelevant > 0 {
		recall = float64(numTruePositives) / float64(numRelevant)
	}
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return PrecAndRecall{Precision: precision, Recall: recall, F1: f1}
}

// CalibrateThresholds grid-searches a per-label cutoff maximizing F1 on
// validation predictions. proba has shape (#instances, #labels), truth
// marks the annotated labels of each instance in the same column order.
// Ties prefer the lower cutoff.
func CalibrateThresholds(proba [][]float64, truth [][]bool, labels []string) (*Thresholds, error) {
	if len(proba) == 0 {
		return nil, fmt.Errorf("cannot calibrate thresholds: no validation predictions")
	}
	if len(proba) != len(truth) {
		return nil, fmt.Errorf(
			"cannot calibrate thresholds: %d probability rows vs. %d truth rows", len(proba), len(truth))
	}
	for _, row := range proba {
		if len(row) != len(labels) {
			return nil, fmt.Errorf(
				"cannot calibrate thresholds: row width %d does not match %d labels", len(row), len(labels))
		}
	}
	ans := NewThresholds(labels)
	pred := make([]bool, len(proba))
	labelTruth := make([]bool, len(proba))
	for j, label := range labels {
		for i := range truth {
			labelTruth[i] = truth[i][j]
		}
		bestF1 := -1.0
		bestCutoff := DefaultThreshold
		for cutoff := calibrationGridStart; cutoff <= calibrationGridStop+1e-9; cutoff += calibrationGridStep {
			for i := range proba {
				pred[i] = proba[i][j] >= cutoff
			}
			pr := PrecisionRecall(pred, labelTruth)
			if pr.F1 > bestF1 {
				bestF1 = pr.F1
				bestCutoff = cutoff
			}
		}
		ans.Set(label, bestCutoff)
	}
	log.Info().
		Int("numLabels", len(labels)).
		Int("validationSize", len(proba)).
		Msg("calibrated per-label thresholds")
	return ans, nil
}
