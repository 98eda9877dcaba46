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

// Package metrics provides per-label decision thresholds and their
// calibration from validation predictions.
package metrics

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultThreshold is the cutoff used for any label whose threshold was
// never calibrated.
const DefaultThreshold = 0.5

// Thresholds maps each emotion label to a probability cutoff in [0,1].
// An instance is owned by exactly one model; use Clone when handing it
// to another one, mutations must never be observable across instances.
type Thresholds struct {
	Values map[string]float64 `json:"values" msgpack:"values"`
}

// NewThresholds creates thresholds for the given vocabulary, every label
// starting at DefaultThreshold.
func NewThresholds(labels []string) *Thresholds {
	values := make(map[string]float64, len(labels))
	for _, v := range labels {
		values[v] = DefaultThreshold
	}
	return &Thresholds{Values: values}
}

func (t *Thresholds) Clone() *Thresholds {
	values := make(map[string]float64, len(t.Values))
	for k, v := range t.Values {
		values[k] = v
	}
	return &Thresholds{Values: values}
}

func (t *Thresholds) Get(label string) float64 {
	v, ok := t.Values[label]
	if !ok {
		return DefaultThreshold
	}
	return v
}

func (t *Thresholds) Set(label string, v float64) {
	if t.Values == nil {
		t.Values = make(map[string]float64)
	}
	t.Values[label] = v
}

func (t *Thresholds) Len() int {
	return len(t.Values)
}

// Normalize validates thresholds against the shared vocabulary. Labels
// outside the vocabulary are an error, labels without a threshold are
// filled with DefaultThreshold (with a warning).
func (t *Thresholds) Normalize(labels []string) error {
	known := make(map[string]bool, len(labels))
	for _, v := range labels {
		known[v] = true
	}
	for label := range t.Values {
		if !known[label] {
			return fmt.Errorf("threshold refers to unknown label %s", label)
		}
	}
	for _, label := range labels {
		if _, ok := t.Values[label]; !ok {
			log.Warn().
				Str("label", label).
				Float64("value", DefaultThreshold).
				Msg("missing threshold, using default")
			t.Set(label, DefaultThreshold)
		}
	}
	return nil
}

// AssertedLabels applies thresholds to one probability row and returns
// the asserted labels in vocabulary order. A label is asserted when its
// probability reaches its threshold.
func AssertedLabels(labels []string, proba []float64, t *Thresholds) []string {
	ans := make([]string, 0, len(labels))
	for i, label := range labels {
		if proba[i] >= t.Get(label) {
			ans = append(ans, label)
		}
	}
	return ans
}
