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

// Package ym provides a constant classifier which asserts every label
// with probability 1 (ym = yes-man). It exists for debugging and for
// developing clients of the classifier; it has no artifact and cannot
// be saved.
package ym

import (
	"fmt"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model"
)

// Name is the variant type name as understood by the CLI.
const Name = "ym"

type Model struct {
	labels     []string
	thresholds *metrics.Thresholds
}

func NewModel(labels []string) *Model {
	return &Model{
		labels:     labels,
		thresholds: metrics.NewThresholds(labels),
	}
}

func (ym *Model) Name() string {
	return Name
}

func (ym *Model) ArtifactFileName() string {
	return model.DefaultArtifactFileName
}

func (ym *Model) Thresholds() *metrics.Thresholds {
	return ym.thresholds
}

func (ym *Model) SetThresholds(t *metrics.Thresholds) error {
	if t == nil {
		return fmt.Errorf("cannot set nil thresholds")
	}
	t = t.Clone()
	if err := t.Normalize(ym.labels); err != nil {
		return err
	}
	ym.thresholds = t
	return nil
}

func (ym *Model) PredictProba(texts []string) ([][]float64, error) {
	ans := make([][]float64, len(texts))
	for i := range texts {
		row := make([]float64, len(ym.labels))
		for j := range row {
			row[j] = 1.0
		}
		ans[i] = row
	}
	return ans, nil
}

func (ym *Model) Predict(comment api.Comment) (api.Prediction, error) {
	proba, err := ym.PredictProba([]string{comment.Text})
	if err != nil {
		return api.Prediction{}, err
	}
	return api.Prediction{
		ID:     comment.ID,
		Labels: metrics.AssertedLabels(ym.labels, proba[0], ym.thresholds),
	}, nil
}

func (ym *Model) SaveArtifactFile(path string) error {
	return fmt.Errorf("cannot save ym model")
}
