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

// Package rf implements the random-forest variant of the model contract:
// a TF-IDF vectorizer feeding one binary forest per emotion label.
package rf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/feats"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model"
	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Name is the registry key of this variant.
const Name = "rf"

const dfltNumTrees = 200

// hasForest marks a label which got a trained forest (as opposed to a
// constant probability for single-class labels) in the artifact envelope.
const hasForest = -1.0

func init() {
	model.RegisterLoader(Name, func(r io.Reader, labels []string) (model.Model, error) {
		return LoadArtifactFile(r, labels)
	})
}

type artifactEnvelope struct {
	Vectorizer *feats.Vectorizer  `json:"vectorizer"`
	Forests    []json.RawMessage  `json:"forests"`
	ConstProba []float64          `json:"constProba"`
	Thresholds map[string]float64 `json:"thresholds"`
	NumTrees   int                `json:"numTrees"`
	Comment    string             `json:"comment"`
}

// Model holds one binary random forest per label. Labels whose training
// column contained a single class keep a constant probability instead of
// a forest.
type Model struct {
	labels     []string
	thresholds *metrics.Thresholds
	vectorizer *feats.Vectorizer
	numTrees   int
	forests    []*randomforest.Forest
	constProba []float64
	comment    string
}

// NewModel creates an untrained instance bound to the shared vocabulary.
func NewModel(labels []string, numTrees int) *Model {
	if numTrees <= 0 {
		numTrees = dfltNumTrees
	}
	return &Model{
		labels:     labels,
		thresholds: metrics.NewThresholds(labels),
		numTrees:   numTrees,
	}
}

func (m *Model) Name() string {
	return Name
}

func (m *Model) ArtifactFileName() string {
	return model.DefaultArtifactFileName
}

func (m *Model) Thresholds() *metrics.Thresholds {
	return m.thresholds
}

func (m *Model) SetThresholds(t *metrics.Thresholds) error {
	if t == nil {
		return fmt.Errorf("cannot set nil thresholds")
	}
	// cloned so no two instances ever share a thresholds object
	t = t.Clone()
	if err := t.Normalize(m.labels); err != nil {
		return err
	}
	m.thresholds = t
	return nil
}

// Fit trains the per-label forests. The truth matrix marks the annotated
// labels of each text in vocabulary column order. The comment is stored
// with the artifact for easier model review.
func (m *Model) Fit(ctx context.Context, texts []string, truth [][]bool, comment string) error {
	if len(texts) == 0 {
		return fmt.Errorf("no training data provided")
	}
	if len(texts) != len(truth) {
		return fmt.Errorf("training data mismatch: %d texts vs. %d truth rows", len(texts), len(truth))
	}
	for _, row := range truth {
		if len(row) != len(m.labels) {
			return fmt.Errorf("truth row width %d does not match %d labels", len(row), len(m.labels))
		}
	}
	m.vectorizer = feats.NewVectorizer(0)
	m.vectorizer.Fit(texts)
	xData := m.vectorizer.Transform(texts)

	m.forests = make([]*randomforest.Forest, len(m.labels))
	m.constProba = make([]float64, len(m.labels))
	bar := progressbar.Default(int64(len(m.labels)), "training per-label forests")
	for j := range m.labels {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		yData := make([]int, len(truth))
		numPositive := 0
		for i := range truth {
			if truth[i][j] {
				yData[i] = 1
				numPositive++
			}
		}
		if numPositive == 0 || numPositive == len(truth) {
			// single-class label, a forest cannot vote here
			m.constProba[j] = float64(yData[0])
			bar.Add(1)
			continue
		}
		forest := &randomforest.Forest{}
		forest.Data = randomforest.ForestData{X: xData, Class: yData}
		forest.Train(m.numTrees)
		m.forests[j] = forest
		m.constProba[j] = hasForest
		bar.Add(1)
	}
	m.comment = comment
	log.Debug().
		Int("dataSize", len(texts)).
		Int("numFeatures", m.vectorizer.NumFeatures()).
		Int("numLabels", len(m.labels)).
		Msg("trained per-label forests")
	return nil
}

func (m *Model) PredictProba(texts []string) ([][]float64, error) {
	if m.vectorizer == nil {
		return nil, fmt.Errorf("rf model is not fitted")
	}
	xData := m.vectorizer.Transform(texts)
	ans := make([][]float64, len(texts))
	for i, x := range xData {
		row := make([]float64, len(m.labels))
		for j := range m.labels {
			if m.forests[j] == nil {
				row[j] = m.constProba[j]
				continue
			}
			votes := m.forests[j].Vote(x)
			if len(votes) > 1 {
				row[j] = votes[1]
			}
		}
		ans[i] = row
	}
	return ans, nil
}

func (m *Model) Predict(comment api.Comment) (api.Prediction, error) {
	proba, err := m.PredictProba([]string{comment.Text})
	if err != nil {
		return api.Prediction{}, err
	}
	return api.Prediction{
		ID:     comment.ID,
		Labels: metrics.AssertedLabels(m.labels, proba[0], m.thresholds),
	}, nil
}

// SaveArtifactFile writes the vectorizer, the forests and the thresholds
// as a single JSON envelope.
func (m *Model) SaveArtifactFile(path string) error {
	if m.vectorizer == nil {
		return fmt.Errorf("cannot save an unfitted rf model")
	}
	envelope := artifactEnvelope{
		Vectorizer: m.vectorizer,
		Forests:    make([]json.RawMessage, len(m.forests)),
		ConstProba: m.constProba,
		Thresholds: m.thresholds.Values,
		NumTrees:   m.numTrees,
		Comment:    m.comment,
	}
	for j, forest := range m.forests {
		if forest == nil {
			envelope.Forests[j] = json.RawMessage("null")
			continue
		}
		rawData, err := json.Marshal(forest)
		if err != nil {
			return fmt.Errorf("failed to save rf model: %w", err)
		}
		envelope.Forests[j] = rawData
	}
	rawData, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to save rf model: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.Write(rawData); err != nil {
		return err
	}
	return nil
}

// LoadArtifactFile is the exact inverse of SaveArtifactFile.
func LoadArtifactFile(r io.Reader, labels []string) (*Model, error) {
	rawData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load rf model: %w", err)
	}
	var envelope artifactEnvelope
	if err := json.Unmarshal(rawData, &envelope); err != nil {
		return nil, fmt.Errorf("failed to load rf model: %w", err)
	}
	if envelope.Vectorizer == nil {
		return nil, fmt.Errorf("failed to load rf model: missing vectorizer")
	}
	if len(envelope.Forests) != len(labels) || len(envelope.ConstProba) != len(labels) {
		return nil, fmt.Errorf(
			"failed to load rf model: artifact has %d label columns, vocabulary has %d",
			len(envelope.Forests), len(labels))
	}
	thresholds := &metrics.Thresholds{Values: envelope.Thresholds}
	if err := thresholds.Normalize(labels); err != nil {
		return nil, fmt.Errorf("failed to load rf model: %w", err)
	}
	m := &Model{
		labels:     labels,
		thresholds: thresholds,
		vectorizer: envelope.Vectorizer,
		numTrees:   envelope.NumTrees,
		forests:    make([]*randomforest.Forest, len(labels)),
		constProba: envelope.ConstProba,
		comment:    envelope.Comment,
	}
	for j, rawForest := range envelope.Forests {
		if m.constProba[j] != hasForest {
			continue
		}
		var forest randomforest.Forest
		if err := json.Unmarshal(rawForest, &forest); err != nil {
			return nil, fmt.Errorf("failed to load rf model: %w", err)
		}
		m.forests[j] = &forest
	}
	return m, nil
}
