// Package nn implements the neural-net variant of the model contract:
// a TF-IDF vectorizer feeding a feed-forward network with one sigmoid
// output per emotion label.
package nn

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
	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Name is the registry key of this variant.
const Name = "nn"

var (
	hiddenUnits  = 64
	numEpochs    = 60
	learningRate = 0.001
	trainSplit   = 0.75
)

func init() {
	model.RegisterLoader(Name, func(r io.Reader, labels []string) (model.Model, error) {
		return LoadArtifactFile(r, labels)
	})
}

type artifactEnvelope struct {
	// NeuralNet carries a JSON-serialized deep.Dump. The dump is kept in
	// the network's own wire format and only wrapped by the envelope.
	NeuralNet  []byte             `msgpack:"neuralNet"`
	Vectorizer *feats.Vectorizer  `msgpack:"vectorizer"`
	Thresholds map[string]float64 `msgpack:"thresholds"`
}

type Model struct {
	labels     []string
	thresholds *metrics.Thresholds
	vectorizer *feats.Vectorizer
	neuralNet  *deep.Neural
}

func NewModel(labels []string) *Model {
	return &Model{
		labels:     labels,
		thresholds: metrics.NewThresholds(labels),
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
	t = t.Clone()
	if err := t.Normalize(m.labels); err != nil {
		return err
	}
	m.thresholds = t
	return nil
}

// Fit trains the network with Adam on a train/heldout split of the
// provided data.
// TODO: comment is not stored in the nn artifact
func (m *Model) Fit(ctx context.Context, texts []string, truth [][]bool, comment string) error {
	if len(texts) == 0 {
		return fmt.Errorf("no training data provided")
	}
	if len(texts) != len(truth) {
		return fmt.Errorf("training data mismatch: %d texts vs. %d truth rows", len(texts), len(truth))
	}
	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	m.vectorizer = feats.NewVectorizer(0)
	m.vectorizer.Fit(texts)
	xData := m.vectorizer.Transform(texts)

	examples := make(training.Examples, len(texts))
	for i := range texts {
		if len(truth[i]) != len(m.labels) {
			return fmt.Errorf("truth row width %d does not match %d labels", len(truth[i]), len(m.labels))
		}
		response := make([]float64, len(m.labels))
		for j := range m.labels {
			if truth[i][j] {
				response[j] = 1.0
			}
		}
		examples[i] = training.Example{Input: xData[i], Response: response}
	}
	trn, heldout := examples.Split(trainSplit)
	if len(heldout) == 0 {
		heldout = trn
	}
	log.Debug().
		Int("trainSize", len(trn)).
		Int("heldoutSize", len(heldout)).
		Int("numFeatures", m.vectorizer.NumFeatures()).
		Msg("prepared training examples")

	m.neuralNet = deep.NewNeural(&deep.Config{
		Inputs:     m.vectorizer.NumFeatures(),
		Layout:     []int{hiddenUnits, len(m.labels)},
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeMultiLabel,
		Weight:     deep.NewUniform(0.5, 0.0),
		Bias:       true,
	})
	optimizer := training.NewAdam(learningRate, 0.9, 0.999, 1e-8)
	// params: optimizer, verbosity (print stats at every 50th iteration)
	trainer := training.NewTrainer(optimizer, 50)
	trainer.Train(m.neuralNet, trn, heldout, numEpochs)
	return nil
}

func (m *Model) PredictProba(texts []string) ([][]float64, error) {
	if m.neuralNet == nil {
		return nil, fmt.Errorf("nn model is not fitted")
	}
	xData := m.vectorizer.Transform(texts)
	ans := make([][]float64, len(texts))
	for i, x := range xData {
		out := m.neuralNet.Predict(x)
		row := make([]float64, len(m.labels))
		copy(row, out)
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

// SaveArtifactFile writes the network dump, the vectorizer and the
// thresholds as a single msgpack envelope.
func (m *Model) SaveArtifactFile(path string) error {
	if m.neuralNet == nil {
		return fmt.Errorf("cannot save an unfitted nn model")
	}
	netData, err := json.Marshal(m.neuralNet.Dump())
	if err != nil {
		return fmt.Errorf("failed to save nn model: %w", err)
	}
	envelope := artifactEnvelope{
		NeuralNet:  netData,
		Vectorizer: m.vectorizer,
		Thresholds: m.thresholds.Values,
	}
	rawData, err := msgpack.Marshal(&envelope)
	if err != nil {
		return fmt.Errorf("failed to save nn model: %w", err)
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
		return nil, fmt.Errorf("failed to load nn model: %w", err)
	}
	var envelope artifactEnvelope
	if err := msgpack.Unmarshal(rawData, &envelope); err != nil {
		return nil, fmt.Errorf("failed to load nn model: %w", err)
	}
	if len(envelope.NeuralNet) == 0 || envelope.Vectorizer == nil {
		return nil, fmt.Errorf("failed to load nn model: incomplete artifact")
	}
	var dump deep.Dump
	if err := json.Unmarshal(envelope.NeuralNet, &dump); err != nil {
		return nil, fmt.Errorf("failed to load nn model: %w", err)
	}
	if dump.Config == nil || len(dump.Config.Layout) == 0 ||
		dump.Config.Layout[len(dump.Config.Layout)-1] != len(labels) {
		return nil, fmt.Errorf("failed to load nn model: output width does not match %d labels", len(labels))
	}
	thresholds := &metrics.Thresholds{Values: envelope.Thresholds}
	if err := thresholds.Normalize(labels); err != nil {
		return nil, fmt.Errorf("failed to load nn model: %w", err)
	}
	return &Model{
		labels:     labels,
		thresholds: thresholds,
		vectorizer: envelope.Vectorizer,
		neuralNet:  deep.FromDump(&dump),
	}, nil
}
