package ym

import (
	"path/filepath"
	"testing"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
	"github.com/stretchr/testify/assert"
)

func TestYesManAssertsEverything(t *testing.T) {
	m := NewModel([]string{"joy", "anger"})
	pred, err := m.Predict(api.Comment{ID: "c1", Text: "whatever"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"joy", "anger"}, pred.Labels)
}

func TestYesManProbaShape(t *testing.T) {
	m := NewModel([]string{"joy", "anger", "fear"})
	proba, err := m.PredictProba([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(proba))
	for _, row := range proba {
		assert.Equal(t, []float64{1, 1, 1}, row)
	}
}

func TestYesManCannotBeSaved(t *testing.T) {
	m := NewModel([]string{"joy"})
	err := m.SaveArtifactFile(filepath.Join(t.TempDir(), "model.model"))
	assert.Error(t, err)
}

func TestYesManRespectsThresholds(t *testing.T) {
	m := NewModel([]string{"joy", "anger"})
	th := metrics.NewThresholds([]string{"joy", "anger"})
	th.Set("anger", 1.1)
	assert.NoError(t, m.SetThresholds(th))
	pred, err := m.Predict(api.Comment{ID: "c1", Text: "whatever"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"joy"}, pred.Labels)
}
