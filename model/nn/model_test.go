package nn

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLabels = []string{"joy", "anger"}

	testTexts = []string{
		"what a wonderful happy day",
		"so happy and glad about this",
		"feeling happy joy and delight",
		"this makes me furious and mad",
		"absolutely furious about the delay",
		"mad and furious at everything",
		"happy delight and glad feelings",
		"furious mad rage all day",
	}

	testTruth = [][]bool{
		{true, false},
		{true, false},
		{true, false},
		{false, true},
		{false, true},
		{false, true},
		{true, false},
		{false, true},
	}
)

func fittedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(testLabels)
	err := m.Fit(context.Background(), testTexts, testTruth, "unit test data")
	require.NoError(t, err)
	return m
}

func TestFitRejectsEmptyData(t *testing.T) {
	m := NewModel(testLabels)
	assert.Error(t, m.Fit(context.Background(), nil, nil, ""))
}

func TestPredictProbaShapeAndRange(t *testing.T) {
	m := fittedModel(t)
	proba, err := m.PredictProba([]string{"happy day", "furious rage"})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(proba))
	for _, row := range proba {
		assert.Equal(t, len(testLabels), len(row))
		for _, p := range row {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestPredictMatchesBatchThresholding(t *testing.T) {
	m := fittedModel(t)
	comment := api.Comment{ID: "c1", Text: "feeling happy joy"}
	pred, err := m.Predict(comment)
	assert.NoError(t, err)

	proba, err := m.PredictProba([]string{comment.Text})
	assert.NoError(t, err)
	assert.Equal(
		t,
		metrics.AssertedLabels(testLabels, proba[0], m.Thresholds()),
		pred.Labels,
	)
}

func TestUnfittedModelCannotPredict(t *testing.T) {
	m := NewModel(testLabels)
	_, err := m.PredictProba([]string{"anything"})
	assert.Error(t, err)
}

func TestArtifactRoundTrip(t *testing.T) {
	m := fittedModel(t)
	path := filepath.Join(t.TempDir(), "model.model")
	require.NoError(t, m.SaveArtifactFile(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	m2, err := LoadArtifactFile(file, testLabels)
	require.NoError(t, err)

	batch := []string{"happy happy day", "furious and mad"}
	proba1, err := m.PredictProba(batch)
	assert.NoError(t, err)
	proba2, err := m2.PredictProba(batch)
	assert.NoError(t, err)
	for i := range proba1 {
		for j := range proba1[i] {
			assert.InDelta(t, proba1[i][j], proba2[i][j], 1e-9)
		}
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := LoadArtifactFile(bytes.NewReader([]byte{0x01, 0x02, 0x03}), testLabels)
	assert.Error(t, err)
}

func TestLoadRejectsLabelWidthMismatch(t *testing.T) {
	m := fittedModel(t)
	path := filepath.Join(t.TempDir(), "model.model")
	require.NoError(t, m.SaveArtifactFile(path))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	_, err = LoadArtifactFile(file, []string{"joy", "anger", "fear"})
	assert.Error(t, err)
}
