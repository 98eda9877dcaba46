package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecisionRecallPerfect(t *testing.T) {
	pred := []bool{true, false, true}
	truth := []bool{true, false, true}
	pr := PrecisionRecall(pred, truth)
	assert.Equal(t, 1.0, pr.Precision)
	assert.Equal(t, 1.0, pr.Recall)
	assert.Equal(t, 1.0, pr.F1)
}

func TestPrecisionRecallNothingRetrieved(t *testing.T) {
	pr := PrecisionRecall([]bool{false, false}, []bool{true, false})
	assert.Equal(t, 0.0, pr.Precision)
	assert.Equal(t, 0.0, pr.Recall)
	assert.Equal(t, 0.0, pr.F1)
}

func TestCalibrateSeparatesCleanly(t *testing.T) {
	labels := []string{"joy", "anger"}
	proba := [][]float64{
		{0.9, 0.1},
		{0.8, 0.2},
		{0.2, 0.9},
		{0.1, 0.8},
	}
	truth := [][]bool{
		{true, false},
		{true, false},
		{false, true},
		{false, true},
	}
	th, err := CalibrateThresholds(proba, truth, labels)
	assert.NoError(t, err)
	for i, row := range proba {
		asserted := AssertedLabels(labels, row, th)
		for j, label := range labels {
			assert.Equal(t, truth[i][j], containsLabel(asserted, label))
		}
	}
}

func TestCalibrateRejectsEmptyInput(t *testing.T) {
	_, err := CalibrateThresholds(nil, nil, []string{"joy"})
	assert.Error(t, err)
}

func TestCalibrateRejectsShapeMismatch(t *testing.T) {
	_, err := CalibrateThresholds(
		[][]float64{{0.5}},
		[][]bool{{true}},
		[]string{"joy", "anger"},
	)
	assert.Error(t, err)
}

func containsLabel(labels []string, label string) bool {
	for _, v := range labels {
		if v == label {
			return true
		}
	}
	return false
}
