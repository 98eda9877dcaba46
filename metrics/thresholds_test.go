package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertedLabels(t *testing.T) {
	labels := []string{"joy", "anger"}
	th := NewThresholds(labels)
	ans := AssertedLabels(labels, []float64{0.9, 0.2}, th)
	assert.Equal(t, []string{"joy"}, ans)
}

func TestAssertedLabelsBoundary(t *testing.T) {
	labels := []string{"joy"}
	th := NewThresholds(labels)
	assert.Equal(t, []string{"joy"}, AssertedLabels(labels, []float64{0.5}, th))
}

func TestRaisingThresholdOnlyRemoves(t *testing.T) {
	labels := []string{"joy", "anger", "fear"}
	proba := []float64{0.7, 0.4, 0.55}
	th := NewThresholds(labels)
	before := AssertedLabels(labels, proba, th)
	th.Set("joy", 0.8)
	after := AssertedLabels(labels, proba, th)
	for _, label := range after {
		assert.Contains(t, before, label)
	}
	assert.NotContains(t, after, "joy")
}

func TestCloneIsIndependent(t *testing.T) {
	th := NewThresholds([]string{"joy", "anger"})
	th2 := th.Clone()
	th2.Set("joy", 0.9)
	assert.Equal(t, 0.5, th.Get("joy"))
	assert.Equal(t, 0.9, th2.Get("joy"))
}

func TestNormalizeRejectsUnknownLabel(t *testing.T) {
	th := &Thresholds{Values: map[string]float64{"joy": 0.5, "boredom": 0.4}}
	err := th.Normalize([]string{"joy", "anger"})
	assert.Error(t, err)
}

func TestNormalizeFillsMissingLabels(t *testing.T) {
	th := &Thresholds{Values: map[string]float64{"joy": 0.7}}
	err := th.Normalize([]string{"joy", "anger"})
	assert.NoError(t, err)
	assert.Equal(t, 2, th.Len())
	assert.Equal(t, 0.7, th.Get("joy"))
	assert.Equal(t, DefaultThreshold, th.Get("anger"))
}

func TestGetUnknownLabelUsesDefault(t *testing.T) {
	th := NewThresholds(nil)
	assert.Equal(t, DefaultThreshold, th.Get("joy"))
}
