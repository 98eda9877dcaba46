package feats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	ans := Tokenize("I am SO happy today!!! :-)")
	assert.Equal(t, []string{"i", "am", "so", "happy", "today"}, ans)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize("  ... "))
}

func TestFitTransformShape(t *testing.T) {
	v := NewVectorizer(100)
	corpus := []string{
		"what a wonderful day",
		"this is a terrible day",
		"wonderful wonderful news",
	}
	v.Fit(corpus)
	ans := v.Transform(corpus)
	assert.Equal(t, len(corpus), len(ans))
	for _, row := range ans {
		assert.Equal(t, v.NumFeatures(), len(row))
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	v := NewVectorizer(100)
	corpus := []string{"good day", "bad day"}
	v.Fit(corpus)
	assert.Equal(t, v.Transform(corpus), v.Transform(corpus))
}

func TestTransformIgnoresUnknownTerms(t *testing.T) {
	v := NewVectorizer(100)
	v.Fit([]string{"good day"})
	rows := v.Transform([]string{"entirely novel words"})
	for _, x := range rows[0] {
		assert.Equal(t, 0.0, x)
	}
}

func TestMaxFeaturesCap(t *testing.T) {
	v := NewVectorizer(2)
	v.Fit([]string{"aa bb cc dd", "aa bb", "aa"})
	assert.Equal(t, 2, v.NumFeatures())
	_, hasAA := v.Vocabulary["aa"]
	assert.True(t, hasAA)
}

func TestVectorizerSerializationRoundTrip(t *testing.T) {
	v := NewVectorizer(100)
	corpus := []string{"happy happy joy", "sad and angry", "joy to the world"}
	v.Fit(corpus)

	rawData, err := json.Marshal(v)
	assert.NoError(t, err)
	var v2 Vectorizer
	assert.NoError(t, json.Unmarshal(rawData, &v2))

	assert.Equal(t, v.Transform(corpus), v2.Transform(corpus))
}

func TestRowsAreL2Normalized(t *testing.T) {
	v := NewVectorizer(100)
	v.Fit([]string{"happy joy", "sad day"})
	rows := v.Transform([]string{"happy joy"})
	var sum float64
	for _, x := range rows[0] {
		sum += x * x
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
