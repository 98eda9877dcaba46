package emotions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultVocabulary(t *testing.T) {
	labels := Load()
	assert.Equal(t, 28, len(labels))
	assert.Equal(t, "admiration", labels[0])
	assert.Equal(t, "neutral", labels[len(labels)-1])
}

func TestLoadIsStable(t *testing.T) {
	assert.Equal(t, Load(), Load())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	err := os.WriteFile(path, []byte("joy\n\nanger\n"), 0644)
	assert.NoError(t, err)
	labels, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"joy", "anger"}, labels)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	idx := Index([]string{"joy", "anger"})
	assert.Equal(t, 0, idx["joy"])
	assert.Equal(t, 1, idx["anger"])
}
