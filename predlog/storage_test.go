package predlog

import (
	"testing"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogAndReadPrediction(t *testing.T) {
	db := testDB(t)
	err := db.LogPrediction(api.Prediction{ID: "c1", Labels: []string{"joy", "love"}})
	assert.NoError(t, err)

	labels, err := db.ReadPrediction("c1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"joy", "love"}, labels)
}

func TestReadMissingPrediction(t *testing.T) {
	db := testDB(t)
	_, err := db.ReadPrediction("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLabelCounters(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.LogPrediction(api.Prediction{ID: "c1", Labels: []string{"joy"}}))
	require.NoError(t, db.LogPrediction(api.Prediction{ID: "c2", Labels: []string{"joy", "anger"}}))

	count, err := db.LabelCount("joy")
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), count)

	count, err = db.LabelCount("anger")
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), count)

	count, err = db.LabelCount("fear")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), count)
}

func TestLabelCounts(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.LogPrediction(api.Prediction{ID: "c1", Labels: []string{"joy", "anger"}}))
	counts, err := db.LabelCounts()
	assert.NoError(t, err)
	assert.Equal(t, map[string]uint32{"joy": 1, "anger": 1}, counts)
}

func TestEmptyLabelsRoundTrip(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.LogPrediction(api.Prediction{ID: "c1", Labels: nil}))
	labels, err := db.ReadPrediction("c1")
	assert.NoError(t, err)
	assert.Nil(t, labels)
}

func TestCloseOnNilIsNOP(t *testing.T) {
	var db *DB
	assert.NoError(t, db.Close())
}
