package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "dataset.sqlite"))
	require.NoError(t, err)
	require.NoError(t, db.Init())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndFetch(t *testing.T) {
	db := testDatabase(t)
	err := db.InsertComment(Record{ID: "c1", Text: "a happy day", Labels: []string{"joy"}})
	assert.NoError(t, err)
	err = db.InsertComment(Record{ID: "c2", Text: "so mad", Labels: []string{"anger", "annoyance"}})
	assert.NoError(t, err)

	recs, err := db.GetAllRecords()
	assert.NoError(t, err)
	require.Equal(t, 2, len(recs))
	assert.Equal(t, []string{"joy"}, recs[0].Labels)
	assert.Equal(t, []string{"anger", "annoyance"}, recs[1].Labels)
}

func TestInsertReplacesExisting(t *testing.T) {
	db := testDatabase(t)
	require.NoError(t, db.InsertComment(Record{ID: "c1", Text: "old", Labels: []string{"joy"}}))
	require.NoError(t, db.InsertComment(Record{ID: "c1", Text: "new", Labels: []string{"anger"}}))
	recs, err := db.GetAllRecords()
	assert.NoError(t, err)
	require.Equal(t, 1, len(recs))
	assert.Equal(t, "new", recs[0].Text)
}

func TestSize(t *testing.T) {
	db := testDatabase(t)
	require.NoError(t, db.InsertComment(Record{ID: "c1", Text: "x", Labels: nil}))
	size, err := db.Size()
	assert.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestLabelVector(t *testing.T) {
	rec := Record{ID: "c1", Text: "x", Labels: []string{"anger"}}
	assert.Equal(t, []bool{false, true}, rec.LabelVector([]string{"joy", "anger"}))
}

func TestImportFromTSV(t *testing.T) {
	db := testDatabase(t)
	src := filepath.Join(t.TempDir(), "data.tsv")
	content := "c1\ta happy day\tjoy\n" +
		"broken line without tabs\n" +
		"c2\tso mad\tanger,annoyance\n" +
		"c3\tnothing special\t\n"
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	numImported, err := db.ImportFromTSV(src)
	assert.NoError(t, err)
	assert.Equal(t, 3, numImported)

	recs, err := db.GetAllRecords()
	assert.NoError(t, err)
	require.Equal(t, 3, len(recs))
	assert.Empty(t, recs[2].Labels)
}

func TestCloseOnNilIsNOP(t *testing.T) {
	var db *Database
	assert.NoError(t, db.Close())
}
