// Package predlog keeps a local log of served predictions for
// operational visibility: which labels the classifier asserted for which
// comment and how often each label fires overall.
package predlog

import (
	"errors"
	"fmt"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is reported when no prediction was logged for a comment.
var ErrNotFound = errors.New("prediction not found")

// DB is a wrapper around badger.DB providing concrete methods for
// recording and retrieving prediction information.
type DB struct {
	bdb *badger.DB
}

func OpenDB(path string) (*DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open prediction log: %w", err)
	}
	return &DB{bdb: bdb}, nil
}

// Close closes the internal Badger database. It is possible to call the
// method on a nil instance or on an uninitialized DB object, in which
// case it is a NOP.
func (db *DB) Close() error {
	if db != nil && db.bdb != nil {
		return db.bdb.Close()
	}
	return nil
}

// LogPrediction stores the asserted labels of one prediction and bumps
// the per-label counters.
func (db *DB) LogPrediction(pred api.Prediction) error {
	return db.bdb.Update(func(txn *badger.Txn) error {
		if err := txn.Set(encodeKey(PredictionPrefix, pred.ID), encodeLabels(pred.Labels)); err != nil {
			return err
		}
		for _, label := range pred.Labels {
			key := encodeKey(LabelCountPrefix, label)
			var count uint32
			item, err := txn.Get(key)
			if err == nil {
				err = item.Value(func(val []byte) error {
					count = decodeCount(val)
					return nil
				})
				if err != nil {
					return err
				}

			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Set(key, encodeCount(count+1)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadPrediction returns the logged labels for a comment ID.
func (db *DB) ReadPrediction(commentID string) ([]string, error) {
	var ans []string
	err := db.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(PredictionPrefix, commentID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, commentID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			ans = decodeLabels(val)
			return nil
		})
	})
	return ans, err
}

// LabelCount returns how many logged predictions asserted the label.
func (db *DB) LabelCount(label string) (uint32, error) {
	var ans uint32
	err := db.bdb.View(func(txn *badger.Txn) error {
		item, err := txn.Get(encodeKey(LabelCountPrefix, label))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			ans = decodeCount(val)
			return nil
		})
	})
	return ans, err
}

// LabelCounts collects all per-label counters.
func (db *DB) LabelCounts() (map[string]uint32, error) {
	ans := make(map[string]uint32)
	err := db.bdb.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{LabelCountPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			label := string(item.Key()[1:])
			err := item.Value(func(val []byte) error {
				ans[label] = decodeCount(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return ans, err
}
