// Copyright 2024 The emo-classifier authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dataset stores labeled comments used for training and for
// threshold calibration.
package dataset

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const labelSeparator = ","

// Record is one labeled comment. Labels holds the annotated emotion
// labels by name; order is not significant here.
type Record struct {
	ID     string
	Text   string
	Labels []string
}

// LabelVector projects the record's labels onto the shared vocabulary,
// producing one truth column per label.
func (rec Record) LabelVector(labels []string) []bool {
	annotated := make(map[string]bool, len(rec.Labels))
	for _, v := range rec.Labels {
		annotated[v] = true
	}
	ans := make([]bool, len(labels))
	for i, v := range labels {
		ans[i] = annotated[v]
	}
	return ans
}

type Database struct {
	db *sql.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset database: %w", err)
	}
	return &Database{db: db}, nil
}

func (database *Database) Init() error {
	_, err := database.db.Exec(
		"CREATE TABLE IF NOT EXISTS comment (" +
			"id TEXT PRIMARY KEY, " +
			"text TEXT NOT NULL, " +
			"labels TEXT NOT NULL)")
	if err != nil {
		return fmt.Errorf("failed to initialize dataset database: %w", err)
	}
	return nil
}

func (database *Database) Close() error {
	if database != nil && database.db != nil {
		return database.db.Close()
	}
	return nil
}

func (database *Database) InsertComment(rec Record) error {
	_, err := database.db.Exec(
		"INSERT OR REPLACE INTO comment (id, text, labels) VALUES (?, ?, ?)",
		rec.ID, rec.Text, strings.Join(rec.Labels, labelSeparator))
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (database *Database) GetAllRecords() ([]Record, error) {
	rows, err := database.db.Query("SELECT id, text, labels FROM comment ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset records: %w", err)
	}
	defer rows.Close()
	ans := make([]Record, 0, 1000)
	for rows.Next() {
		var rec Record
		var rawLabels string
		if err := rows.Scan(&rec.ID, &rec.Text, &rawLabels); err != nil {
			return nil, fmt.Errorf("failed to fetch dataset records: %w", err)
		}
		if rawLabels != "" {
			rec.Labels = strings.Split(rawLabels, labelSeparator)
		}
		ans = append(ans, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch dataset records: %w", err)
	}
	return ans, nil
}

func (database *Database) Size() (int, error) {
	var ans int
	if err := database.db.QueryRow("SELECT COUNT(*) FROM comment").Scan(&ans); err != nil {
		return 0, fmt.Errorf("failed to count dataset records: %w", err)
	}
	return ans, nil
}

// ImportFromTSV loads records from a tab-separated file with columns
// id, text, comma-separated labels. Malformed lines are skipped with a
// warning. Returns the number of imported records.
func (database *Database) ImportFromTSV(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to import dataset: %w", err)
	}
	defer file.Close()
	numImported := 0
	numSkipped := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tmp := strings.SplitN(line, "\t", 3)
		if len(tmp) != 3 || tmp[0] == "" || tmp[1] == "" {
			numSkipped++
			continue
		}
		rec := Record{ID: tmp[0], Text: tmp[1]}
		if tmp[2] != "" {
			rec.Labels = strings.Split(tmp[2], labelSeparator)
		}
		if err := database.InsertComment(rec); err != nil {
			return numImported, err
		}
		numImported++
	}
	if err := scanner.Err(); err != nil {
		return numImported, fmt.Errorf("failed to import dataset: %w", err)
	}
	if numSkipped > 0 {
		log.Warn().Int("numSkipped", numSkipped).Msg("skipped malformed dataset lines")
	}
	log.Info().Int("numImported", numImported).Str("src", path).Msg("imported dataset")
	return numImported, nil
}
