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

package feats

import (
	"math"
	"sort"
)

const dfltMaxFeatures = 2000

// Vectorizer is a TF-IDF text vectorizer. Its learned state (vocabulary
// and IDF weights) is fully exported so variants can serialize it inside
// their artifacts and recover an equivalent instance on load.
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary" msgpack:"vocabulary"`
	IDF         []float64      `json:"idf" msgpack:"idf"`
	MaxFeatures int            `json:"maxFeatures" msgpack:"maxFeatures"`
}

func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = dfltMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// NumFeatures returns the width of vectors produced by Transform.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}

// Fit learns the vocabulary (the MaxFeatures most frequent terms by
// document frequency, ties broken alphabetically) and smoothed IDF
// weights from the corpus.
func (v *Vectorizer) Fit(texts []string) {
	docFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, term := range Tokenize(text) {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	numDocs := float64(len(texts))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+numDocs)/(1+float64(docFreq[term]))) + 1
	}
}

// Transform maps each text to its L2-normalized TF-IDF vector. Terms
// outside the fitted vocabulary are ignored. The output has one row per
// text, each of width NumFeatures.
func (v *Vectorizer) Transform(texts []string) [][]float64 {
	ans := make([][]float64, len(texts))
	for i, text := range texts {
		row := make([]float64, len(v.Vocabulary))
		for _, term := range Tokenize(text) {
			if j, ok := v.Vocabulary[term]; ok {
				row[j] += v.IDF[j]
			}
		}
		normalizeL2(row)
		ans[i] = row
	}
	return ans
}

func normalizeL2(row []float64) {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}
