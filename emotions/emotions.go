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

// Package emotions provides the shared emotion-label vocabulary. The list
// is loaded once at process start and treated as immutable afterwards;
// every model instance is handed the same ordered slice, because the
// columns of probability outputs are positionally aligned to it.
package emotions

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed emotions.txt
var defaultVocabulary string

// Load returns the embedded default vocabulary (the 27 GoEmotions labels
// plus neutral) in its canonical order.
func Load() []string {
	return parse(defaultVocabulary)
}

// LoadFromFile reads a custom vocabulary, one label per line. Empty lines
// are skipped, order is preserved.
func LoadFromFile(path string) ([]string, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load emotion vocabulary: %w", err)
	}
	labels := parse(string(rawData))
	if len(labels) == 0 {
		return nil, fmt.Errorf("failed to load emotion vocabulary: file %s contains no labels", path)
	}
	return labels, nil
}

func parse(src string) []string {
	lines := strings.Split(src, "\n")
	labels := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			labels = append(labels, line)
		}
	}
	return labels
}

// Index returns a label -> column position mapping for the provided
// vocabulary.
func Index(labels []string) map[string]int {
	ans := make(map[string]int, len(labels))
	for i, v := range labels {
		ans[v] = i
	}
	return ans
}
