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

// Package api defines the data transfer objects exchanged between
// a model and its callers (CLI, batch jobs). They carry no behavior
// beyond JSON (de)serialization.
package api

import "encoding/json"

// Comment is a single classified input - one piece of user text
// identified by an opaque ID.
type Comment struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Prediction is the result of classifying one Comment. Labels contains
// the asserted emotion labels in the shared vocabulary order.
type Prediction struct {
	ID     string   `json:"id"`
	Labels []string `json:"labels"`
}

func (p Prediction) AsJSON() string {
	ans, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(ans)
}

// HasLabel tests whether the prediction asserts the provided label.
func (p Prediction) HasLabel(label string) bool {
	for _, v := range p.Labels {
		if v == label {
			return true
		}
	}
	return false
}
