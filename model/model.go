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

// Package model defines the lifecycle contract every emotion-classifier
// variant implements, plus the artifact-directory management and the
// save/load orchestration shared by all of them.
package model

import (
	"errors"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
)

var (
	// ErrArtifactNotFound is reported by Load when no artifact was ever
	// saved at the expected location.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrDeserialization is reported by Load when the artifact bytes do
	// not match the variant's expected format (typically version skew
	// between the saving and the loading code).
	ErrDeserialization = errors.New("malformed model artifact")

	// ErrNoSuchModel is reported when an unknown variant type is requested.
	ErrNoSuchModel = errors.New("no such model")
)

// DefaultArtifactFileName is the fixed, versionless artifact name each
// variant saves under. A Load call always targets this name; incompatible
// format changes require out-of-band coordination.
const DefaultArtifactFileName = "model.model"

// Model is the uniform contract of one trained classifier instance bound
// to the shared emotion vocabulary. Variants differ only in how they
// implement each operation, never in the meaning of the operations.
//
// Thresholds are owned exclusively by the instance; PredictProba must be
// a pure, deterministic function of the input and the learned state.
// Predict must be equivalent to thresholding the single row of
// PredictProba on the one-element batch.
type Model interface {

	// Name identifies the variant (used by the registry and in logs).
	Name() string

	// ArtifactFileName returns the fixed artifact name for this variant.
	ArtifactFileName() string

	Thresholds() *metrics.Thresholds

	// SetThresholds replaces the instance thresholds wholesale. The new
	// thresholds are validated against the instance's vocabulary: unknown
	// labels are an error, missing labels are filled with the default.
	SetThresholds(t *metrics.Thresholds) error

	Predict(comment api.Comment) (api.Prediction, error)

	// PredictProba returns a probability matrix of shape
	// (len(texts), #labels), values in [0, 1], column order matching the
	// shared vocabulary.
	PredictProba(texts []string) ([][]float64, error)

	// SaveArtifactFile writes everything needed to reconstruct an
	// equivalent instance under the single provided path (the shared
	// vocabulary excepted - it is reloaded independently).
	SaveArtifactFile(path string) error
}
