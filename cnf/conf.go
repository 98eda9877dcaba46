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

package cnf

import (
	"encoding/json"
	"os"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltModelType  = "rf"
	dfltNumTrees   = 200
	dfltTrainSplit = 0.75
)

type Conf struct {
	srcPath string
	Logging logging.LoggingConf `json:"logging"`

	// ArtifactDir is the well-known directory holding the single model
	// artifact. It is wiped on every save.
	ArtifactDir string `json:"artifactDir"`

	// EmotionsPath optionally overrides the embedded label vocabulary.
	EmotionsPath string `json:"emotionsPath"`

	DatasetDBPath string `json:"datasetDbPath"`

	// PredLogDir enables the prediction log when non-empty.
	PredLogDir string `json:"predLogDir"`

	ModelType string `json:"modelType"`

	NumTrees int `json:"numTrees"`

	// TrainSplit is the fraction of the dataset used for training; the
	// rest calibrates per-label thresholds.
	TrainSplit float64 `json:"trainSplit"`
}

func (conf *Conf) GetSourcePath() string {
	return conf.srcPath
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.ArtifactDir == "" {
		log.Fatal().Msg("artifactDir not specified")
	}
	if conf.ModelType == "" {
		conf.ModelType = dfltModelType
		log.Warn().Str("modelType", dfltModelType).Msg("modelType not specified, using default")
	}
	if conf.NumTrees <= 0 {
		conf.NumTrees = dfltNumTrees
		log.Warn().Int("numTrees", dfltNumTrees).Msg("numTrees not specified, using default")
	}
	if conf.TrainSplit <= 0 || conf.TrainSplit >= 1 {
		conf.TrainSplit = dfltTrainSplit
		log.Warn().
			Float64("trainSplit", dfltTrainSplit).
			Msg("trainSplit not specified or invalid, using default")
	}
}
