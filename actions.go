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

package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/api"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/cnf"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/dataset"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model/nn"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model/rf"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/model/ym"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/predlog"
)

const (
	errColor = color.FgHiRed
)

// trainableModel is a model variant which can be fitted locally (the
// lifecycle contract itself does not include training).
type trainableModel interface {
	model.Model
	Fit(ctx context.Context, texts []string, truth [][]bool, comment string) error
}

func runActionImport(conf *cnf.Conf, srcPath string) {
	db, err := dataset.NewDatabase(conf.DatasetDBPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorImportFailed)
	}
	defer db.Close()
	if err := db.Init(); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorImportFailed)
	}
	if _, err := db.ImportFromTSV(srcPath); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorImportFailed)
	}
}

func runActionTrain(conf *cnf.Conf, comment string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	labels, err := loadLabels(conf)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorTrainingFailed)
	}

	var m trainableModel
	switch conf.ModelType {
	case rf.Name:
		m = rf.NewModel(labels, conf.NumTrees)
	case nn.Name:
		m = nn.NewModel(labels)
	default:
		color.New(errColor).Fprintf(os.Stderr, "cannot train model type %s\n", conf.ModelType)
		os.Exit(exitErrorTrainingFailed)
	}

	db, err := dataset.NewDatabase(conf.DatasetDBPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorTrainingFailed)
	}
	defer db.Close()
	recs, err := db.GetAllRecords()
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorTrainingFailed)
	}
	if len(recs) == 0 {
		color.New(errColor).Fprintln(os.Stderr, "dataset is empty - run the import action first")
		os.Exit(exitErrorTrainingFailed)
	}

	var trainTexts, valTexts []string
	var trainTruth, valTruth [][]bool
	for _, rec := range recs {
		if rand.Float64() < conf.TrainSplit {
			trainTexts = append(trainTexts, rec.Text)
			trainTruth = append(trainTruth, rec.LabelVector(labels))

		} else {
			valTexts = append(valTexts, rec.Text)
			valTruth = append(valTruth, rec.LabelVector(labels))
		}
	}
	log.Info().
		Str("modelType", conf.ModelType).
		Int("trainSize", len(trainTexts)).
		Int("validationSize", len(valTexts)).
		Int("numLabels", len(labels)).
		Msg("starting training")

	if comment == "" {
		comment = fmt.Sprintf("trained on %d comments from %s", len(trainTexts), conf.DatasetDBPath)
	}
	if err := m.Fit(ctx, trainTexts, trainTruth, comment); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorTrainingFailed)
	}

	if len(valTexts) > 0 {
		proba, err := m.PredictProba(valTexts)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorTrainingFailed)
		}
		thresholds, err := metrics.CalibrateThresholds(proba, valTruth, labels)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorTrainingFailed)
		}
		if err := m.SetThresholds(thresholds); err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorTrainingFailed)
		}

	} else {
		log.Warn().Msg("no validation data - keeping default thresholds")
	}

	if err := model.Save(m, conf.ArtifactDir); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorTrainingFailed)
	}
}

// getModel loads the configured variant from the artifact directory. The
// artifact-less ym variant is constructed directly.
func getModel(conf *cnf.Conf) (model.Model, error) {
	labels, err := loadLabels(conf)
	if err != nil {
		return nil, err
	}
	if conf.ModelType == ym.Name {
		return ym.NewModel(labels), nil
	}
	return model.Load(conf.ModelType, conf.ArtifactDir, labels)
}

func runActionPredict(conf *cnf.Conf, texts []string) {
	m, err := getModel(conf)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorPredictionFailed)
	}

	var plog *predlog.DB
	if conf.PredLogDir != "" {
		plog, err = predlog.OpenDB(conf.PredLogDir)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorPredictionFailed)
		}
		defer plog.Close()
	}

	if len(texts) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			texts = append(texts, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorPredictionFailed)
		}
	}

	for i, text := range texts {
		comment := api.Comment{ID: fmt.Sprintf("c%04d", i+1), Text: text}
		pred, err := m.Predict(comment)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorPredictionFailed)
		}
		fmt.Println(pred.AsJSON())
		if plog != nil {
			if err := plog.LogPrediction(pred); err != nil {
				log.Error().Err(err).Str("commentId", pred.ID).Msg("failed to log prediction")
			}
		}
	}
}

func runActionStats(conf *cnf.Conf) {
	if conf.PredLogDir == "" {
		color.New(errColor).Fprintln(os.Stderr, "predLogDir is not configured")
		os.Exit(exitErrorGeneralFailure)
	}
	plog, err := predlog.OpenDB(conf.PredLogDir)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorGeneralFailure)
	}
	defer plog.Close()
	counts, err := plog.LabelCounts()
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorGeneralFailure)
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	for _, label := range labels {
		fmt.Printf("%-16s%d\n", label, counts[label])
	}
}
