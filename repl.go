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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/cnf"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/metrics"
)

const numShownProbabilities = 5

func ensureConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "emocls")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

func runActionREPL(conf *cnf.Conf) {
	m, err := getModel(conf)
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		os.Exit(1)
	}
	labels, err := loadLabels(conf)
	if err != nil {
		fmt.Printf("Error loading labels: %v\n", err)
		os.Exit(1)
	}

	titleColor := color.New(color.FgHiMagenta).SprintFunc()
	greenColor := color.New(color.FgGreen).SprintFunc()
	dimColor := color.New(color.Faint).SprintFunc()

	fmt.Println(titleColor("Emotion classifier"))
	fmt.Println("Commands:")
	fmt.Println("  <text>                       - classify a text")
	fmt.Println("  set threshold <label> <0..1> - set the decision threshold of a label")
	fmt.Println("  thresholds                   - show current thresholds")
	fmt.Println("  exit                         - exit the REPL")
	fmt.Println()

	var historyFile string
	historyDir, err := ensureConfigDir()
	if err != nil {
		log.Error().Err(err).Msg("failed to determine user config directory - falling back to session-local history")

	} else {
		historyFile = filepath.Join(historyDir, "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERR: ", err)
		os.Exit(exitErrorREPLReading)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" {
			fmt.Println("Goodbye!")
			break
		}
		if input == "thresholds" {
			showThresholds(m.Thresholds(), labels)
			continue
		}
		if strings.HasPrefix(input, "set threshold ") {
			tmp := strings.Fields(input)
			if len(tmp) != 4 {
				fmt.Println("usage: set threshold <label> <value>")
				continue
			}
			value, err := strconv.ParseFloat(tmp[3], 64)
			if err != nil || value < 0 || value > 1 {
				fmt.Println("threshold must be a number between 0 and 1")
				continue
			}
			thresholds := m.Thresholds().Clone()
			thresholds.Set(tmp[2], value)
			if err := m.SetThresholds(thresholds); err != nil {
				fmt.Fprintln(os.Stderr, "ERR: ", err)
				continue
			}
			fmt.Printf("threshold of %s set to %.2f\n", tmp[2], value)
			continue
		}

		proba, err := m.PredictProba([]string{input})
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERR: ", err)
			continue
		}
		asserted := metrics.AssertedLabels(labels, proba[0], m.Thresholds())
		if len(asserted) > 0 {
			fmt.Printf("asserted: %s\n", greenColor(strings.Join(asserted, ", ")))

		} else {
			fmt.Println(dimColor("asserted: (none)"))
		}
		showTopProbabilities(labels, proba[0])
	}
}

func showThresholds(t *metrics.Thresholds, labels []string) {
	for _, label := range labels {
		fmt.Printf("  %-16s%.2f\n", label, t.Get(label))
	}
}

func showTopProbabilities(labels []string, proba []float64) {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return proba[idx[i]] > proba[idx[j]]
	})
	numShown := numShownProbabilities
	if numShown > len(idx) {
		numShown = len(idx)
	}
	for _, j := range idx[:numShown] {
		fmt.Printf("  %-16s%01.2f\n", labels[j], proba[j])
	}
}
