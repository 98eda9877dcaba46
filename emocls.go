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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/logging"

	"github.com/TrellixVulnTeam/emo-classifier-M9XH/cnf"
	"github.com/TrellixVulnTeam/emo-classifier-M9XH/emotions"
)

const (
	actionVersion = "version"
	actionImport  = "import"
	actionTrain   = "train"
	actionPredict = "predict"
	actionStats   = "stats"
	actionREPL    = "repl"
	actionHelp    = "help"

	exitErrorGeneralFailure = iota
	exitErrorImportFailed
	exitErrorTrainingFailed
	exitErrorPredictionFailed
	exitErrorREPLReading
)

var (
	version   string
	buildDate string
	gitCommit string
)

// VersionInfo provides a detailed information about the actual build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

func topLevelUsage() {
	fmt.Fprintf(os.Stderr, "EMOCLS - a multi-label text emotion classifier\n")
	fmt.Fprintf(os.Stderr, "-----------------------------\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tshow version info\n", actionVersion)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\timport a labeled dataset (TSV)\n", actionImport)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\ttrain a model and save its artifact\n", actionTrain)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tclassify texts (args or stdin)\n", actionPredict)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tshow prediction log counters\n", actionStats)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tinteractive classification\n", actionREPL)
	fmt.Fprintf(os.Stderr, "\nUse `emocls help ACTION` for information about a specific action\n\n")
}

func setup(confPath string) *cnf.Conf {
	conf := cnf.LoadConfig(confPath)
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	cnf.ValidateAndDefaults(conf)
	return conf
}

func loadLabels(conf *cnf.Conf) ([]string, error) {
	if conf.EmotionsPath != "" {
		return emotions.LoadFromFile(conf.EmotionsPath)
	}
	return emotions.Load(), nil
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func runActionVersion(ver VersionInfo) {
	fmt.Fprintln(os.Stderr, "emocls version: ", ver)
}

func main() {
	version := VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	cmdVersion := flag.NewFlagSet(actionVersion, flag.ExitOnError)
	cmdVersion.Usage = func() {
		cmdVersion.PrintDefaults()
	}

	cmdHelp := flag.NewFlagSet(actionHelp, flag.ExitOnError)
	cmdHelp.Usage = func() {
		cmdHelp.PrintDefaults()
	}

	cmdImport := flag.NewFlagSet(actionImport, flag.ExitOnError)
	cmdImport.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s config.json data.tsv\n",
			filepath.Base(os.Args[0]), actionImport)
		cmdImport.PrintDefaults()
	}

	cmdTrain := flag.NewFlagSet(actionTrain, flag.ExitOnError)
	trainModelType := cmdTrain.String(
		"model-type", "", "model variant to train (rf, nn); overrides the configured one")
	trainComment := cmdTrain.String(
		"comment", "", "a note stored along with the model artifact for easier model review")
	cmdTrain.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json\n",
			filepath.Base(os.Args[0]), actionTrain)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdTrain.PrintDefaults()
	}

	cmdPredict := flag.NewFlagSet(actionPredict, flag.ExitOnError)
	predictModelType := cmdPredict.String(
		"model-type", "", "model variant to load (rf, nn, ym); overrides the configured one")
	cmdPredict.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json [text ...]\n",
			filepath.Base(os.Args[0]), actionPredict)
		fmt.Fprintf(os.Stderr, "\nWithout text arguments, texts are read from stdin, one per line.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdPredict.PrintDefaults()
	}

	cmdStats := flag.NewFlagSet(actionStats, flag.ExitOnError)
	cmdStats.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s config.json\n",
			filepath.Base(os.Args[0]), actionStats)
		cmdStats.PrintDefaults()
	}

	cmdREPL := flag.NewFlagSet(actionREPL, flag.ExitOnError)
	replModelType := cmdREPL.String(
		"model-type", "", "model variant to load (rf, nn, ym); overrides the configured one")
	cmdREPL.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json\n",
			filepath.Base(os.Args[0]), actionREPL)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdREPL.PrintDefaults()
	}

	action := actionHelp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case actionHelp:
		var subj string
		if len(os.Args) > 2 {
			cmdHelp.Parse(os.Args[2:])
			subj = cmdHelp.Arg(0)
		}
		if subj == "" {
			topLevelUsage()
			return
		}
		switch subj {
		case actionImport:
			cmdImport.Usage()
		case actionTrain:
			cmdTrain.Usage()
		case actionPredict:
			cmdPredict.Usage()
		case actionStats:
			cmdStats.Usage()
		case actionREPL:
			cmdREPL.Usage()
		}
	case actionVersion:
		cmdVersion.Parse(os.Args[2:])
		runActionVersion(version)
	case actionImport:
		cmdImport.Parse(os.Args[2:])
		conf := setup(cmdImport.Arg(0))
		runActionImport(conf, cmdImport.Arg(1))
	case actionTrain:
		cmdTrain.Parse(os.Args[2:])
		conf := setup(cmdTrain.Arg(0))
		if *trainModelType != "" {
			conf.ModelType = *trainModelType
		}
		runActionTrain(conf, *trainComment)
	case actionPredict:
		cmdPredict.Parse(os.Args[2:])
		conf := setup(cmdPredict.Arg(0))
		if *predictModelType != "" {
			conf.ModelType = *predictModelType
		}
		runActionPredict(conf, cmdPredict.Args()[1:])
	case actionStats:
		cmdStats.Parse(os.Args[2:])
		conf := setup(cmdStats.Arg(0))
		runActionStats(conf)
	case actionREPL:
		cmdREPL.Parse(os.Args[2:])
		conf := setup(cmdREPL.Arg(0))
		if *replModelType != "" {
			conf.ModelType = *replModelType
		}
		runActionREPL(conf)
	default:
		fmt.Fprintf(os.Stderr, "Unknown action, please use 'help' to get more information")
	}
}
