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

package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// MarkerFileName marks a directory as a managed artifact namespace.
const MarkerFileName = ".artifacts"

// initArtifactDir prepares dir for a fresh save. If the directory exists,
// every entry inside it is removed - files and subdirectories alike,
// including anything unrelated that ended up there. A marker file is then
// touched so the directory is recognizable as an artifact namespace.
func initArtifactDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

	} else if err != nil {
		return err

	} else {
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return os.WriteFile(filepath.Join(dir, MarkerFileName), []byte{}, 0644)
}

// Save persists a trained model under dir. The directory is wiped first,
// so all prior artifacts (of any variant) are gone afterwards - Save must
// never be called concurrently, see the package docs. Filesystem errors
// propagate unmodified.
func Save(m Model, dir string) error {
	if err := initArtifactDir(dir); err != nil {
		return fmt.Errorf("failed to initialize artifact directory: %w", err)
	}
	filePath := filepath.Join(dir, m.ArtifactFileName())
	if err := m.SaveArtifactFile(filePath); err != nil {
		return err
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	log.Info().
		Str("model", m.Name()).
		Str("path", absPath).
		Msg("SAVED model artifact")
	return nil
}
