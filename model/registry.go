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
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// LoaderFunc reconstructs a variant instance from the serialized bytes of
// one artifact. It must be the exact inverse of the variant's
// SaveArtifactFile and must not depend on anything outside the stream,
// except the shared vocabulary which is passed in explicitly (it is not
// part of the artifact).
type LoaderFunc func(r io.Reader, labels []string) (Model, error)

var registry = make(map[string]LoaderFunc)

// RegisterLoader makes a variant loadable under the given type name.
// Variants call this from their init(); registration after init is not
// synchronized.
func RegisterLoader(name string, fn LoaderFunc) {
	registry[name] = fn
}

// RegisteredModels lists the loadable variant type names.
func RegisteredModels() []string {
	ans := make([]string, 0, len(registry))
	for name := range registry {
		ans = append(ans, name)
	}
	sort.Strings(ans)
	return ans
}

// Load opens the well-known artifact in dir and reconstructs a variant
// instance of the requested type. A missing artifact yields
// ErrArtifactNotFound, bytes the variant cannot decode yield an error
// wrapping ErrDeserialization, an unregistered type yields ErrNoSuchModel.
func Load(modelType, dir string, labels []string) (Model, error) {
	loader, ok := registry[modelType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchModel, modelType)
	}
	filePath := filepath.Join(dir, DefaultArtifactFileName)
	f, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, filePath)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := loader(f, labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	log.Info().
		Str("model", m.Name()).
		Str("path", filePath).
		Msg("LOADED model")
	return m, nil
}
