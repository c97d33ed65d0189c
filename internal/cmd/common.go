// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/formshape/formshape/internal/config"
	"github.com/formshape/formshape/internal/loader"
	"github.com/formshape/formshape/tmpl/infer"
	"github.com/formshape/formshape/tmpl/shape"
)

// resolve parses the template at path and runs inference over it,
// wiring a loader.FS rooted at the template's own directory so its
// include/import/extends resolve relative to it, and a
// config.FileSystemLoader overlay from tmplshape.yaml in the same
// directory if present (§6).
func resolve(path string) (*shape.Structural, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	fsys := afero.NewBasePathFs(afero.NewOsFs(), dir)

	cfgLoader := &config.FileSystemLoader{Fs: fsys}
	cfg, err := cfgLoader.Load()
	if err != nil {
		return nil, err
	}

	tmplLoader := loader.New(fsys, "")

	return infer.InferSource(filepath.Base(path), string(raw), cfg, tmplLoader)
}
