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

// Package loader implements tmpl/infer.Loader on top of an afero.Fs, so
// include/import/extends can be resolved against a real directory tree
// (or, in tests, an in-memory one), in the teacher's own style of
// wrapping filesystem access behind afero (uses/store.go's LocalStore
// wraps afero.Fs for its remote-workflow cache the same way).
package loader

import (
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/parser"
)

// FS resolves template paths relative to Root against Fsys, parsing and
// caching each template the first time it is requested.
type FS struct {
	Fsys afero.Fs
	Root string

	mu    sync.Mutex
	cache map[string]*ast.Template
}

// New returns an FS loader rooted at root on fsys.
func New(fsys afero.Fs, root string) *FS {
	return &FS{Fsys: fsys, Root: root, cache: map[string]*ast.Template{}}
}

// Load implements infer.Loader. A missing file or a parse error both
// resolve to ok=false: per §7, an unresolved include/import/extends
// contributes no constraint rather than failing inference outright.
func (f *FS) Load(path string) (*ast.Template, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.cache[path]; ok {
		return t, true
	}

	full := path
	if f.Root != "" {
		full = filepath.Join(f.Root, path)
	}
	raw, err := afero.ReadFile(f.Fsys, full)
	if err != nil {
		return nil, false
	}
	tmpl, err := parser.ParseTemplate(path, string(raw))
	if err != nil {
		return nil, false
	}
	f.cache[path] = tmpl
	return tmpl, true
}
