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

package loader_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/internal/loader"
)

func TestLoadResolvesAgainstRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/templates/partial.html", []byte("{{ x }}"), 0o644))

	l := loader.New(fs, "/templates")
	tmpl, ok := l.Load("partial.html")
	require.True(t, ok)
	require.NotNil(t, tmpl)
	assert.Len(t, tmpl.List, 1)
}

func TestLoadMissingFileReturnsFalse(t *testing.T) {
	fs := afero.NewMemMapFs()
	l := loader.New(fs, "/templates")
	_, ok := l.Load("nope.html")
	assert.False(t, ok)
}

func TestLoadCachesParsedTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/templates/a.html", []byte("{{ x }}"), 0o644))

	l := loader.New(fs, "/templates")
	first, ok := l.Load("a.html")
	require.True(t, ok)

	require.NoError(t, fs.Remove("/templates/a.html"))

	second, ok := l.Load("a.html")
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestLoadWithoutRootUsesPathDirectly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "partial.html", []byte("{{ y }}"), 0o644))

	l := loader.New(fs, "")
	tmpl, ok := l.Load("partial.html")
	require.True(t, ok)
	assert.Len(t, tmpl.List, 1)
}
