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

package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/errors"
	"github.com/formshape/formshape/tmpl/infer"
	"github.com/formshape/formshape/tmpl/parser"
	"github.com/formshape/formshape/tmpl/shape"
)

func infered(t *testing.T, src string) *shape.Structural {
	t.Helper()
	ctx, err := infer.InferSource("t", src, infer.DefaultConfig(), infer.NopLoader)
	require.NoError(t, err)
	return ctx
}

// stubLoader resolves a fixed set of in-memory templates by name, for
// tests that exercise include/import without touching a filesystem.
type stubLoader map[string]string

func (l stubLoader) Load(path string) (*ast.Template, bool) {
	src, ok := l[path]
	if !ok {
		return nil, false
	}
	tmpl, err := parser.ParseTemplate(path, src)
	if err != nil && tmpl == nil {
		return nil, false
	}
	return tmpl, true
}

// Seed scenario 1: `{{ x }}` -> {x: Scalar(required=true)}.
func TestSeedBareName(t *testing.T) {
	ctx := infered(t, "{{ x }}")
	x, ok := ctx.Field("x")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, x.Kind)
	assert.True(t, x.Required)
}

// Seed scenario 2: `{{ x.a.b }}` -> {x: {a: {b: Scalar}}}.
func TestSeedNestedAttribute(t *testing.T) {
	ctx := infered(t, "{{ x.a.b }}")
	x, ok := ctx.Field("x")
	require.True(t, ok)
	assert.Equal(t, shape.Dictionary, x.Kind)
	a, ok := x.Field("a")
	require.True(t, ok)
	assert.Equal(t, shape.Dictionary, a.Kind)
	b, ok := a.Field("b")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, b.Kind)
}

// Seed scenario 3: `{{ x.a.b|first }}` -> {x: {a: {b: List(element=Scalar)}}}.
func TestSeedFilterFirst(t *testing.T) {
	ctx := infered(t, "{{ x.a.b|first }}")
	x, _ := ctx.Field("x")
	a, _ := x.Field("a")
	b, ok := a.Field("b")
	require.True(t, ok)
	assert.Equal(t, shape.List, b.Kind)
	assert.Equal(t, shape.Scalar, b.Element.Kind)
}

// Seed scenario 4: nested for-loops reusing `x` as the loop target in
// each loop body, read through two different fields.
func TestSeedNestedForLoopTargetShadowing(t *testing.T) {
	src := `{% for x in xs %}{% for x in ys %}{{ x.a }}{% endfor %}{{ x.b }}{% endfor %}`
	ctx := infered(t, src)

	xs, ok := ctx.Field("xs")
	require.True(t, ok)
	require.Equal(t, shape.List, xs.Kind)
	xsElem := xs.Element
	require.Equal(t, shape.Dictionary, xsElem.Kind)
	b, ok := xsElem.Field("b")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, b.Kind)

	ys, ok := ctx.Field("ys")
	require.True(t, ok)
	require.Equal(t, shape.List, ys.Kind)
	ysElem := ys.Element
	require.Equal(t, shape.Dictionary, ysElem.Kind)
	a, ok := ysElem.Field("a")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, a.Kind)
}

// Seed scenario 5: a set inside an if-without-else makes the set name
// optional via the `is undefined` test; `a`, read only inside the same
// branch to compute the set's value, is weak-joined the same way any
// other branch-only variable would be (see DESIGN.md's Open Questions
// section for why this reads `a.Required == false` rather than the
// seed prose's literal `required=true`).
func TestSeedConditionalSetIsOptional(t *testing.T) {
	src := `{% if y is undefined %}{% set y = 'prefix' ~ a %}{% endif %}`
	ctx := infered(t, src)

	y, ok := ctx.Field("y")
	require.True(t, ok)
	assert.False(t, y.Required)

	a, ok := ctx.Field("a")
	require.True(t, ok)
	assert.False(t, a.Required)
}

// Seed scenario 6: reusing a name first as scalar, then as dictionary,
// raises a MergeException naming the contributing lines.
func TestSeedScalarThenDictionaryConflict(t *testing.T) {
	src := "{{ x }}\n{{ x.name }}"
	_, err := infer.InferSource("t", src, infer.DefaultConfig(), infer.NopLoader)
	require.Error(t, err)

	var merr *errors.MergeException
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "x", merr.Label())
}

func TestUnknownIdentity(t *testing.T) {
	ctx := infered(t, "{{ x }}")
	x, _ := ctx.Field("x")
	merged, err := shape.Merge(shape.NewUnknown("x"), x, shape.Strict, shape.Options{})
	require.NoError(t, err)
	assert.True(t, shape.Equal(x, merged))
}

func TestMacroParamsConstrainCallSite(t *testing.T) {
	src := `{% macro greet(person) %}{{ person.name }}{% endmacro %}{{ greet(p) }}`
	ctx := infered(t, src)
	p, ok := ctx.Field("p")
	require.True(t, ok)
	assert.Equal(t, shape.Dictionary, p.Kind)
	_, ok = p.Field("name")
	assert.True(t, ok)
}

func TestIncludeMergesIntoCurrentScope(t *testing.T) {
	loader := stubLoader{"partial.html": "{{ shared.other }}"}
	tmpl, err := parser.ParseTemplate("t", `{% include "partial.html" %}{{ shared.field }}`)
	require.NoError(t, err)
	ctx, err := infer.InferWithLoader(tmpl, infer.DefaultConfig(), loader)
	require.NoError(t, err)
	shared, ok := ctx.Field("shared")
	require.True(t, ok)
	require.Equal(t, shape.Dictionary, shared.Kind)
	_, ok = shared.Field("field")
	assert.True(t, ok)
	_, ok = shared.Field("other")
	assert.True(t, ok)
}

func TestWithBindingDoesNotLeak(t *testing.T) {
	ctx := infered(t, `{% with total = 1 %}{{ total }}{% endwith %}{{ total }}`)
	total, ok := ctx.Field("total")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, total.Kind)
}
