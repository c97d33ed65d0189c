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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/parser"
)

func parse(t *testing.T, src string) *ast.Template {
	t.Helper()
	tmpl, err := parser.ParseTemplate("t", src)
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	return tmpl
}

func TestParseBareOutput(t *testing.T) {
	tmpl := parse(t, "{{ x }}")
	require.Len(t, tmpl.List, 1)
	out, ok := tmpl.List[0].(*ast.Output)
	require.True(t, ok)
	name, ok := out.X.(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "x", name.Value)
}

func TestParseAttributeChain(t *testing.T) {
	tmpl := parse(t, "{{ x.a.b }}")
	out := tmpl.List[0].(*ast.Output)
	outer, ok := out.X.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "b", outer.Field)
	inner, ok := outer.X.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "a", inner.Field)
	_, ok = inner.X.(*ast.Name)
	assert.True(t, ok)
}

func TestParseSubscript(t *testing.T) {
	tmpl := parse(t, "{{ x[0] }}")
	out := tmpl.List[0].(*ast.Output)
	sub, ok := out.X.(*ast.Subscript)
	require.True(t, ok)
	n, ok := sub.Index.(*ast.NumberLit)
	require.True(t, ok)
	assert.True(t, n.IsInt)
}

func TestParseFilterChain(t *testing.T) {
	tmpl := parse(t, "{{ x|first|default('a') }}")
	out := tmpl.List[0].(*ast.Output)
	outer, ok := out.X.(*ast.FilterExpr)
	require.True(t, ok)
	assert.Equal(t, "default", outer.Name)
	require.Len(t, outer.Args, 1)
	inner, ok := outer.X.(*ast.FilterExpr)
	require.True(t, ok)
	assert.Equal(t, "first", inner.Name)
}

func TestParseFilterWithKwargs(t *testing.T) {
	tmpl := parse(t, "{{ x|join(sep=', ') }}")
	out := tmpl.List[0].(*ast.Output)
	f, ok := out.X.(*ast.FilterExpr)
	require.True(t, ok)
	require.Contains(t, f.Kwargs, "sep")
}

func TestParseTest(t *testing.T) {
	tmpl := parse(t, "{{ x is defined }}")
	out := tmpl.List[0].(*ast.Output)
	test, ok := out.X.(*ast.TestExpr)
	require.True(t, ok)
	assert.Equal(t, "defined", test.Name)
	assert.False(t, test.Negate)
}

func TestParseNegatedTest(t *testing.T) {
	tmpl := parse(t, "{{ x is not none }}")
	out := tmpl.List[0].(*ast.Output)
	test, ok := out.X.(*ast.TestExpr)
	require.True(t, ok)
	assert.True(t, test.Negate)
	assert.Equal(t, "none", test.Name)
}

func TestParseNotIn(t *testing.T) {
	tmpl := parse(t, "{{ x not in ys }}")
	out := tmpl.List[0].(*ast.Output)
	bin, ok := out.X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpNotIn, bin.Op)
}

func TestParseTernary(t *testing.T) {
	tmpl := parse(t, "{{ a if cond else b }}")
	out := tmpl.List[0].(*ast.Output)
	cond, ok := out.X.(*ast.CondExpr)
	require.True(t, ok)
	_, ok = cond.Then.(*ast.Name)
	assert.True(t, ok)
	_, ok = cond.Else.(*ast.Name)
	assert.True(t, ok)
}

func TestParseTernaryWithoutElseDefaultsToNone(t *testing.T) {
	tmpl := parse(t, "{{ a if cond }}")
	out := tmpl.List[0].(*ast.Output)
	cond := out.X.(*ast.CondExpr)
	_, ok := cond.Else.(*ast.NoneLit)
	assert.True(t, ok)
}

func TestParseIfElifElse(t *testing.T) {
	tmpl := parse(t, "{% if a %}1{% elif b %}2{% else %}3{% endif %}")
	ifs, ok := tmpl.List[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifs.Branches, 3)
	assert.NotNil(t, ifs.Branches[0].Cond)
	assert.NotNil(t, ifs.Branches[1].Cond)
	assert.Nil(t, ifs.Branches[2].Cond)
}

func TestParseForWithElse(t *testing.T) {
	tmpl := parse(t, "{% for x in xs %}{{ x }}{% else %}none{% endfor %}")
	f, ok := tmpl.List[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, f.Target.Names)
	assert.NotEmpty(t, f.Body)
	assert.NotEmpty(t, f.Else)
}

func TestParseForUnpacking(t *testing.T) {
	tmpl := parse(t, "{% for k, v in items %}{{ k }}{{ v }}{% endfor %}")
	f := tmpl.List[0].(*ast.ForStmt)
	assert.Equal(t, []string{"k", "v"}, f.Target.Names)
}

func TestParseSet(t *testing.T) {
	tmpl := parse(t, "{% set x = 1 %}")
	s, ok := tmpl.List[0].(*ast.SetStmt)
	require.True(t, ok)
	assert.Equal(t, "x", s.Name)
}

func TestParseSetBlock(t *testing.T) {
	tmpl := parse(t, "{% set x %}body{% endset %}")
	s, ok := tmpl.List[0].(*ast.SetBlockStmt)
	require.True(t, ok)
	assert.Equal(t, "x", s.Name)
	require.Len(t, s.Body, 1)
}

func TestParseWith(t *testing.T) {
	tmpl := parse(t, "{% with a = 1, b = 2 %}{{ a }}{% endwith %}")
	w, ok := tmpl.List[0].(*ast.WithStmt)
	require.True(t, ok)
	require.Len(t, w.Bindings, 2)
	assert.Equal(t, "a", w.Bindings[0].Name)
	assert.Equal(t, "b", w.Bindings[1].Name)
}

func TestParseMacro(t *testing.T) {
	tmpl := parse(t, "{% macro greet(name, greeting='hi') %}{{ greeting }} {{ name }}{% endmacro %}")
	m, ok := tmpl.List[0].(*ast.MacroStmt)
	require.True(t, ok)
	assert.Equal(t, "greet", m.Name)
	require.Len(t, m.Params, 2)
	assert.Equal(t, "name", m.Params[0].Name)
	assert.Nil(t, m.Params[0].Default)
	assert.Equal(t, "greeting", m.Params[1].Name)
	assert.NotNil(t, m.Params[1].Default)
}

func TestParseInclude(t *testing.T) {
	tmpl := parse(t, `{% include "partial.html" %}`)
	inc, ok := tmpl.List[0].(*ast.IncludeStmt)
	require.True(t, ok)
	assert.False(t, inc.Ignore)
}

func TestParseIncludeIgnoreMissing(t *testing.T) {
	tmpl := parse(t, `{% include "partial.html" ignore missing %}`)
	inc, ok := tmpl.List[0].(*ast.IncludeStmt)
	require.True(t, ok)
	assert.True(t, inc.Ignore)
}

func TestParseImportAs(t *testing.T) {
	tmpl := parse(t, `{% import "macros.html" as m %}`)
	im, ok := tmpl.List[0].(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "m", im.As)
}

func TestParseFromImport(t *testing.T) {
	tmpl := parse(t, `{% from "macros.html" import greet, farewell as bye %}`)
	fi, ok := tmpl.List[0].(*ast.FromImportStmt)
	require.True(t, ok)
	require.Len(t, fi.Names, 2)
	assert.Equal(t, "greet", fi.Names[0].Name)
	assert.Equal(t, "greet", fi.Names[0].As)
	assert.Equal(t, "farewell", fi.Names[1].Name)
	assert.Equal(t, "bye", fi.Names[1].As)
}

func TestParseBlockAndExtends(t *testing.T) {
	tmpl := parse(t, `{% extends "base.html" %}{% block content %}hi{% endblock content %}`)
	require.Len(t, tmpl.List, 2)
	_, ok := tmpl.List[0].(*ast.ExtendsStmt)
	require.True(t, ok)
	b, ok := tmpl.List[1].(*ast.BlockStmt)
	require.True(t, ok)
	assert.Equal(t, "content", b.Name)
}

func TestParseFilterBlock(t *testing.T) {
	tmpl := parse(t, "{% filter upper %}hi{% endfilter %}")
	fb, ok := tmpl.List[0].(*ast.FilterBlock)
	require.True(t, ok)
	assert.Equal(t, "upper", fb.Name)
}

func TestParseListAndDictLiterals(t *testing.T) {
	tmpl := parse(t, `{{ [1, 2, x] }}`)
	out := tmpl.List[0].(*ast.Output)
	list, ok := out.X.(*ast.ListLit)
	require.True(t, ok)
	assert.Len(t, list.Elts, 3)

	tmpl2 := parse(t, `{{ {"a": 1, b: x} }}`)
	out2 := tmpl2.List[0].(*ast.Output)
	dict, ok := out2.X.(*ast.DictLit)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, dict.Keys)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	tmpl := parse(t, "{{ 1 + 2 * 3 }}")
	out := tmpl.List[0].(*ast.Output)
	add, ok := out.X.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul, ok := add.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestParseComment(t *testing.T) {
	tmpl := parse(t, "{# a note #}")
	_, ok := tmpl.List[0].(*ast.Comment)
	assert.True(t, ok)
}

func TestParseErrorOnUnterminatedTag(t *testing.T) {
	_, err := parser.ParseTemplate("t", "{% if x %}")
	assert.Error(t, err)
}
