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

package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/tmpl/lexer"
	"github.com/formshape/formshape/tmpl/token"
)

type scanResult struct {
	tok token.Token
	lit string
}

func scanAll(t *testing.T, src string) []scanResult {
	t.Helper()
	var s lexer.Scanner
	var errs []string
	s.Init([]byte(src), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	var out []scanResult
	for {
		_, tok, lit := s.Scan()
		out = append(out, scanResult{tok, lit})
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "unexpected lexer errors: %v", errs)
	return out
}

func TestScanPlainText(t *testing.T) {
	got := scanAll(t, "hello world")
	require.Len(t, got, 2)
	assert.Equal(t, token.TEXT, got[0].tok)
	assert.Equal(t, "hello world", got[0].lit)
	assert.Equal(t, token.EOF, got[1].tok)
}

func TestScanVariableTag(t *testing.T) {
	got := scanAll(t, "{{ x.a }}")
	toks := make([]token.Token, len(got))
	for i, r := range got {
		toks[i] = r.tok
	}
	assert.Equal(t, []token.Token{
		token.VAR_START, token.IDENT, token.DOT, token.IDENT, token.VAR_END, token.EOF,
	}, toks)
	assert.Equal(t, "x", got[1].lit)
	assert.Equal(t, "a", got[3].lit)
}

func TestScanBlockTag(t *testing.T) {
	got := scanAll(t, "{% if x %}{% endif %}")
	var toks []token.Token
	for _, r := range got {
		toks = append(toks, r.tok)
	}
	assert.Equal(t, []token.Token{
		token.BLOCK_START, token.IDENT, token.IDENT, token.BLOCK_END,
		token.BLOCK_START, token.IDENT, token.BLOCK_END, token.EOF,
	}, toks)
}

func TestScanComment(t *testing.T) {
	got := scanAll(t, "{# a note #}after")
	require.Len(t, got, 3)
	assert.Equal(t, token.COMMENT, got[0].tok)
	assert.Equal(t, " a note ", got[0].lit)
	assert.Equal(t, token.TEXT, got[1].tok)
	assert.Equal(t, "after", got[1].lit)
}

func TestScanTrimMarkers(t *testing.T) {
	got := scanAll(t, "{{- x -}}")
	var toks []token.Token
	for _, r := range got {
		toks = append(toks, r.tok)
	}
	assert.Equal(t, []token.Token{token.VAR_START, token.IDENT, token.VAR_END, token.EOF}, toks)
}

func TestScanNumbers(t *testing.T) {
	got := scanAll(t, "{{ 1 2.5 }}")
	assert.Equal(t, token.INT, got[1].tok)
	assert.Equal(t, "1", got[1].lit)
	assert.Equal(t, token.FLOAT, got[2].tok)
	assert.Equal(t, "2.5", got[2].lit)
}

func TestScanStrings(t *testing.T) {
	got := scanAll(t, `{{ "a" 'b' }}`)
	assert.Equal(t, token.STRING, got[1].tok)
	assert.Equal(t, "a", got[1].lit)
	assert.Equal(t, token.STRING, got[2].tok)
	assert.Equal(t, "b", got[2].lit)
}

func TestScanOperators(t *testing.T) {
	got := scanAll(t, "{{ a == b != c <= d >= e // f ** g }}")
	var toks []token.Token
	for _, r := range got {
		toks = append(toks, r.tok)
	}
	assert.Contains(t, toks, token.EQ)
	assert.Contains(t, toks, token.NE)
	assert.Contains(t, toks, token.LE)
	assert.Contains(t, toks, token.GE)
	assert.Contains(t, toks, token.FLOORQUO)
	assert.Contains(t, toks, token.POW)
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	var s lexer.Scanner
	var errs []string
	s.Init([]byte(`{{ "abc }}`), func(pos token.Pos, msg string) {
		errs = append(errs, msg)
	})
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	assert.NotEmpty(t, errs)
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, token.IsKeyword("if"))
	assert.True(t, token.IsKeyword("endfor"))
	assert.False(t, token.IsKeyword("x"))
}
