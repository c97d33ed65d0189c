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

// Package infer's public surface: the entry points a caller uses to run
// inference over an already-parsed template, or over raw source text
// via tmpl/lexer and tmpl/parser.
package infer

import (
	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/parser"
	"github.com/formshape/formshape/tmpl/shape"
)

// Infer runs the full bidirectional inference pass (§2, §4) over an
// already-parsed template and returns the Dictionary describing every
// free variable it reads. Every include/import/extends resolves to "no
// constraint" (§7), since no Loader is given.
func Infer(tmpl *ast.Template, cfg Config) (*shape.Structural, error) {
	return InferWithLoader(tmpl, cfg, NopLoader)
}

// InferWithLoader is Infer with a caller-supplied Loader so
// include/import/extends can pull in the templates they reference (§5).
func InferWithLoader(tmpl *ast.Template, cfg Config, loader Loader) (*shape.Structural, error) {
	e := newEngine(cfg, loader)
	if err := e.visitTemplate(tmpl); err != nil {
		return nil, err
	}
	return e.ctx, nil
}

// InferSource parses source with this module's own lexer/parser before
// running inference, for callers who only have template text rather
// than an already-built AST.
func InferSource(name, source string, cfg Config, loader Loader) (*shape.Structural, error) {
	tmpl, err := parser.ParseTemplate(name, source)
	if err != nil {
		return nil, err
	}
	return InferWithLoader(tmpl, cfg, loader)
}
