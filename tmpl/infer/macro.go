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

package infer

import (
	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/shape"
)

// visitMacroDef analyzes a macro body in full isolation (§9 "Macros
// require a small IR separate from Structural"): a fresh engine sharing
// only configuration and the loader, so that names the body reads
// resolve either to a parameter (bound locally, never surfacing) or to
// the macro's own free-variable fragment — never polluting the
// enclosing template's ctx at definition time. The fragment is merged
// into the caller's ctx only at each call site.
func (e *engine) visitMacroDef(n *ast.MacroStmt) error {
	sub := newEngine(e.cfg, e.loader)
	sub.includeStack = e.includeStack
	sub.blockOverrides = e.blockOverrides
	sub.macros = e.macros // a macro may call an earlier sibling macro

	paramShapes := make([]*shape.Structural, len(n.Params))
	sub.local.Push()
	for i, p := range n.Params {
		ps := shape.NewUnknown(p.Name)
		if p.Default != nil {
			dv, err := sub.visitExpr(p.Default, shape.NewUnknown(p.Name))
			if err != nil {
				return err
			}
			ps = dv
			ps.Required = false
		}
		paramShapes[i] = ps
		sub.local.Bind(p.Name, ps)
	}

	if err := sub.visitStmts(n.Body); err != nil {
		return err
	}
	// The body's own Name visits rebind each param in sub.local as they
	// accumulate constraints (recordUsage merges into the local binding,
	// not the paramShapes slice captured above); re-read each param's
	// final bound shape before popping so paramShapes reflects what the
	// body actually required of it.
	for i, p := range n.Params {
		if final, ok := sub.local.Lookup(p.Name); ok {
			paramShapes[i] = final
		}
	}
	sub.local.Pop()

	decl := &macroDecl{
		name:        n.Name,
		paramShapes: paramShapes,
		freeVars:    sub.ctx,
	}
	for _, p := range n.Params {
		decl.paramNames = append(decl.paramNames, p.Name)
	}
	e.macros[n.Name] = decl
	return nil
}

// applyMacro merges a macro's free-variable fragment into the caller's
// ctx at each call site (§9), and merges each argument expression
// against the parameter's shape recorded at definition time so the
// argument's own free variables pick up that constraint too.
func (e *engine) applyMacro(m *macroDecl, call *ast.CallExpr, expected *shape.Structural) (*shape.Structural, error) {
	merged, err := shape.Merge(e.ctx, m.freeVars, shape.Strict, e.shapeOpts())
	if err != nil {
		return nil, err
	}
	e.ctx = merged

	for i, arg := range call.Args {
		paramExpected := shape.NewUnknown("")
		if i < len(m.paramShapes) {
			paramExpected = m.paramShapes[i]
		}
		if _, err := e.visitExpr(arg, paramExpected); err != nil {
			return nil, err
		}
	}
	for name, arg := range call.Kwargs {
		paramExpected := shape.NewUnknown(name)
		for i, pn := range m.paramNames {
			if pn == name && i < len(m.paramShapes) {
				paramExpected = m.paramShapes[i]
				break
			}
		}
		if _, err := e.visitExpr(arg, paramExpected); err != nil {
			return nil, err
		}
	}

	return shape.NewUnknown("", call.Pos().Line), nil
}
