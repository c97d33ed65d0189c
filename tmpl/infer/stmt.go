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

// visitStmts visits an ordered statement list under the current scope
// and context without opening a new local frame; callers that need
// scope hygiene (for/if branches, with, macro bodies) push/pop around
// the call themselves.
func (e *engine) visitStmts(list []ast.Stmt) error {
	for _, s := range list {
		if err := e.visitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) visitStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Template:
		return e.visitTemplate(n)
	case *ast.Output:
		_, err := e.visitExpr(n.X, shape.NewScalar(""))
		return err
	case *ast.RawText, *ast.Comment:
		return nil
	case *ast.IfStmt:
		return e.visitIf(n)
	case *ast.ForStmt:
		return e.visitFor(n)
	case *ast.SetStmt:
		return e.visitSet(n)
	case *ast.SetBlockStmt:
		return e.visitSetBlock(n)
	case *ast.WithStmt:
		return e.visitWith(n)
	case *ast.MacroStmt:
		return e.visitMacroDef(n)
	case *ast.FilterBlock:
		return e.visitFilterBlock(n)
	case *ast.IncludeStmt:
		return e.visitInclude(n)
	case *ast.ImportStmt:
		return e.visitImport(n)
	case *ast.FromImportStmt:
		return e.visitFromImport(n)
	case *ast.BlockStmt:
		return e.visitBlock(n)
	case *ast.ExtendsStmt:
		return e.visitExtends(n)
	default:
		return nil
	}
}

// visitTemplate walks the root, first collecting block-override bodies
// if this template itself extends a parent (§4.F "Block / Extends": a
// child's block body supplies the constraint, not the parent's
// default).
func (e *engine) visitTemplate(t *ast.Template) error {
	e.collectBlocks(t.List)
	return e.visitStmts(t.List)
}

// collectBlocks registers every top-level block's body as an override
// candidate before the template is walked, so that when an `extends`
// statement pulls in a parent template, the parent's matching
// `{% block %}` tags see this template's body instead of their own
// default (§4.F "Block / Extends").
func (e *engine) collectBlocks(list []ast.Stmt) {
	for _, s := range list {
		if b, ok := s.(*ast.BlockStmt); ok {
			if e.blockOverrides == nil {
				e.blockOverrides = map[string][]ast.Stmt{}
			}
			if _, seen := e.blockOverrides[b.Name]; !seen {
				e.blockOverrides[b.Name] = b.Body
			}
		}
	}
}

// visitIf folds every branch's context with Weak merge (§4.B rule 6,
// §4.F): each arm (including an absent else, modeled as an empty
// branch) is explored from the same pre-if snapshot and joined.
func (e *engine) visitIf(n *ast.IfStmt) error {
	pre := e.ctx
	branchCtxs := make([]*shape.Structural, 0, len(n.Branches)+1)
	hasElse := false

	for _, br := range n.Branches {
		if br.Cond == nil {
			hasElse = true
		}
		bctx, err := e.branch(func() error {
			if br.Cond != nil {
				if _, err := e.visitExpr(br.Cond, condExpected(e.cfg)); err != nil {
					return err
				}
			}
			e.local.Push()
			defer e.local.Pop()
			return e.visitStmts(br.Body)
		})
		if err != nil {
			return err
		}
		branchCtxs = append(branchCtxs, bctx)
	}
	if !hasElse {
		branchCtxs = append(branchCtxs, pre)
	}

	joined, err := e.joinWeak(pre, branchCtxs...)
	if err != nil {
		return err
	}
	e.ctx = joined
	return nil
}

// visitFor handles `{% for target in iter %}body{% else %}...{% endfor %}`
// (§4.F, §9 Open Question (a) resolution: the per-name expected element
// structure is built before the iterable is visited so the existing
// merge rules reproduce the documented tuple-unpack behavior with no
// special-casing).
func (e *engine) visitFor(n *ast.ForStmt) error {
	pre := e.ctx

	var elemExpected *shape.Structural
	if len(n.Target.Names) == 1 {
		elemExpected = shape.NewUnknown(n.Target.Names[0])
	} else {
		items := make([]*shape.Structural, len(n.Target.Names))
		for i, name := range n.Target.Names {
			items[i] = shape.NewUnknown(name)
		}
		elemExpected = shape.NewTuple("", items)
	}

	iterExpected := shape.NewList("", elemExpected, n.Pos().Line)
	if _, err := e.visitExpr(n.Iter, iterExpected); err != nil {
		return err
	}

	bodyCtx, err := e.branch(func() error {
		e.local.Push()
		defer e.local.Pop()
		e.bindForTarget(n.Target, elemExpected)
		e.local.Bind("loop", loopVarShape(elemExpected, n.Pos().Line))
		if err := e.visitStmts(n.Body); err != nil {
			return err
		}
		// Fold the target's final binding back into the iterable's element.
		final := make([]*shape.Structural, len(n.Target.Names))
		for i, name := range n.Target.Names {
			final[i], _ = e.local.Lookup(name)
		}
		elem := shape.NewTuple("", final)
		if len(final) == 1 {
			elem = final[0]
		}
		_, err := e.visitExpr(n.Iter, shape.NewList("", elem, n.Pos().Line))
		return err
	})
	if err != nil {
		return err
	}

	branches := []*shape.Structural{bodyCtx}
	if n.Else != nil {
		elseCtx, err := e.branch(func() error {
			e.local.Push()
			defer e.local.Pop()
			return e.visitStmts(n.Else)
		})
		if err != nil {
			return err
		}
		branches = append(branches, elseCtx)
	} else {
		branches = append(branches, pre)
	}

	joined, err := e.joinWeak(pre, branches...)
	if err != nil {
		return err
	}
	e.ctx = joined
	return nil
}

func (e *engine) bindForTarget(t ast.ForTarget, elemExpected *shape.Structural) {
	if len(t.Names) == 1 {
		e.local.Bind(t.Names[0], elemExpected)
		return
	}
	for i, name := range t.Names {
		var item *shape.Structural
		if elemExpected.Kind == shape.Tuple && i < len(elemExpected.Items) {
			item = elemExpected.Items[i]
		} else {
			item = shape.NewUnknown(name)
		}
		e.local.Bind(name, item)
	}
}

// loopVarShape describes the `loop` helper object the template engine
// injects inside a for-body; its fields are always present so they
// never surface as free variables themselves. previtem/nextitem share
// elem's structure (the loop variable's own inferred shape) but are
// never Required, since they're absent on the first/last iteration
// respectively.
func loopVarShape(elem *shape.Structural, line int) *shape.Structural {
	scalarField := func(label string) *shape.Structural { return shape.NewScalar(label) }
	fields := map[string]*shape.Structural{
		"index":     scalarField("index"),
		"index0":    scalarField("index0"),
		"revindex":  scalarField("revindex"),
		"revindex0": scalarField("revindex0"),
		"first":     scalarField("first"),
		"last":      scalarField("last"),
		"length":    scalarField("length"),
		"depth":     scalarField("depth"),
		"cycle":     scalarField("cycle"),
		"previtem":  elementPseudoVar("previtem", elem, line),
		"nextitem":  elementPseudoVar("nextitem", elem, line),
	}
	order := []string{
		"index", "index0", "revindex", "revindex0", "first", "last", "length",
		"depth", "cycle", "previtem", "nextitem",
	}
	return shape.NewDictionary("loop", order, fields)
}

// elementPseudoVar builds loop.previtem/loop.nextitem: a copy of the
// loop element's own shape with Required forced false.
func elementPseudoVar(label string, elem *shape.Structural, line int) *shape.Structural {
	clone := *elem
	clone.Label = label
	clone.Required = false
	clone.Linenos = append(append([]int(nil), elem.Linenos...), line)
	return &clone
}

func (e *engine) visitSet(n *ast.SetStmt) error {
	v, err := e.visitExpr(n.Value, shape.NewUnknown(n.Name))
	if err != nil {
		return err
	}
	e.bindSet(n.Name, v)
	return nil
}

func (e *engine) visitSetBlock(n *ast.SetBlockStmt) error {
	e.local.Push()
	if err := e.visitStmts(n.Body); err != nil {
		e.local.Pop()
		return err
	}
	e.local.Pop()
	e.bindSet(n.Name, shape.NewScalar(n.Name, n.Pos().Line))
	return nil
}

// bindSet implements write-before-read shadowing (§4.C, §8): a `set`
// always introduces or overwrites a LOCAL binding, even if a
// free-variable of the same name was already recorded — it never folds
// into e.ctx.
func (e *engine) bindSet(name string, v *shape.Structural) {
	if !e.local.RebindOuter(name, v) {
		e.local.Bind(name, v)
	}
}

func (e *engine) visitWith(n *ast.WithStmt) error {
	e.local.Push()
	defer e.local.Pop()
	for _, b := range n.Bindings {
		v, err := e.visitExpr(b.Value, shape.NewUnknown(b.Name))
		if err != nil {
			return err
		}
		e.local.Bind(b.Name, v)
	}
	return e.visitStmts(n.Body)
}

func (e *engine) visitFilterBlock(n *ast.FilterBlock) error {
	return e.visitStmts(n.Body)
}

// visitInclude resolves the included template through the loader only
// when the path is a literal (§4.F: a non-literal include target
// contributes no cross-template constraint). The included template's
// free variables merge Strict into the caller's ctx, since an include
// always executes unconditionally at that point.
func (e *engine) visitInclude(n *ast.IncludeStmt) error {
	path, ok := literalPath(n.Template)
	if !ok {
		return nil
	}
	return e.mergeIncluded(path)
}

func (e *engine) mergeIncluded(path string) error {
	if e.includeStack[path] {
		return nil
	}
	tmpl, ok := e.loader.Load(path)
	if !ok {
		return nil
	}
	e.includeStack[path] = true
	defer delete(e.includeStack, path)

	sub := newEngine(e.cfg, e.loader)
	sub.includeStack = e.includeStack
	if err := sub.visitTemplate(tmpl); err != nil {
		return err
	}
	merged, err := shape.Merge(e.ctx, sub.ctx, shape.Strict, e.shapeOpts())
	if err != nil {
		return err
	}
	e.ctx = merged
	return nil
}

// visitImport and visitFromImport analyze the target module in
// isolation (its free variables are its own macros' parameters, not
// this template's) and only bind the module/imported names locally;
// nothing from the imported module's own free-variable context merges
// into the caller's ctx (§4.F "Import").
func (e *engine) visitImport(n *ast.ImportStmt) error {
	path, ok := literalPath(n.Template)
	if !ok {
		e.local.Bind(n.As, shape.NewDictionary(n.As, nil, map[string]*shape.Structural{}))
		return nil
	}
	mod := e.analyzeModule(path)
	e.local.Bind(n.As, mod)
	return nil
}

func (e *engine) visitFromImport(n *ast.FromImportStmt) error {
	path, ok := literalPath(n.Template)
	var mod *shape.Structural
	if ok {
		mod = e.analyzeModule(path)
	} else {
		mod = shape.NewDictionary("", nil, map[string]*shape.Structural{})
	}
	for _, im := range n.Names {
		if field, ok := mod.Field(im.Name); ok {
			e.local.Bind(im.As, field)
		} else {
			e.local.Bind(im.As, shape.NewUnknown(im.As))
		}
	}
	return nil
}

// analyzeModule loads path and returns a Dictionary of its top-level
// macro names, each bound to an Unknown placeholder (call-site
// substitution for imported macros is out of scope: this module only
// analyzes macros defined in the template being inferred directly;
// §9's macro IR applies to same-template calls).
func (e *engine) analyzeModule(path string) *shape.Structural {
	tmpl, ok := e.loader.Load(path)
	if !ok {
		return shape.NewDictionary("", nil, map[string]*shape.Structural{})
	}
	fields := map[string]*shape.Structural{}
	var order []string
	for _, s := range tmpl.List {
		if m, ok := s.(*ast.MacroStmt); ok {
			fields[m.Name] = shape.NewUnknown(m.Name)
			order = append(order, m.Name)
		}
	}
	return shape.NewDictionary(path, order, fields)
}

// visitBlock consults blockOverrides for a same-named override supplied
// by a child template (§4.F "Block / Extends"); absent an override it
// falls back to its own default body.
func (e *engine) visitBlock(n *ast.BlockStmt) error {
	if override, ok := e.blockOverrides[n.Name]; ok {
		return e.visitStmts(override)
	}
	return e.visitStmts(n.Body)
}

// visitExtends merges the parent template's free variables into this
// one, having first registered this template's own top-level block
// bodies as overrides the parent's matching `{% block %}` tags should
// consult instead of their own defaults.
func (e *engine) visitExtends(n *ast.ExtendsStmt) error {
	path, ok := literalPath(n.Template)
	if !ok {
		return nil
	}
	if e.includeStack[path] {
		return nil
	}
	parent, ok := e.loader.Load(path)
	if !ok {
		return nil
	}
	e.includeStack[path] = true
	defer delete(e.includeStack, path)

	sub := newEngine(e.cfg, e.loader)
	sub.includeStack = e.includeStack
	sub.blockOverrides = e.blockOverrides
	if err := sub.visitTemplate(parent); err != nil {
		return err
	}
	merged, err := shape.Merge(e.ctx, sub.ctx, shape.Strict, e.shapeOpts())
	if err != nil {
		return err
	}
	e.ctx = merged
	return nil
}

func literalPath(x ast.Expr) (string, bool) {
	s, ok := x.(*ast.StringLit)
	if !ok {
		return "", false
	}
	return s.Value, true
}
