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

// Package infer implements the bidirectional expression visitor (§4.E),
// the scope-threading statement visitor (§4.F), the macro IR (§9), and
// the public API / entry point (§4.G half; the JSON Schema half lives in
// encoding/jsonschema).
package infer

import (
	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/scope"
	"github.com/formshape/formshape/tmpl/shape"
)

// Loader resolves an `include`/`import`/`extends` template path to its
// parsed AST (§4.F, §5 "a caller-supplied loader"). A loader returning
// ok=false contributes no constraint (§7): it is not itself an error.
type Loader interface {
	Load(path string) (*ast.Template, bool)
}

type nopLoader struct{}

func (nopLoader) Load(string) (*ast.Template, bool) { return nil, false }

// NopLoader is a Loader that never resolves anything; every
// include/import/extends in the template is treated as producing no
// constraint. Useful when a caller only cares about a single template in
// isolation.
var NopLoader Loader = nopLoader{}

// macroDecl is the small IR macros need alongside Structural (§9
// "Macros require a small IR separate from Structural"): a parameter
// list plus the body's free-var fragment, generalized over call-site
// argument structures.
type macroDecl struct {
	name        string
	paramNames  []string
	paramShapes []*shape.Structural // the shape the body required of each param
	freeVars    *shape.Structural   // Dictionary of names free in the body, excluding params
}

// engine holds all mutable state threaded through a single Infer call.
type engine struct {
	cfg    Config
	loader Loader

	// local is the push/pop frame stack for names bound by for/if/with/
	// macro-params/set/import (§4.C); for and if bodies additionally run
	// inside branch() so their effect on ctx is weak-joined. It never
	// itself becomes part of the inferred context.
	local *scope.Scope

	// ctx is the Dictionary-in-progress of free (external) variables —
	// what §2 calls "the running scope" at the top level. Every Name
	// read that misses `local` merges into ctx instead.
	ctx *shape.Structural

	macros map[string]*macroDecl

	// blockOverrides maps a block name to the child template's override
	// body, consulted while walking a parent template reached via
	// `extends` (§4.F "Block / Extends").
	blockOverrides map[string][]ast.Stmt

	// includeStack guards against infinite include/extends recursion
	// through the loader.
	includeStack map[string]bool
}

func newEngine(cfg Config, loader Loader) *engine {
	if loader == nil {
		loader = NopLoader
	}
	return &engine{
		cfg:          cfg,
		loader:       loader,
		local:        scope.New(),
		ctx:          shape.NewDictionary("", nil, map[string]*shape.Structural{}),
		macros:       map[string]*macroDecl{},
		includeStack: map[string]bool{},
	}
}

func (e *engine) shapeOpts() shape.Options {
	return shape.Options{PackageObjectCanBeExtended: e.cfg.PackageObjectCanBeExtended}
}

// recordUsage merges expected into whatever name currently resolves to:
// a local binding if one exists (shadowing a free variable of the same
// name), otherwise the running free-variable context. It returns the
// merged shape the name now has.
func (e *engine) recordUsage(name string, expected *shape.Structural) (*shape.Structural, error) {
	if bound, ok := e.local.Lookup(name); ok {
		merged, err := shape.Merge(bound, expected, shape.Strict, e.shapeOpts())
		if err != nil {
			return nil, err
		}
		e.local.RebindOuter(name, merged)
		return merged, nil
	}

	existing, _ := e.ctx.Field(name)
	merged, err := shape.Merge(existing, expected, shape.Strict, e.shapeOpts())
	if err != nil {
		return nil, err
	}
	e.ctx = e.ctx.WithField(name, merged)
	return merged, nil
}

// weaken re-records name with Required forced false, used by `is
// defined`/`is undefined` and the `default` filter. It is a no-op for
// any expression more complex than a bare name, since the weakening
// only has a clear target when the node being tested/defaulted IS the
// variable (the common template idiom `x is defined`, `x|default(...)`).
func (e *engine) weaken(x ast.Expr) {
	name, ok := x.(*ast.Name)
	if !ok {
		return
	}
	if bound, ok := e.local.Lookup(name.Value); ok {
		clone := *bound
		clone.Required = false
		e.local.RebindOuter(name.Value, &clone)
		return
	}
	if existing, ok := e.ctx.Field(name.Value); ok {
		clone := *existing
		clone.Required = false
		clone.UsedWithDefault = true
		e.ctx = e.ctx.WithField(name.Value, &clone)
	}
}

// branch runs fn against a snapshot of the engine's free-variable
// context and returns the context fn produced, restoring e.ctx
// afterward so the caller can fold several alternative branches
// together (if/elif/else, for body/else, conditional expressions). Only
// ctx is snapshotted; `local` bindings a branch introduces are expected
// to be cleaned up by the caller via local.Push/Pop around fn.
func (e *engine) branch(fn func() error) (*shape.Structural, error) {
	pre := e.ctx
	err := fn()
	result := e.ctx
	e.ctx = pre
	return result, err
}

// joinWeak folds branch outcomes against the pre-branch context using
// weak merge (§4.B, §4.F): a field present in only some branches
// becomes optional.
func (e *engine) joinWeak(pre *shape.Structural, branches ...*shape.Structural) (*shape.Structural, error) {
	acc := pre
	for _, b := range branches {
		merged, err := shape.Merge(acc, b, shape.Weak, e.shapeOpts())
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

func condExpected(cfg Config) *shape.Structural {
	if cfg.BooleanConditions {
		return shape.NewScalar("")
	}
	return shape.NewUnknown("")
}
