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
	"strconv"

	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/errors"
	"github.com/formshape/formshape/tmpl/registry"
	"github.com/formshape/formshape/tmpl/shape"
)

// visitExpr is the bidirectional expression visitor (§4.E): expected
// flows down from the surrounding context (an Output statement, an
// operand position, a filter's input requirement), and the Structural
// the expression itself resolves to flows back up so a caller can merge
// it against its own expectation. Every Name reached, directly or
// through an Attribute/Subscript chain, is recorded via recordUsage/
// local binding lookup as a side effect.
func (e *engine) visitExpr(x ast.Expr, expected *shape.Structural) (*shape.Structural, error) {
	if expected == nil {
		expected = shape.NewUnknown("")
	}
	switch n := x.(type) {
	case *ast.BadExpr:
		return shape.NewUnknown(""), nil

	case *ast.NoneLit:
		return shape.NewScalar("", n.Pos().Line), nil

	case *ast.BoolLit:
		return shape.NewConstantScalar("", n.Value, n.Pos().Line), nil

	case *ast.NumberLit:
		v, _ := strconv.ParseFloat(n.Value, 64)
		return shape.NewConstantScalar("", v, n.Pos().Line), nil

	case *ast.StringLit:
		return shape.NewConstantScalar("", n.Value, n.Pos().Line), nil

	case *ast.ListLit:
		return e.visitListLit(n, expected)

	case *ast.DictLit:
		return e.visitDictLit(n, expected)

	case *ast.Name:
		return e.visitName(n, expected)

	case *ast.Attribute:
		return e.visitAttribute(n, expected)

	case *ast.Subscript:
		return e.visitSubscript(n, expected)

	case *ast.FilterExpr:
		return e.visitFilter(n, expected)

	case *ast.TestExpr:
		return e.visitTest(n, expected)

	case *ast.CallExpr:
		return e.visitCall(n, expected)

	case *ast.CondExpr:
		return e.visitCond(n, expected)

	case *ast.BinaryExpr:
		return e.visitBinary(n, expected)

	case *ast.UnaryExpr:
		return e.visitUnary(n, expected)

	case *ast.ConcatExpr:
		if _, err := e.visitExpr(n.X, shape.NewScalar("")); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Y, shape.NewScalar("")); err != nil {
			return nil, err
		}
		return shape.NewScalar("", n.Pos().Line), nil

	case *ast.ParenExpr:
		return e.visitExpr(n.X, expected)

	default:
		return nil, errors.NewUnexpectedExpression(x.Pos(), "unsupported expression node")
	}
}

// visitListLit treats a bracketed literal as a Tuple (§3: "a bracketed
// literal visits as a Tuple"), visiting each element with Unknown
// expected unless the literal itself is being checked against an
// explicit List expectation, in which case every element shares that
// element expectation instead.
func (e *engine) visitListLit(n *ast.ListLit, expected *shape.Structural) (*shape.Structural, error) {
	var elemExpected *shape.Structural
	if expected != nil && expected.Kind == shape.List {
		elemExpected = expected.Element
	}
	items := make([]*shape.Structural, len(n.Elts))
	for i, elt := range n.Elts {
		ex := elemExpected
		if ex == nil {
			ex = shape.NewUnknown("")
		}
		v, err := e.visitExpr(elt, ex)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return shape.NewTuple("", items, n.Pos().Line), nil
}

func (e *engine) visitDictLit(n *ast.DictLit, expected *shape.Structural) (*shape.Structural, error) {
	fields := make(map[string]*shape.Structural, len(n.Keys))
	order := make([]string, 0, len(n.Keys))
	for i, k := range n.Keys {
		v, err := e.visitExpr(n.Values[i], shape.NewUnknown(k))
		if err != nil {
			return nil, err
		}
		fields[k] = v
		order = append(order, k)
	}
	return shape.NewDictionary("", order, fields, n.Pos().Line), nil
}

// visitName is the leaf that actually threads expected into the scope/
// free-variable system (§4.A, §4.C).
func (e *engine) visitName(n *ast.Name, expected *shape.Structural) (*shape.Structural, error) {
	ex := cloneLabeled(expected, n.Value, n.Pos().Line)
	return e.recordUsage(n.Value, ex)
}

// visitAttribute propagates a Dictionary-with-one-known-field
// expectation down to X, then returns expected (or Unknown) as the
// attribute access's own value (§4.E "Attribute / Subscript").
func (e *engine) visitAttribute(n *ast.Attribute, expected *shape.Structural) (*shape.Structural, error) {
	inner := shape.NewDictionary(n.Field, []string{n.Field}, map[string]*shape.Structural{
		n.Field: cloneLabeled(expected, n.Field, n.Pos().Line),
	}, n.Pos().Line)
	if _, err := e.visitExpr(n.X, inner); err != nil {
		return nil, err
	}
	return expected, nil
}

func (e *engine) visitSubscript(n *ast.Subscript, expected *shape.Structural) (*shape.Structural, error) {
	switch idx := n.Index.(type) {
	case *ast.NumberLit:
		if idx.IsInt {
			if err := e.visitIndexedContainer(n, e.cfg.TypeOfVariableIndexedWithIntegerType, expected); err != nil {
				return nil, err
			}
			return expected, nil
		}
	case *ast.StringLit:
		inner := shape.NewDictionary(idx.Value, []string{idx.Value}, map[string]*shape.Structural{
			idx.Value: cloneLabeled(expected, idx.Value, n.Pos().Line),
		}, n.Pos().Line)
		if _, err := e.visitExpr(n.X, inner); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Index, shape.NewScalar("")); err != nil {
			return nil, err
		}
		return expected, nil
	}
	if _, err := e.visitExpr(n.Index, shape.NewUnknown("")); err != nil {
		return nil, err
	}
	if err := e.visitIndexedContainer(n, e.cfg.TypeOfVariableIndexedWithVariableType, expected); err != nil {
		return nil, err
	}
	return expected, nil
}

func (e *engine) visitIndexedContainer(n *ast.Subscript, kind IndexKind, expected *shape.Structural) error {
	var inner *shape.Structural
	switch kind {
	case IndexList:
		inner = shape.NewList("", expected, n.Pos().Line)
	case IndexTuple, IndexDict, IndexAny:
		inner = shape.NewUnknown("", n.Pos().Line)
	default:
		inner = shape.NewUnknown("", n.Pos().Line)
	}
	_, err := e.visitExpr(n.X, inner)
	return err
}

// visitFilter consults the registry (§4.D) to decide what structure the
// filtered expression must have and what the filter's result looks
// like. Unknown filters degrade gracefully: the input is visited with
// Unknown expected and the result is Unknown too.
func (e *engine) visitFilter(n *ast.FilterExpr, expected *shape.Structural) (*shape.Structural, error) {
	sig, ok := registry.LookupFilter(n.Name, e.cfg.CustomFilters)
	if !ok {
		if e.cfg.RaiseOnInvalidFilterArgument {
			return nil, errors.NewInvalidExpression(n.Pos(), "unknown filter %q", n.Name)
		}
		if _, err := e.visitExpr(n.X, shape.NewUnknown("")); err != nil {
			return nil, err
		}
		for _, a := range n.Args {
			if _, err := e.visitExpr(a, shape.NewUnknown("")); err != nil {
				return nil, err
			}
		}
		for _, a := range n.Kwargs {
			if _, err := e.visitExpr(a, shape.NewUnknown("")); err != nil {
				return nil, err
			}
		}
		return shape.NewUnknown("", n.Pos().Line), nil
	}

	inputExpected := inputExpectedFor(sig, expected, n.Pos().Line)
	inputVal, err := e.visitExpr(n.X, inputExpected)
	if err != nil {
		return nil, err
	}

	for i, a := range n.Args {
		argExpected := shape.NewUnknown("")
		if i < len(sig.Args) {
			argExpected = expectedForKind(sig.Args[i], n.Pos().Line)
		}
		if _, err := e.visitExpr(a, argExpected); err != nil {
			return nil, err
		}
	}
	for name, a := range n.Kwargs {
		kind, known := sig.Kwargs[name]
		if !known && sig.Kwargs != nil && e.cfg.RaiseOnInvalidFilterArgument {
			return nil, errors.NewInvalidExpression(n.Pos(), "unknown argument %q to filter %q", name, n.Name)
		}
		if _, err := e.visitExpr(a, expectedForKind(kind, n.Pos().Line)); err != nil {
			return nil, err
		}
	}

	if n.Name == "default" {
		e.weaken(n.X)
	}

	return filterResult(sig, inputVal, n.Pos().Line), nil
}

// expectedForKind converts a registry-declared argument kind into the
// expected Structural visitExpr needs; shape.Unknown (the zero value,
// used for unconstrained slots) degrades to NewUnknown.
func expectedForKind(kind shape.Kind, line int) *shape.Structural {
	switch kind {
	case shape.Scalar:
		return shape.NewScalar("", line)
	case shape.List:
		return shape.NewList("", shape.NewUnknown(""), line)
	case shape.Dictionary:
		return shape.NewDictionary("", nil, map[string]*shape.Structural{}, line)
	default:
		return shape.NewUnknown("", line)
	}
}

// inputExpectedFor derives the expected structure for a filter's left
// operand from its registry signature, further constrained by the
// outer expected where the filter passes element or input structure
// straight through to its result (§4.E: "constrained further by outer
// expected (if the filter passes through element or input kind)").
func inputExpectedFor(sig registry.FilterSignature, outer *shape.Structural, line int) *shape.Structural {
	switch sig.InputKind {
	case shape.Scalar:
		return shape.NewScalar("", line)
	case shape.List:
		elem := shape.NewUnknown("")
		switch {
		case sig.ElementConstraint == shape.Scalar:
			elem = shape.NewScalar("")
		case sig.Result == registry.ResultElementOfInput:
			elem = outer
		}
		return shape.NewList("", elem, line)
	case shape.Dictionary:
		return shape.NewDictionary("", nil, map[string]*shape.Structural{}, line)
	default:
		switch sig.Result {
		case registry.ResultSameAsInput, registry.ResultSameWeakenRequired:
			return outer
		default:
			return shape.NewUnknown("", line)
		}
	}
}

func filterResult(sig registry.FilterSignature, input *shape.Structural, line int) *shape.Structural {
	switch sig.Result {
	case registry.ResultScalar:
		return shape.NewScalar("", line)
	case registry.ResultList:
		return shape.NewList("", shape.NewUnknown(""), line)
	case registry.ResultListOfList:
		return shape.NewList("", shape.NewList("", shape.NewUnknown("")), line)
	case registry.ResultSameAsInput:
		return input
	case registry.ResultElementOfInput:
		if input != nil && input.Kind == shape.List {
			return input.Element
		}
		return shape.NewUnknown("", line)
	case registry.ResultSameWeakenRequired:
		if input == nil {
			return shape.NewUnknown("", line)
		}
		clone := *input
		clone.Required = false
		clone.UsedWithDefault = true
		return &clone
	default:
		return shape.NewUnknown("", line)
	}
}

// visitTest handles `x is name(args)` (§4.D). A defined/undefined test
// weakens its operand's Required flag the same way default() does;
// other tests' kind hints are diagnostic-only and place no constraint on
// the operand, which is visited with Unknown expected.
func (e *engine) visitTest(n *ast.TestExpr, expected *shape.Structural) (*shape.Structural, error) {
	sig, ok := registry.LookupTest(n.Name)
	inner := shape.NewUnknown("", n.Pos().Line)
	if _, err := e.visitExpr(n.X, inner); err != nil {
		return nil, err
	}
	if ok && (sig.Hint == registry.HintDefinedness || sig.Hint == registry.HintUndefinedness) {
		e.weaken(n.X)
	}
	for _, a := range n.Args {
		if _, err := e.visitExpr(a, shape.NewUnknown("")); err != nil {
			return nil, err
		}
	}
	return shape.NewConstantScalar("", nil, n.Pos().Line), nil
}

// visitCall resolves a defined macro by substituting the free-var
// fragment recorded at its definition (§9); any other callee (a global
// function the template system itself provides, or one this module
// can't see the definition of) contributes no constraint beyond its
// arguments each being visited with Unknown expected.
func (e *engine) visitCall(n *ast.CallExpr, expected *shape.Structural) (*shape.Structural, error) {
	name, isName := n.Fun.(*ast.Name)
	if isName {
		if m, ok := e.macros[name.Value]; ok {
			return e.applyMacro(m, n, expected)
		}
	} else if _, err := e.visitExpr(n.Fun, shape.NewUnknown("")); err != nil {
		return nil, err
	}

	for _, a := range n.Args {
		if _, err := e.visitExpr(a, shape.NewUnknown("")); err != nil {
			return nil, err
		}
	}
	for _, a := range n.Kwargs {
		if _, err := e.visitExpr(a, shape.NewUnknown("")); err != nil {
			return nil, err
		}
	}
	return shape.NewUnknown("", n.Pos().Line), nil
}

// visitCond handles the ternary `a if cond else b` (§4.F's branch-join
// treatment applies here too, per §9 "Conditional expressions fold like
// if/else").
func (e *engine) visitCond(n *ast.CondExpr, expected *shape.Structural) (*shape.Structural, error) {
	if _, err := e.visitExpr(n.Cond, condExpected(e.cfg)); err != nil {
		return nil, err
	}

	pre := e.ctx
	var thenVal, elseVal *shape.Structural
	thenCtx, err := e.branch(func() error {
		var verr error
		thenVal, verr = e.visitExpr(n.Then, expected)
		return verr
	})
	if err != nil {
		return nil, err
	}
	elseCtx, err := e.branch(func() error {
		var verr error
		elseVal, verr = e.visitExpr(n.Else, expected)
		return verr
	})
	if err != nil {
		return nil, err
	}

	joined, err := e.joinWeak(pre, thenCtx, elseCtx)
	if err != nil {
		return nil, err
	}
	e.ctx = joined

	result, err := shape.Merge(thenVal, elseVal, shape.Weak, e.shapeOpts())
	if err != nil {
		return nil, err
	}
	return result, nil
}

// visitBinary implements §4.E's operator table: and/or visit their
// operands with the BOOLEAN_CONDITIONS expectation, comparisons and
// arithmetic force Scalar on both sides, `in`/`not in` expects its right
// operand to be a List, and every binary expression itself evaluates to
// Scalar.
func (e *engine) visitBinary(n *ast.BinaryExpr, expected *shape.Structural) (*shape.Structural, error) {
	switch n.Op {
	case ast.OpAnd, ast.OpOr:
		if _, err := e.visitExpr(n.X, condExpected(e.cfg)); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Y, condExpected(e.cfg)); err != nil {
			return nil, err
		}
	case ast.OpIn, ast.OpNotIn:
		if _, err := e.visitExpr(n.X, shape.NewUnknown("")); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Y, shape.NewList("", shape.NewUnknown(""))); err != nil {
			return nil, err
		}
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if _, err := e.visitExpr(n.X, shape.NewScalar("")); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Y, shape.NewScalar("")); err != nil {
			return nil, err
		}
	default: // arithmetic
		if _, err := e.visitExpr(n.X, shape.NewScalar("")); err != nil {
			return nil, err
		}
		if _, err := e.visitExpr(n.Y, shape.NewScalar("")); err != nil {
			return nil, err
		}
	}
	return shape.NewScalar("", n.Pos().Line), nil
}

func (e *engine) visitUnary(n *ast.UnaryExpr, expected *shape.Structural) (*shape.Structural, error) {
	inner := shape.NewScalar("", n.Pos().Line)
	if n.Op == ast.OpNot {
		inner = condExpected(e.cfg)
	}
	if _, err := e.visitExpr(n.X, inner); err != nil {
		return nil, err
	}
	return shape.NewScalar("", n.Pos().Line), nil
}

func cloneLabeled(s *shape.Structural, label string, line int) *shape.Structural {
	if s == nil {
		return shape.NewUnknown(label, line)
	}
	clone := *s
	if clone.Label == "" {
		clone.Label = label
	}
	clone.Linenos = append(append([]int(nil), s.Linenos...), line)
	return &clone
}
