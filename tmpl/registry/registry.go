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

// Package registry holds the declarative filter/test signature table
// (specification §4.D): a closed table consulted by the expression
// visitor (tmpl/infer) to decide what structure a filter's input/result
// must have, generalized from the teacher's own declarative builtin
// table (cuelang.org/go's generated cue/builtins table maps name →
// signature the same way).
package registry

import "github.com/formshape/formshape/tmpl/shape"

// ResultKind describes how a filter's result structure is derived.
type ResultKind int

const (
	// ResultScalar: result is always Scalar.
	ResultScalar ResultKind = iota
	// ResultList: result is a List whose element is Unknown.
	ResultList
	// ResultListOfList: result is a List(List(...)) (batch, slice).
	ResultListOfList
	// ResultSameAsInput: result has the same structure as the input.
	ResultSameAsInput
	// ResultElementOfInput: result is the element structure of a List
	// input (first, last, min, max, random).
	ResultElementOfInput
	// ResultSameWeakenRequired: result is the input structure with
	// Required forced false (default()).
	ResultSameWeakenRequired
	// ResultUnknown: an unknown filter degrades to this (§4.D
	// "Unknown filters degrade gracefully").
	ResultUnknown
)

// FilterSignature is one entry of the filter table.
type FilterSignature struct {
	Name string
	// InputKind is what the filter requires its left operand to be;
	// shape.Unknown means "any".
	InputKind shape.Kind
	// ElementConstraint constrains a List input's element kind (e.g.
	// sum requires numeric Scalar elements); shape.Unknown means no
	// constraint beyond InputKind.
	ElementConstraint shape.Kind
	Result            ResultKind
	// Args declares the expected kind of each positional argument, by
	// index (§4.D "argument kinds, for each positional/keyword arg").
	// A positional argument beyond len(Args) is visited with Unknown:
	// several filters here (reject, select) accept a variable further
	// tail of test-specific arguments this table doesn't try to type.
	Args []shape.Kind
	// Kwargs declares the expected kind of each recognized keyword
	// argument. A kwarg name absent from a non-nil Kwargs is invalid
	// (see Config.RaiseOnInvalidFilterArgument).
	Kwargs map[string]shape.Kind
}

// HasArgs reports whether the signature declares any positional or
// keyword argument kinds.
func (s FilterSignature) HasArgs() bool {
	return len(s.Args) > 0 || len(s.Kwargs) > 0
}

// Builtins is the required filter table from §4.D.
var Builtins = buildFilterTable()

func buildFilterTable() map[string]FilterSignature {
	entries := []FilterSignature{
		{Name: "abs", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "attr", InputKind: shape.Dictionary, Result: ResultUnknown,
			Args: []shape.Kind{shape.Scalar}},
		{Name: "batch", InputKind: shape.List, Result: ResultListOfList,
			Args: []shape.Kind{shape.Scalar, shape.Unknown}},
		{Name: "capitalize", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "center", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "default", Result: ResultSameWeakenRequired,
			Args:   []shape.Kind{shape.Unknown},
			Kwargs: map[string]shape.Kind{"boolean": shape.Scalar}},
		{Name: "dictsort", InputKind: shape.Dictionary, Result: ResultList},
		{Name: "escape", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "first", InputKind: shape.List, Result: ResultElementOfInput},
		{Name: "last", InputKind: shape.List, Result: ResultElementOfInput},
		{Name: "length", Result: ResultScalar},
		{Name: "list", Result: ResultList},
		{Name: "lower", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "upper", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "map", InputKind: shape.List, Result: ResultList,
			Args:   []shape.Kind{shape.Scalar},
			Kwargs: map[string]shape.Kind{"attribute": shape.Scalar, "default": shape.Unknown}},
		{Name: "join", InputKind: shape.List, ElementConstraint: shape.Scalar, Result: ResultScalar,
			Args:   []shape.Kind{shape.Scalar},
			Kwargs: map[string]shape.Kind{"attribute": shape.Scalar}},
		{Name: "min", InputKind: shape.List, Result: ResultElementOfInput},
		{Name: "max", InputKind: shape.List, Result: ResultElementOfInput},
		{Name: "random", InputKind: shape.List, Result: ResultElementOfInput},
		{Name: "reject", InputKind: shape.List, Result: ResultSameAsInput,
			Args: []shape.Kind{shape.Scalar}},
		{Name: "replace", InputKind: shape.Scalar, Result: ResultSameAsInput,
			Args: []shape.Kind{shape.Scalar, shape.Scalar, shape.Scalar}},
		{Name: "reverse", Result: ResultSameAsInput},
		{Name: "round", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "safe", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "select", InputKind: shape.List, Result: ResultSameAsInput,
			Args: []shape.Kind{shape.Scalar}},
		{Name: "slice", InputKind: shape.List, Result: ResultListOfList,
			Args: []shape.Kind{shape.Scalar, shape.Unknown}},
		{Name: "sort", InputKind: shape.List, Result: ResultSameAsInput},
		{Name: "string", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "striptags", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "sum", InputKind: shape.List, ElementConstraint: shape.Scalar, Result: ResultScalar},
		{Name: "title", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "trim", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "truncate", InputKind: shape.Scalar, Result: ResultSameAsInput,
			Args: []shape.Kind{shape.Scalar, shape.Scalar, shape.Scalar, shape.Scalar}},
		{Name: "unique", InputKind: shape.List, Result: ResultSameAsInput},
		{Name: "urlencode", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "urlize", InputKind: shape.Scalar, Result: ResultSameAsInput},
		{Name: "wordcount", InputKind: shape.Scalar, Result: ResultScalar},
		{Name: "wordwrap", InputKind: shape.Scalar, Result: ResultSameAsInput,
			Args: []shape.Kind{shape.Scalar, shape.Scalar, shape.Scalar}},
		{Name: "xmlattr", InputKind: shape.Dictionary, Result: ResultScalar},
	}
	m := make(map[string]FilterSignature, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}

// LookupFilter resolves name against the builtin table, overlaid with
// any CUSTOM_FILTERS from Config (§6 "additive to the builtin
// registry"). Unknown names report ok=false so the caller can apply the
// graceful-degradation path from §4.D.
func LookupFilter(name string, custom map[string]FilterSignature) (FilterSignature, bool) {
	if custom != nil {
		if sig, ok := custom[name]; ok {
			return sig, true
		}
	}
	sig, ok := Builtins[name]
	return sig, ok
}

// TestKindHint is a weak diagnostic-only kind hint a test contributes
// about its operand (e.g. `is string` hints Scalar); it never
// constrains the type lattice the way a filter's InputKind does.
type TestKindHint int

const (
	HintNone TestKindHint = iota
	HintDefinedness
	HintUndefinedness
	HintScalar
	HintSequence
	HintMapping
)

// TestSignature is one entry of the test table (§4.D).
type TestSignature struct {
	Name string
	Hint TestKindHint
}

// Tests is the required test table from §4.D.
var Tests = buildTestTable()

func buildTestTable() map[string]TestSignature {
	entries := []TestSignature{
		{Name: "defined", Hint: HintDefinedness},
		{Name: "undefined", Hint: HintUndefinedness},
		{Name: "none", Hint: HintNone},
		{Name: "number", Hint: HintScalar},
		{Name: "string", Hint: HintScalar},
		{Name: "sequence", Hint: HintSequence},
		{Name: "mapping", Hint: HintMapping},
		{Name: "iterable", Hint: HintSequence},
		{Name: "lower", Hint: HintScalar},
		{Name: "upper", Hint: HintScalar},
		{Name: "sameas", Hint: HintNone},
		{Name: "divisibleby", Hint: HintScalar},
	}
	m := make(map[string]TestSignature, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}

// LookupTest resolves a test name. ok is false for an unrecognized
// test, which the visitor treats the same as any other unknown
// construct degrading to Scalar with no extra hint.
func LookupTest(name string) (TestSignature, bool) {
	sig, ok := Tests[name]
	return sig, ok
}
