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

import "github.com/formshape/formshape/tmpl/registry"

// IndexKind selects the structural kind a subscript expression `x[k]`
// assumes for `x` when `k` cannot be resolved to a field name (§6).
type IndexKind int

const (
	// IndexList: `x[k]` assumes x is a List (the default).
	IndexList IndexKind = iota
	// IndexTuple: `x[k]` assumes x is a Tuple; since the slot can't be
	// determined statically this degrades to IndexAny in practice.
	IndexTuple
	// IndexDict: `x[k]` assumes x is a Dictionary; since the field name
	// can't be determined statically this degrades to IndexAny too.
	IndexDict
	// IndexAny: no kind is assumed; x is visited with expected Unknown.
	IndexAny
)

// Config holds the options enumerated in §6, all optional.
type Config struct {
	// TypeOfVariableIndexedWithIntegerType: kind attributed to `x[0]`
	// when 0 is an int literal. Default IndexList.
	TypeOfVariableIndexedWithIntegerType IndexKind
	// TypeOfVariableIndexedWithVariableType: same, when the index is
	// itself a variable. Default IndexAny (spec: "expected = Unknown
	// unless the configuration pins it").
	TypeOfVariableIndexedWithVariableType IndexKind
	// PackageObjectCanBeExtended: a name reused as both scalar and
	// dictionary is treated as dictionary-extending-scalar instead of a
	// merge conflict.
	PackageObjectCanBeExtended bool
	// RaiseOnInvalidFilterArgument: whether unknown filter arguments
	// cause an InvalidExpression or are relaxed (degrade silently).
	RaiseOnInvalidFilterArgument bool
	// CustomFilters is additive to the builtin filter registry. Only
	// settable through the Go API — a filter signature isn't
	// YAML-representable, so internal/config never populates this.
	CustomFilters map[string]registry.FilterSignature
	// BooleanConditions: if true, operands of and/or/not and
	// if-conditions are required Scalar; if false, Unknown.
	BooleanConditions bool
}

// DefaultConfig returns the zero-configuration defaults §6 implies:
// integer-indexed subscripts assume List, variable-indexed subscripts
// assume nothing (Unknown), and boolean-like positions are required
// Scalar (the common case for a template actually used for rendering
// truthy conditions).
func DefaultConfig() Config {
	return Config{
		TypeOfVariableIndexedWithIntegerType:  IndexList,
		TypeOfVariableIndexedWithVariableType: IndexAny,
		BooleanConditions:                      true,
	}
}
