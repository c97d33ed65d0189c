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

// Package shape implements the structural type lattice (specification
// §3, §4.A) and its merge algebra (§4.B): the five variants a template
// variable can be inferred to have, plus the total merge operation over
// pairs of them.
package shape

// Kind tags the five structural variants. Grounded on the teacher's own
// closed `kind` bitset (cue/kind.go) but narrowed to a plain enum: §3's
// five cases don't need a bitset lattice of their own (no disjunction,
// no reference bit) — a sealed variant is the idiomatic Go shape for a
// closed five-case sum type, which is the same shape the teacher uses
// for its own AST node interfaces (cue/ast/ast.go).
type Kind int

const (
	// Unknown means no evidence has been observed yet.
	Unknown Kind = iota
	// Scalar is a string, number, or boolean — not distinguished further
	// except where a constant literal fixes it (see Structural.Lit).
	Scalar
	// List is a homogeneous sequence; Element describes every item.
	List
	// Tuple is a fixed-arity sequence; Items describes each slot.
	Tuple
	// Dictionary is a set of named fields, each its own Structural.
	Dictionary
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Tuple:
		return "tuple"
	case Dictionary:
		return "dictionary"
	default:
		return "invalid"
	}
}
