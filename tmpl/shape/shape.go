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

package shape

import "slices"

// Metadata is carried by every Structural value (§3 "Every structural
// value carries metadata"). It is unioned, never overwritten in place,
// on every merge (§9 "Metadata plumbing").
type Metadata struct {
	// Label is a best-effort human name for diagnostics/schema titles,
	// derived from the source name where known.
	Label string
	// Required reports whether the variable must be present in the
	// context. Defaults to true; flipped to false by conditional
	// branches that don't cover all paths, write-before-read, or
	// `is defined`/`is undefined`/`default(...)`.
	Required bool
	// Constant is true when the value is statically determined from
	// literals alone.
	Constant bool
	// Linenos is the ordered multiset of source lines where evidence for
	// this type was observed. Deliberately NOT deduplicated: merging
	// unions the multisets (§3), and a dedup pass would discard repeat
	// evidence the diagnostics want to keep.
	Linenos []int
	// UsedWithDefault is set when a `default` filter supplied a
	// fallback for this value, implying Required=false.
	UsedWithDefault bool
}

// Literal is populated on a Scalar that is statically known to be a
// single literal value (Constant must also be true); nil otherwise.
type Literal struct {
	Value interface{}
}

// Structural is a node in the type lattice: one of the five Kind
// variants plus its Metadata. Only the fields relevant to Kind are
// populated; Structural values are never mutated in place after
// publication (§3 "Lifecycle") — Merge always returns a new value.
type Structural struct {
	Kind Kind
	Metadata

	// Element is populated when Kind == List.
	Element *Structural
	// Items is populated when Kind == Tuple.
	Items []*Structural
	// Fields and FieldOrder are populated when Kind == Dictionary.
	// FieldOrder exists only to make Pretty and the JSON Schema
	// projection deterministic; §3 states field order is not
	// semantically significant.
	Fields     map[string]*Structural
	FieldOrder []string
	// Lit is populated on a constant Scalar.
	Lit *Literal
}

// NewUnknown returns a fresh Unknown value.
func NewUnknown(label string, linenos ...int) *Structural {
	return &Structural{Kind: Unknown, Metadata: Metadata{Label: label, Required: true, Linenos: linenos}}
}

// NewScalar returns a fresh Scalar value.
func NewScalar(label string, linenos ...int) *Structural {
	return &Structural{Kind: Scalar, Metadata: Metadata{Label: label, Required: true, Linenos: linenos}}
}

// NewConstantScalar returns a Scalar known to equal a literal value.
func NewConstantScalar(label string, value interface{}, linenos ...int) *Structural {
	s := NewScalar(label, linenos...)
	s.Constant = true
	s.Lit = &Literal{Value: value}
	return s
}

// NewList returns a fresh List with the given element structure.
func NewList(label string, elem *Structural, linenos ...int) *Structural {
	if elem == nil {
		elem = NewUnknown(label + "[]")
	}
	return &Structural{Kind: List, Element: elem, Metadata: Metadata{Label: label, Required: true, Linenos: linenos}}
}

// NewTuple returns a fresh Tuple with the given per-slot items.
func NewTuple(label string, items []*Structural, linenos ...int) *Structural {
	return &Structural{Kind: Tuple, Items: items, Metadata: Metadata{Label: label, Required: true, Linenos: linenos}}
}

// NewDictionary returns a fresh Dictionary. fields must not be mutated
// afterward by the caller; Merge never mutates it either.
func NewDictionary(label string, order []string, fields map[string]*Structural, linenos ...int) *Structural {
	return &Structural{
		Kind:       Dictionary,
		Fields:     fields,
		FieldOrder: append([]string(nil), order...),
		Metadata:   Metadata{Label: label, Required: true, Linenos: linenos},
	}
}

// Field looks up a Dictionary field, returning (nil, false) if absent or
// if s is not a Dictionary.
func (s *Structural) Field(name string) (*Structural, bool) {
	if s == nil || s.Kind != Dictionary {
		return nil, false
	}
	f, ok := s.Fields[name]
	return f, ok
}

// WithField returns a copy of s (which must be Dictionary or Unknown)
// with field name set to value, preserving field order. s is not
// mutated.
func (s *Structural) WithField(name string, value *Structural) *Structural {
	out := s.asDictionary()
	if _, exists := out.Fields[name]; !exists {
		out.FieldOrder = append(out.FieldOrder, name)
	}
	out.Fields[name] = value
	return out
}

// asDictionary returns s coerced to a Dictionary shell, cloning any
// existing fields so the receiver is left untouched.
func (s *Structural) asDictionary() *Structural {
	if s == nil {
		return NewDictionary("", nil, map[string]*Structural{})
	}
	if s.Kind != Dictionary {
		return &Structural{
			Kind:       Dictionary,
			Fields:     map[string]*Structural{},
			FieldOrder: nil,
			Metadata:   s.Metadata,
		}
	}
	fields := make(map[string]*Structural, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return &Structural{
		Kind:       Dictionary,
		Fields:     fields,
		FieldOrder: append([]string(nil), s.FieldOrder...),
		Metadata:   s.Metadata,
	}
}

// Equal compares structure and Required, ignoring Linenos (§4.A
// "Equality ignores linenos but compares structure and required").
func Equal(a, b *Structural) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Required != b.Required {
		return false
	}
	switch a.Kind {
	case Unknown:
		return true
	case Scalar:
		if a.Constant != b.Constant {
			return false
		}
		if a.Constant {
			return a.Lit != nil && b.Lit != nil && a.Lit.Value == b.Lit.Value
		}
		return true
	case List:
		return Equal(a.Element, b.Element)
	case Tuple:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for k, av := range a.Fields {
			bv, ok := b.Fields[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// sortedFieldOrder returns FieldOrder deduplicated against Fields,
// falling back to a sorted key list if FieldOrder is stale (e.g. a
// field was added without updating order, which Merge never does but
// defensive callers authoring a Structural by hand might).
func (s *Structural) sortedFieldOrder() []string {
	seen := make(map[string]bool, len(s.FieldOrder))
	order := make([]string, 0, len(s.Fields))
	for _, k := range s.FieldOrder {
		if _, ok := s.Fields[k]; ok && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}
	if len(order) == len(s.Fields) {
		return order
	}
	extra := make([]string, 0, len(s.Fields)-len(order))
	for k := range s.Fields {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(order, extra...)
}
