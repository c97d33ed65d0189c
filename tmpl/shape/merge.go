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

import (
	"fmt"

	tmplerrors "github.com/formshape/formshape/tmpl/errors"
)

// Mode selects how Merge propagates Required across a Dictionary key
// present in only one operand (rule 6). Strict is for same-expression
// equations that must agree unconditionally (e.g. `x and x`); Weak is
// for conditional joins (if/elif/else, for/else), where an operand
// absent from one proven branch becomes optional.
type Mode int

const (
	Strict Mode = iota
	Weak
)

// Options carries the merge-affecting configuration knobs from §6 that
// the shape package itself needs to know about.
type Options struct {
	// PackageObjectCanBeExtended resolves a Scalar/Dictionary conflict
	// as "dictionary extending scalar" instead of raising a
	// MergeException (§6, §9 Open Question (c)).
	PackageObjectCanBeExtended bool
}

// Merge is the single merge operation (§4.B), total on compatible pairs
// and returning a *tmplerrors.MergeException on incompatible ones.
func Merge(a, b *Structural, mode Mode, opts Options) (*Structural, error) {
	if a == nil {
		a = NewUnknown("")
	}
	if b == nil {
		b = NewUnknown("")
	}

	// Rule 1: Unknown identity. The non-Unknown side's Required wins
	// (Unknown contributes no evidence), linenos are unioned.
	if a.Kind == Unknown && b.Kind == Unknown {
		return &Structural{Kind: Unknown, Metadata: unionMeta(a.Metadata, b.Metadata, true, true)}, nil
	}
	if a.Kind == Unknown {
		out := cloneStructural(b)
		out.Metadata = unionMeta(a.Metadata, b.Metadata, false, true)
		return out, nil
	}
	if b.Kind == Unknown {
		out := cloneStructural(a)
		out.Metadata = unionMeta(a.Metadata, b.Metadata, true, false)
		return out, nil
	}

	if opts.PackageObjectCanBeExtended {
		if a.Kind == Scalar && b.Kind == Dictionary {
			return extendScalarWithDictionary(a, b), nil
		}
		if a.Kind == Dictionary && b.Kind == Scalar {
			return extendScalarWithDictionary(b, a), nil
		}
	}

	switch {
	case a.Kind == Scalar && b.Kind == Scalar:
		return mergeScalar(a, b), nil
	case a.Kind == List && b.Kind == List:
		elem, err := Merge(a.Element, b.Element, mode, opts)
		if err != nil {
			return nil, err
		}
		return &Structural{Kind: List, Element: elem, Metadata: unionMeta(a.Metadata, b.Metadata, true, true)}, nil
	case a.Kind == Tuple && b.Kind == Tuple:
		return mergeTuple(a, b, mode, opts)
	case a.Kind == Tuple && b.Kind == List:
		return mergeTupleList(a, b, mode, opts)
	case a.Kind == List && b.Kind == Tuple:
		return mergeTupleList(b, a, mode, opts)
	case a.Kind == Dictionary && b.Kind == Dictionary:
		return mergeDictionary(a, b, mode, opts)
	default:
		return nil, kindConflict(a, b)
	}
}

func mergeScalar(a, b *Structural) *Structural {
	out := &Structural{Kind: Scalar, Metadata: unionMeta(a.Metadata, b.Metadata, true, true)}
	if a.Constant && b.Constant && a.Lit != nil && b.Lit != nil && a.Lit.Value == b.Lit.Value {
		out.Constant = true
		out.Lit = a.Lit
	} else {
		out.Constant = false
		out.Lit = nil
	}
	return out
}

func mergeTuple(a, b *Structural, mode Mode, opts Options) (*Structural, error) {
	if len(a.Items) != len(b.Items) {
		return nil, &tmplerrors.MergeException{
			VarLabel: pickLabel(a, b),
			KindA:    fmt.Sprintf("tuple[%d]", len(a.Items)),
			KindB:    fmt.Sprintf("tuple[%d]", len(b.Items)),
			LinenosA: a.Linenos,
			LinenosB: b.Linenos,
		}
	}
	items := make([]*Structural, len(a.Items))
	for i := range a.Items {
		m, err := Merge(a.Items[i], b.Items[i], mode, opts)
		if err != nil {
			return nil, err
		}
		items[i] = m
	}
	return &Structural{Kind: Tuple, Items: items, Metadata: unionMeta(a.Metadata, b.Metadata, true, true)}, nil
}

// mergeTupleList implements rule 5: a tuple weakens into a list when
// merged against a list, by folding merge over the tuple's items plus
// the list's element.
func mergeTupleList(tup, list *Structural, mode Mode, opts Options) (*Structural, error) {
	elem := list.Element
	var err error
	for _, item := range tup.Items {
		elem, err = Merge(elem, item, mode, opts)
		if err != nil {
			return nil, err
		}
	}
	return &Structural{Kind: List, Element: elem, Metadata: unionMeta(tup.Metadata, list.Metadata, true, true)}, nil
}

func mergeDictionary(a, b *Structural, mode Mode, opts Options) (*Structural, error) {
	fields := make(map[string]*Structural, len(a.Fields)+len(b.Fields))
	seen := map[string]bool{}
	order := make([]string, 0, len(a.Fields)+len(b.Fields))

	addOrdered := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	for _, k := range a.sortedFieldOrder() {
		addOrdered(k)
	}
	for _, k := range b.sortedFieldOrder() {
		addOrdered(k)
	}

	for _, name := range order {
		av, aok := a.Fields[name]
		bv, bok := b.Fields[name]
		switch {
		case aok && bok:
			m, err := Merge(av, bv, mode, opts)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = m
		case aok:
			fields[name] = weakenIfAbsent(av, mode)
		case bok:
			fields[name] = weakenIfAbsent(bv, mode)
		}
	}

	return &Structural{
		Kind:       Dictionary,
		Fields:     fields,
		FieldOrder: order,
		Metadata:   unionMeta(a.Metadata, b.Metadata, true, true),
	}, nil
}

// weakenIfAbsent implements rule 6's absent-key handling: in Weak mode
// (the absent side was a proven branch) the field becomes optional;
// in Strict mode its Required flag is preserved unchanged.
func weakenIfAbsent(v *Structural, mode Mode) *Structural {
	if mode != Weak || !v.Required {
		return v
	}
	out := cloneStructural(v)
	out.Required = false
	return out
}

func extendScalarWithDictionary(scalar, dict *Structural) *Structural {
	out := cloneStructural(dict)
	out.Metadata = unionMeta(scalar.Metadata, dict.Metadata, true, true)
	return out
}

func kindConflict(a, b *Structural) error {
	return &tmplerrors.MergeException{
		VarLabel: pickLabel(a, b),
		KindA:    a.Kind.String(),
		KindB:    b.Kind.String(),
		LinenosA: a.Linenos,
		LinenosB: b.Linenos,
	}
}

func pickLabel(a, b *Structural) string {
	if a.Label != "" {
		return a.Label
	}
	return b.Label
}

// unionMeta merges two Metadata records. requiredFromA/requiredFromB
// control whether each side contributes to the AND of Required (both
// true in the ordinary case); Merge passes false for the Unknown side
// so its default-true Required never masks real evidence.
func unionMeta(a, b Metadata, requiredFromA, requiredFromB bool) Metadata {
	required := true
	switch {
	case requiredFromA && requiredFromB:
		required = a.Required && b.Required
	case requiredFromA:
		required = a.Required
	case requiredFromB:
		required = b.Required
	}
	label := a.Label
	if label == "" {
		label = b.Label
	}
	return Metadata{
		Label:           label,
		Required:        required,
		Constant:        false, // kind-specific mergers override when appropriate
		Linenos:         append(append([]int(nil), a.Linenos...), b.Linenos...),
		UsedWithDefault: a.UsedWithDefault || b.UsedWithDefault,
	}
}

func cloneStructural(s *Structural) *Structural {
	if s == nil {
		return nil
	}
	out := *s
	if s.Fields != nil {
		out.Fields = make(map[string]*Structural, len(s.Fields))
		for k, v := range s.Fields {
			out.Fields[k] = v
		}
		out.FieldOrder = append([]string(nil), s.FieldOrder...)
	}
	if s.Items != nil {
		out.Items = append([]*Structural(nil), s.Items...)
	}
	return &out
}
