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
	"strings"
)

// Pretty renders the diagnostic projection described in §4.A: unknowns
// as `<unknown>`, scalars as `<scalar>` or the literal value when
// constant, dictionaries as `{field: ...}`, lists as `[elem]`.
func Pretty(s *Structural) string {
	var b strings.Builder
	writePretty(&b, s)
	return b.String()
}

func writePretty(b *strings.Builder, s *Structural) {
	if s == nil {
		b.WriteString("<unknown>")
		return
	}
	switch s.Kind {
	case Unknown:
		b.WriteString("<unknown>")
	case Scalar:
		if s.Constant && s.Lit != nil {
			fmt.Fprintf(b, "%v", s.Lit.Value)
		} else {
			b.WriteString("<scalar>")
		}
	case List:
		b.WriteByte('[')
		writePretty(b, s.Element)
		b.WriteByte(']')
	case Tuple:
		b.WriteByte('(')
		for i, item := range s.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writePretty(b, item)
		}
		b.WriteByte(')')
	case Dictionary:
		b.WriteByte('{')
		for i, name := range s.sortedFieldOrder() {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", name)
			writePretty(b, s.Fields[name])
		}
		b.WriteByte('}')
	}
	if s.Kind != Unknown && !s.Required {
		b.WriteString("?")
	}
}
