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

// Package token defines source positions used throughout the template
// lexer, parser and inference engine.
package token

import "fmt"

// Pos describes a location in a single template source file. Templates
// are inferred one file at a time, so unlike a general-purpose compiler's
// position type there is no file-set indirection: a Pos is just a line
// and column.
type Pos struct {
	Line   int
	Column int
}

// NoPos is the zero value for Pos; it means "no position available".
var NoPos = Pos{}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Column == 0 {
		return fmt.Sprintf("%d", p.Line)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Compare returns -1, 0 or 1 depending on whether p sorts before, at, or
// after q. NoPos sorts before every valid position.
func (p Pos) Compare(q Pos) int {
	switch {
	case p == q:
		return 0
	case p.Line != q.Line:
		if p.Line < q.Line {
			return -1
		}
		return 1
	default:
		if p.Column < q.Column {
			return -1
		}
		return 1
	}
}
