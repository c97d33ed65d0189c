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

package ast

// Walk traverses a tree in depth-first order. It calls before(node) for
// every node; if before returns false, the node's children are skipped.
// after(node) is called once children have been visited (or skipped).
// Either callback may be nil.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if node == nil {
		return
	}
	if before != nil && !before(node) {
		if after != nil {
			after(node)
		}
		return
	}

	switch n := node.(type) {
	case *Template:
		for _, s := range n.List {
			Walk(s, before, after)
		}
	case *Output:
		Walk(n.X, before, after)
	case *ListLit:
		for _, e := range n.Elts {
			Walk(e, before, after)
		}
	case *DictLit:
		for _, e := range n.Values {
			Walk(e, before, after)
		}
	case *Attribute:
		Walk(n.X, before, after)
	case *Subscript:
		Walk(n.X, before, after)
		Walk(n.Index, before, after)
	case *FilterExpr:
		Walk(n.X, before, after)
		for _, a := range n.Args {
			Walk(a, before, after)
		}
		for _, a := range n.Kwargs {
			Walk(a, before, after)
		}
	case *TestExpr:
		Walk(n.X, before, after)
		for _, a := range n.Args {
			Walk(a, before, after)
		}
	case *CallExpr:
		Walk(n.Fun, before, after)
		for _, a := range n.Args {
			Walk(a, before, after)
		}
		for _, a := range n.Kwargs {
			Walk(a, before, after)
		}
	case *CondExpr:
		Walk(n.Then, before, after)
		Walk(n.Cond, before, after)
		Walk(n.Else, before, after)
	case *BinaryExpr:
		Walk(n.X, before, after)
		Walk(n.Y, before, after)
	case *ConcatExpr:
		Walk(n.X, before, after)
		Walk(n.Y, before, after)
	case *UnaryExpr:
		Walk(n.X, before, after)
	case *ParenExpr:
		Walk(n.X, before, after)
	case *IfStmt:
		for _, b := range n.Branches {
			if b.Cond != nil {
				Walk(b.Cond, before, after)
			}
			for _, s := range b.Body {
				Walk(s, before, after)
			}
		}
	case *ForStmt:
		Walk(n.Iter, before, after)
		for _, s := range n.Body {
			Walk(s, before, after)
		}
		for _, s := range n.Else {
			Walk(s, before, after)
		}
	case *SetStmt:
		Walk(n.Value, before, after)
	case *SetBlockStmt:
		for _, s := range n.Body {
			Walk(s, before, after)
		}
	case *WithStmt:
		for _, b := range n.Bindings {
			Walk(b.Value, before, after)
		}
		for _, s := range n.Body {
			Walk(s, before, after)
		}
	case *MacroStmt:
		for _, p := range n.Params {
			if p.Default != nil {
				Walk(p.Default, before, after)
			}
		}
		for _, s := range n.Body {
			Walk(s, before, after)
		}
	case *FilterBlock:
		for _, s := range n.Body {
			Walk(s, before, after)
		}
	case *IncludeStmt:
		Walk(n.Template, before, after)
	case *ImportStmt:
		Walk(n.Template, before, after)
	case *FromImportStmt:
		Walk(n.Template, before, after)
	case *BlockStmt:
		for _, s := range n.Body {
			Walk(s, before, after)
		}
	case *ExtendsStmt:
		Walk(n.Template, before, after)
	// BadExpr, NoneLit, BoolLit, NumberLit, StringLit, Name, RawText,
	// Comment are leaves: nothing further to visit.
	}

	if after != nil {
		after(node)
	}
}
