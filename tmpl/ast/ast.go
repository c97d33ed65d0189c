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

// Package ast declares the types used to represent the syntax tree of a
// template. Parsing template source into this tree is, per the
// specification this package implements, the job of an external
// template-parser front-end; tmpl/parser is this module's own
// implementation of such a front-end, kept separate so the inference
// engine (tmpl/infer) depends only on the node shapes declared here.
package ast

import "github.com/formshape/formshape/tmpl/token"

// A Node is any node in the template syntax tree.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// An Expr is implemented by every expression node: literals, names,
// attribute/subscript access, filters, tests, calls, conditionals,
// operators.
type Expr interface {
	Node
	exprNode()
}

// A Stmt is implemented by every statement/block node: output, control
// flow, scoping constructs, imports.
type Stmt interface {
	Node
	stmtNode()
}

func (*BadExpr) exprNode()       {}
func (*NoneLit) exprNode()       {}
func (*BoolLit) exprNode()       {}
func (*NumberLit) exprNode()     {}
func (*StringLit) exprNode()     {}
func (*ListLit) exprNode()       {}
func (*DictLit) exprNode()       {}
func (*Name) exprNode()          {}
func (*Attribute) exprNode()     {}
func (*Subscript) exprNode()     {}
func (*FilterExpr) exprNode()    {}
func (*TestExpr) exprNode()      {}
func (*CallExpr) exprNode()      {}
func (*CondExpr) exprNode()      {}
func (*BinaryExpr) exprNode()    {}
func (*UnaryExpr) exprNode()     {}
func (*ConcatExpr) exprNode()    {}
func (*ParenExpr) exprNode()     {}

func (*Template) stmtNode()    {}
func (*Output) stmtNode()      {}
func (*RawText) stmtNode()     {}
func (*Comment) stmtNode()     {}
func (*IfStmt) stmtNode()      {}
func (*ForStmt) stmtNode()     {}
func (*SetStmt) stmtNode()     {}
func (*SetBlockStmt) stmtNode() {}
func (*WithStmt) stmtNode()    {}
func (*MacroStmt) stmtNode()   {}
func (*FilterBlock) stmtNode() {}
func (*IncludeStmt) stmtNode() {}
func (*ImportStmt) stmtNode()  {}
func (*FromImportStmt) stmtNode() {}
func (*BlockStmt) stmtNode()   {}
func (*ExtendsStmt) stmtNode() {}

// BadExpr is a placeholder for a syntactically or semantically invalid
// expression so that the rest of the tree can still be walked.
type BadExpr struct {
	From, To token.Pos
}

func (x *BadExpr) Pos() token.Pos { return x.From }
func (x *BadExpr) End() token.Pos { return x.To }

// NoneLit is the `none`/`null` literal.
type NoneLit struct{ TokPos token.Pos }

func (x *NoneLit) Pos() token.Pos { return x.TokPos }
func (x *NoneLit) End() token.Pos { return addCol(x.TokPos, 4) }

// BoolLit is a `true`/`false` literal.
type BoolLit struct {
	TokPos token.Pos
	Value  bool
}

func (x *BoolLit) Pos() token.Pos { return x.TokPos }
func (x *BoolLit) End() token.Pos { return x.TokPos }

// NumberLit is an integer or float literal.
type NumberLit struct {
	TokPos token.Pos
	Value  string
	IsInt  bool
}

func (x *NumberLit) Pos() token.Pos { return x.TokPos }
func (x *NumberLit) End() token.Pos { return addCol(x.TokPos, len(x.Value)) }

// StringLit is a quoted string literal.
type StringLit struct {
	TokPos token.Pos
	Value  string
}

func (x *StringLit) Pos() token.Pos { return x.TokPos }
func (x *StringLit) End() token.Pos { return addCol(x.TokPos, len(x.Value)+2) }

// ListLit is a `[e1, e2, ...]` literal. Per the data model (§3) a
// bracketed literal is visited as a Tuple (fixed arity, per-slot
// structure); it only becomes a List through later merges.
type ListLit struct {
	Lbrack token.Pos
	Elts   []Expr
	Rbrack token.Pos
}

func (x *ListLit) Pos() token.Pos { return x.Lbrack }
func (x *ListLit) End() token.Pos { return x.Rbrack }

// DictLit is a `{k: v, ...}` literal.
type DictLit struct {
	Lbrace token.Pos
	Keys   []string
	Values []Expr
	Rbrace token.Pos
}

func (x *DictLit) Pos() token.Pos { return x.Lbrace }
func (x *DictLit) End() token.Pos { return x.Rbrace }

// Name is a bare identifier reference, e.g. `x`.
type Name struct {
	NamePos token.Pos
	Value   string
}

func (x *Name) Pos() token.Pos { return x.NamePos }
func (x *Name) End() token.Pos { return addCol(x.NamePos, len(x.Value)) }

// Attribute is `a.b` (attribute or dotted dict access).
type Attribute struct {
	X     Expr
	Dot   token.Pos
	Field string
}

func (x *Attribute) Pos() token.Pos { return x.X.Pos() }
func (x *Attribute) End() token.Pos { return addCol(x.Dot, len(x.Field)+1) }

// Subscript is `a[k]`.
type Subscript struct {
	X      Expr
	Lbrack token.Pos
	Index  Expr
	Rbrack token.Pos
}

func (x *Subscript) Pos() token.Pos { return x.X.Pos() }
func (x *Subscript) End() token.Pos { return x.Rbrack }

// FilterExpr is `a|name(args...)`.
type FilterExpr struct {
	X      Expr
	Pipe   token.Pos
	Name   string
	Args   []Expr
	Kwargs map[string]Expr
}

func (x *FilterExpr) Pos() token.Pos { return x.X.Pos() }
func (x *FilterExpr) End() token.Pos { return x.Pipe }

// TestExpr is `a is name(args...)` (optionally `is not`).
type TestExpr struct {
	X      Expr
	IsPos  token.Pos
	Negate bool
	Name   string
	Args   []Expr
}

func (x *TestExpr) Pos() token.Pos { return x.X.Pos() }
func (x *TestExpr) End() token.Pos { return x.IsPos }

// CallExpr is `f(args...)`, where f is a free name or a bound macro.
type CallExpr struct {
	Fun    Expr
	Lparen token.Pos
	Args   []Expr
	Kwargs map[string]Expr
	Rparen token.Pos
}

func (x *CallExpr) Pos() token.Pos { return x.Fun.Pos() }
func (x *CallExpr) End() token.Pos { return x.Rparen }

// CondExpr is `a if cond else b`.
type CondExpr struct {
	Then   Expr
	IfPos  token.Pos
	Cond   Expr
	Else   Expr
}

func (x *CondExpr) Pos() token.Pos { return x.Then.Pos() }
func (x *CondExpr) End() token.Pos { return x.Else.End() }

// BinaryOp enumerates the binary/boolean/comparison operators.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpNotIn
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

// BinaryExpr is any two-operand operator other than string concatenation.
type BinaryExpr struct {
	X     Expr
	OpPos token.Pos
	Op    BinaryOp
	Y     Expr
}

func (x *BinaryExpr) Pos() token.Pos { return x.X.Pos() }
func (x *BinaryExpr) End() token.Pos { return x.Y.End() }

// ConcatExpr is the `~` string-concatenation operator.
type ConcatExpr struct {
	X     Expr
	TilPos token.Pos
	Y     Expr
}

func (x *ConcatExpr) Pos() token.Pos { return x.X.Pos() }
func (x *ConcatExpr) End() token.Pos { return x.Y.End() }

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpPos
)

// UnaryExpr is `not a`, `-a`, `+a`.
type UnaryExpr struct {
	OpPos token.Pos
	Op    UnaryOp
	X     Expr
}

func (x *UnaryExpr) Pos() token.Pos { return x.OpPos }
func (x *UnaryExpr) End() token.Pos { return x.X.End() }

// ParenExpr is a parenthesized expression; it is semantically identity
// and present purely so positions of the parentheses are retained.
type ParenExpr struct {
	Lparen token.Pos
	X      Expr
	Rparen token.Pos
}

func (x *ParenExpr) Pos() token.Pos { return x.Lparen }
func (x *ParenExpr) End() token.Pos { return x.Rparen }

// Template is the root node: an ordered sequence of top-level statements.
type Template struct {
	Name string
	List []Stmt
}

func (x *Template) Pos() token.Pos {
	if len(x.List) == 0 {
		return token.NoPos
	}
	return x.List[0].Pos()
}

func (x *Template) End() token.Pos {
	if len(x.List) == 0 {
		return token.NoPos
	}
	return x.List[len(x.List)-1].End()
}

// Output is a `{{ expr }}` print statement.
type Output struct {
	Lbrace token.Pos
	X      Expr
	Rbrace token.Pos
}

func (x *Output) Pos() token.Pos { return x.Lbrace }
func (x *Output) End() token.Pos { return x.Rbrace }

// RawText is literal template text outside any tag (or inside
// `{% raw %}...{% endraw %}`).
type RawText struct {
	TextPos token.Pos
	Text    string
}

func (x *RawText) Pos() token.Pos { return x.TextPos }
func (x *RawText) End() token.Pos { return addCol(x.TextPos, len(x.Text)) }

// Comment is a `{# ... #}` comment; it carries no type information.
type Comment struct {
	TokPos token.Pos
	Text   string
}

func (x *Comment) Pos() token.Pos { return x.TokPos }
func (x *Comment) End() token.Pos { return x.TokPos }

// IfBranch is one `if`/`elif` arm plus its body.
type IfBranch struct {
	Cond Expr // nil for a trailing `else`
	Body []Stmt
}

// IfStmt is `{% if %}...{% elif %}...{% else %}...{% endif %}`.
type IfStmt struct {
	IfPos    token.Pos
	Branches []IfBranch
	EndPos   token.Pos
}

func (x *IfStmt) Pos() token.Pos { return x.IfPos }
func (x *IfStmt) End() token.Pos { return x.EndPos }

// ForTarget is the loop variable(s): either a single name or a tuple
// unpacking pattern `x, y`.
type ForTarget struct {
	Names []string
}

// ForStmt is `{% for t in it %}...{% else %}...{% endfor %}`.
type ForStmt struct {
	ForPos token.Pos
	Target ForTarget
	Iter   Expr
	Body   []Stmt
	Else   []Stmt // nil if no `{% else %}` clause
	EndPos token.Pos
}

func (x *ForStmt) Pos() token.Pos { return x.ForPos }
func (x *ForStmt) End() token.Pos { return x.EndPos }

// SetStmt is `{% set name = expr %}`.
type SetStmt struct {
	SetPos token.Pos
	Name   string
	Value  Expr
}

func (x *SetStmt) Pos() token.Pos { return x.SetPos }
func (x *SetStmt) End() token.Pos { return x.Value.End() }

// SetBlockStmt is `{% set name %}...{% endset %}`: the body renders to a
// string, so the bound value is always a Scalar.
type SetBlockStmt struct {
	SetPos token.Pos
	Name   string
	Body   []Stmt
	EndPos token.Pos
}

func (x *SetBlockStmt) Pos() token.Pos { return x.SetPos }
func (x *SetBlockStmt) End() token.Pos { return x.EndPos }

// WithBinding is one `name = expr` pair in a `with` header.
type WithBinding struct {
	Name  string
	Value Expr
}

// WithStmt is `{% with a = expr, ... %}...{% endwith %}`.
type WithStmt struct {
	WithPos  token.Pos
	Bindings []WithBinding
	Body     []Stmt
	EndPos   token.Pos
}

func (x *WithStmt) Pos() token.Pos { return x.WithPos }
func (x *WithStmt) End() token.Pos { return x.EndPos }

// MacroParam is one macro parameter, with an optional default.
type MacroParam struct {
	Name    string
	Default Expr // nil if no default
}

// MacroStmt is `{% macro name(params) %}...{% endmacro %}`.
type MacroStmt struct {
	MacroPos token.Pos
	Name     string
	Params   []MacroParam
	Body     []Stmt
	EndPos   token.Pos
}

func (x *MacroStmt) Pos() token.Pos { return x.MacroPos }
func (x *MacroStmt) End() token.Pos { return x.EndPos }

// FilterBlock is `{% filter name %}...{% endfilter %}`.
type FilterBlock struct {
	FilterPos token.Pos
	Name      string
	Body      []Stmt
	EndPos    token.Pos
}

func (x *FilterBlock) Pos() token.Pos { return x.FilterPos }
func (x *FilterBlock) End() token.Pos { return x.EndPos }

// IncludeStmt is `{% include "path" %}` (or a non-literal expression,
// which produces no cross-template constraint per §4.F).
type IncludeStmt struct {
	IncludePos token.Pos
	Template   Expr
	Ignore     bool // `ignore missing`
}

func (x *IncludeStmt) Pos() token.Pos { return x.IncludePos }
func (x *IncludeStmt) End() token.Pos { return x.Template.End() }

// ImportStmt is `{% import "path" as name %}`.
type ImportStmt struct {
	ImportPos token.Pos
	Template  Expr
	As        string
}

func (x *ImportStmt) Pos() token.Pos { return x.ImportPos }
func (x *ImportStmt) End() token.Pos { return x.Template.End() }

// FromImportStmt is `{% from "path" import a, b as c %}`.
type FromImportStmt struct {
	FromPos  token.Pos
	Template Expr
	Names    []ImportedName
}

// ImportedName is one `a` or `a as b` clause of a from-import.
type ImportedName struct {
	Name string
	As   string // equals Name if no `as` clause
}

func (x *FromImportStmt) Pos() token.Pos { return x.FromPos }
func (x *FromImportStmt) End() token.Pos { return x.Template.End() }

// BlockStmt is `{% block name %}...{% endblock %}`.
type BlockStmt struct {
	BlockPos token.Pos
	Name     string
	Body     []Stmt
	EndPos   token.Pos
}

func (x *BlockStmt) Pos() token.Pos { return x.BlockPos }
func (x *BlockStmt) End() token.Pos { return x.EndPos }

// ExtendsStmt is `{% extends "path" %}`.
type ExtendsStmt struct {
	ExtendsPos token.Pos
	Template   Expr
}

func (x *ExtendsStmt) Pos() token.Pos { return x.ExtendsPos }
func (x *ExtendsStmt) End() token.Pos { return x.Template.End() }

func addCol(p token.Pos, n int) token.Pos {
	if !p.IsValid() {
		return p
	}
	return token.Pos{Line: p.Line, Column: p.Column + n}
}
