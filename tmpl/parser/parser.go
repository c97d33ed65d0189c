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

// Package parser implements a recursive-descent parser for template
// source text, built directly on tmpl/lexer and producing tmpl/ast
// trees, in the shape of the teacher's cue/parser: a parser struct
// carrying the current lookahead token, p.next()/p.expect(tok) helpers,
// and one parseX method per grammar production.
package parser

import (
	"github.com/formshape/formshape/tmpl/ast"
	"github.com/formshape/formshape/tmpl/errors"
	"github.com/formshape/formshape/tmpl/lexer"
	"github.com/formshape/formshape/tmpl/token"
)

type parser struct {
	name string
	sc   lexer.Scanner

	pos token.Pos
	tok token.Token
	lit string

	errs []error
}

// ParseTemplate parses source into a Template AST. The tree is always
// returned; malformed constructs are represented as *ast.BadExpr nodes
// so the rest of the tree still carries useful information, mirroring
// the teacher's error-recovery posture in cue/parser. When any error was
// recorded, the first one is returned alongside the tree.
func ParseTemplate(name, source string) (*ast.Template, error) {
	p := &parser{name: name}
	p.sc.Init([]byte(source), func(pos token.Pos, msg string) {
		p.errs = append(p.errs, errors.Newf(pos, "%s", msg))
	})
	p.next()

	list := p.parseStmtList(nil)
	tmpl := &ast.Template{Name: name, List: list}
	if len(p.errs) > 0 {
		return tmpl, p.errs[0]
	}
	return tmpl, nil
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.sc.Scan()
}

func (p *parser) errorf(pos token.Pos, format string, args ...interface{}) {
	p.errs = append(p.errs, errors.Newf(pos, format, args...))
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorf(p.pos, "expected %s, got %s", tok, p.tok)
	} else {
		p.next()
	}
	return pos
}

// expectKeyword consumes an IDENT token required to have literal kw,
// used for tag headers (`endif`, `in`, `as`, ...).
func (p *parser) expectKeyword(kw string) token.Pos {
	pos := p.pos
	if p.tok != token.IDENT || p.lit != kw {
		p.errorf(p.pos, "expected %q, got %s %q", kw, p.tok, p.lit)
	} else {
		p.next()
	}
	return pos
}

func (p *parser) atKeyword(kw string) bool {
	return p.tok == token.IDENT && p.lit == kw
}

// parseStmtList parses statements until EOF or a block tag whose
// keyword is in stopAt (the caller's closing/continuation tag, left
// unconsumed so the caller can inspect it).
func (p *parser) parseStmtList(stopAt map[string]bool) []ast.Stmt {
	var list []ast.Stmt
	for {
		switch p.tok {
		case token.EOF:
			return list
		case token.TEXT:
			list = append(list, &ast.RawText{TextPos: p.pos, Text: p.lit})
			p.next()
		case token.COMMENT:
			list = append(list, &ast.Comment{TokPos: p.pos, Text: p.lit})
			p.next()
		case token.VAR_START:
			list = append(list, p.parseOutput())
		case token.BLOCK_START:
			if stopAt != nil && p.peeksBlockKeyword(stopAt) {
				return list
			}
			s := p.parseBlockTag()
			if s == nil {
				return list
			}
			list = append(list, s)
		default:
			p.errorf(p.pos, "unexpected token %s in template body", p.tok)
			p.next()
		}
	}
}

// peeksBlockKeyword reports whether the upcoming `{% kw %}` tag's
// keyword is one the caller is waiting for, without consuming anything
// (it scans ahead using a throwaway sub-parser state since the
// underlying scanner has no token-level pushback).
func (p *parser) peeksBlockKeyword(stopAt map[string]bool) bool {
	save := *p
	p.next() // consume BLOCK_START
	kw := ""
	if p.tok == token.IDENT {
		kw = p.lit
	}
	*p = save
	return stopAt[kw]
}

func (p *parser) parseOutput() *ast.Output {
	lbrace := p.expect(token.VAR_START)
	x := p.parseExpr()
	rbrace := p.expect(token.VAR_END)
	return &ast.Output{Lbrace: lbrace, X: x, Rbrace: rbrace}
}

// parseBlockTag dispatches `{% ... %}` on its leading keyword. It
// returns nil (with an error already recorded) on an unrecognized
// keyword, so the caller's loop can bail out rather than spin.
func (p *parser) parseBlockTag() ast.Stmt {
	ifPos := p.expect(token.BLOCK_START)
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected tag keyword, got %s", p.tok)
		p.skipToBlockEnd()
		return nil
	}
	kw := p.lit

	switch kw {
	case "if":
		return p.parseIf(ifPos)
	case "for":
		return p.parseFor(ifPos)
	case "set":
		return p.parseSet(ifPos)
	case "with":
		return p.parseWith(ifPos)
	case "macro":
		return p.parseMacro(ifPos)
	case "filter":
		return p.parseFilterBlock(ifPos)
	case "include":
		return p.parseInclude(ifPos)
	case "import":
		return p.parseImport(ifPos)
	case "from":
		return p.parseFromImport(ifPos)
	case "block":
		return p.parseBlock(ifPos)
	case "extends":
		return p.parseExtends(ifPos)
	default:
		p.errorf(p.pos, "unknown tag %q", kw)
		p.skipToBlockEnd()
		return nil
	}
}

// skipToBlockEnd discards tokens through the next BLOCK_END, used for
// error recovery so one malformed tag doesn't desync the rest of the
// template.
func (p *parser) skipToBlockEnd() {
	for p.tok != token.BLOCK_END && p.tok != token.EOF {
		p.next()
	}
	if p.tok == token.BLOCK_END {
		p.next()
	}
}

func (p *parser) parseIf(ifPos token.Pos) *ast.IfStmt {
	p.next() // "if"
	var branches []ast.IfBranch
	cond := p.parseExpr()
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"elif": true, "else": true, "endif": true})
	branches = append(branches, ast.IfBranch{Cond: cond, Body: body})

	for p.atTag("elif") {
		p.expect(token.BLOCK_START)
		p.next() // "elif"
		c := p.parseExpr()
		p.expect(token.BLOCK_END)
		b := p.parseStmtList(map[string]bool{"elif": true, "else": true, "endif": true})
		branches = append(branches, ast.IfBranch{Cond: c, Body: b})
	}
	if p.atTag("else") {
		p.expect(token.BLOCK_START)
		p.next() // "else"
		p.expect(token.BLOCK_END)
		b := p.parseStmtList(map[string]bool{"endif": true})
		branches = append(branches, ast.IfBranch{Cond: nil, Body: b})
	}
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endif")
	p.expect(token.BLOCK_END)
	return &ast.IfStmt{IfPos: ifPos, Branches: branches, EndPos: endPos}
}

// atTag reports whether the upcoming tag is `{% kw %}` without
// consuming it.
func (p *parser) atTag(kw string) bool {
	if p.tok != token.BLOCK_START {
		return false
	}
	save := *p
	p.next()
	ok := p.tok == token.IDENT && p.lit == kw
	*p = save
	return ok
}

func (p *parser) parseFor(forPos token.Pos) *ast.ForStmt {
	p.next() // "for"
	target := p.parseForTarget()
	p.expectKeyword("in")
	iter := p.parseExpr()
	// "if" guard clause and "recursive" marker affect rendering only;
	// consume and discard them if present.
	if p.atKeyword("if") {
		p.next()
		p.parseExpr()
	}
	if p.atKeyword("recursive") {
		p.next()
	}
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"else": true, "endfor": true})
	var elseBody []ast.Stmt
	if p.atTag("else") {
		p.expect(token.BLOCK_START)
		p.next() // "else"
		p.expect(token.BLOCK_END)
		elseBody = p.parseStmtList(map[string]bool{"endfor": true})
	}
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endfor")
	p.expect(token.BLOCK_END)
	return &ast.ForStmt{ForPos: forPos, Target: target, Iter: iter, Body: body, Else: elseBody, EndPos: endPos}
}

func (p *parser) parseForTarget() ast.ForTarget {
	var names []string
	names = append(names, p.parseIdentLit())
	for p.tok == token.COMMA {
		p.next()
		names = append(names, p.parseIdentLit())
	}
	return ast.ForTarget{Names: names}
}

func (p *parser) parseIdentLit() string {
	if p.tok != token.IDENT {
		p.errorf(p.pos, "expected identifier, got %s", p.tok)
		return ""
	}
	lit := p.lit
	p.next()
	return lit
}

func (p *parser) parseSet(setPos token.Pos) ast.Stmt {
	p.next() // "set"
	name := p.parseIdentLit()
	if p.tok == token.ASSIGN {
		p.next()
		v := p.parseExpr()
		p.expect(token.BLOCK_END)
		return &ast.SetStmt{SetPos: setPos, Name: name, Value: v}
	}
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"endset": true})
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endset")
	p.expect(token.BLOCK_END)
	return &ast.SetBlockStmt{SetPos: setPos, Name: name, Body: body, EndPos: endPos}
}

func (p *parser) parseWith(withPos token.Pos) *ast.WithStmt {
	p.next() // "with"
	var bindings []ast.WithBinding
	for p.tok == token.IDENT {
		name := p.parseIdentLit()
		p.expect(token.ASSIGN)
		v := p.parseExpr()
		bindings = append(bindings, ast.WithBinding{Name: name, Value: v})
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"endwith": true})
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endwith")
	p.expect(token.BLOCK_END)
	return &ast.WithStmt{WithPos: withPos, Bindings: bindings, Body: body, EndPos: endPos}
}

func (p *parser) parseMacro(macroPos token.Pos) *ast.MacroStmt {
	p.next() // "macro"
	name := p.parseIdentLit()
	var params []ast.MacroParam
	p.expect(token.LPAREN)
	for p.tok != token.RPAREN && p.tok != token.EOF {
		pname := p.parseIdentLit()
		mp := ast.MacroParam{Name: pname}
		if p.tok == token.ASSIGN {
			p.next()
			mp.Default = p.parseExpr()
		}
		params = append(params, mp)
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"endmacro": true})
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endmacro")
	p.expect(token.BLOCK_END)
	return &ast.MacroStmt{MacroPos: macroPos, Name: name, Params: params, Body: body, EndPos: endPos}
}

func (p *parser) parseFilterBlock(filterPos token.Pos) *ast.FilterBlock {
	p.next() // "filter"
	name := p.parseIdentLit()
	for p.tok == token.PIPE {
		p.next()
		p.parseIdentLit() // chained filters: only the first name is tracked
	}
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"endfilter": true})
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endfilter")
	p.expect(token.BLOCK_END)
	return &ast.FilterBlock{FilterPos: filterPos, Name: name, Body: body, EndPos: endPos}
}

func (p *parser) parseInclude(includePos token.Pos) *ast.IncludeStmt {
	p.next() // "include"
	tmpl := p.parseExpr()
	ignore := false
	if p.atKeyword("ignore") {
		p.next()
		p.expectKeyword("missing")
		ignore = true
	}
	p.expect(token.BLOCK_END)
	return &ast.IncludeStmt{IncludePos: includePos, Template: tmpl, Ignore: ignore}
}

func (p *parser) parseImport(importPos token.Pos) *ast.ImportStmt {
	p.next() // "import"
	tmpl := p.parseExpr()
	p.expectKeyword("as")
	as := p.parseIdentLit()
	p.expect(token.BLOCK_END)
	return &ast.ImportStmt{ImportPos: importPos, Template: tmpl, As: as}
}

func (p *parser) parseFromImport(fromPos token.Pos) *ast.FromImportStmt {
	p.next() // "from"
	tmpl := p.parseExpr()
	p.expectKeyword("import")
	var names []ast.ImportedName
	for p.tok == token.IDENT {
		name := p.parseIdentLit()
		as := name
		if p.atKeyword("as") {
			p.next()
			as = p.parseIdentLit()
		}
		names = append(names, ast.ImportedName{Name: name, As: as})
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.BLOCK_END)
	return &ast.FromImportStmt{FromPos: fromPos, Template: tmpl, Names: names}
}

func (p *parser) parseBlock(blockPos token.Pos) *ast.BlockStmt {
	p.next() // "block"
	name := p.parseIdentLit()
	p.expect(token.BLOCK_END)
	body := p.parseStmtList(map[string]bool{"endblock": true})
	p.expect(token.BLOCK_START)
	endPos := p.expectKeyword("endblock")
	if p.tok == token.IDENT {
		p.next() // optional repeated block name after endblock
	}
	p.expect(token.BLOCK_END)
	return &ast.BlockStmt{BlockPos: blockPos, Name: name, Body: body, EndPos: endPos}
}

func (p *parser) parseExtends(extendsPos token.Pos) *ast.ExtendsStmt {
	p.next() // "extends"
	tmpl := p.parseExpr()
	p.expect(token.BLOCK_END)
	return &ast.ExtendsStmt{ExtendsPos: extendsPos, Template: tmpl}
}

// --- expressions, lowest to highest precedence ---

func (p *parser) parseExpr() ast.Expr {
	return p.parseTernary()
}

// parseTernary handles `a if cond else b`; Jinja's ternary binds looser
// than `or`, and is right-associative.
func (p *parser) parseTernary() ast.Expr {
	then := p.parseOr()
	if p.atKeyword("if") {
		ifPos := p.pos
		p.next()
		cond := p.parseOr()
		var elseExpr ast.Expr = &ast.NoneLit{TokPos: p.pos}
		if p.atKeyword("else") {
			p.next()
			elseExpr = p.parseTernary()
		}
		return &ast.CondExpr{Then: then, IfPos: ifPos, Cond: cond, Else: elseExpr}
	}
	return then
}

func (p *parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.atKeyword("or") {
		opPos := p.pos
		p.next()
		y := p.parseAnd()
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: ast.OpOr, Y: y}
	}
	return x
}

func (p *parser) parseAnd() ast.Expr {
	x := p.parseNot()
	for p.atKeyword("and") {
		opPos := p.pos
		p.next()
		y := p.parseNot()
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: ast.OpAnd, Y: y}
	}
	return x
}

func (p *parser) parseNot() ast.Expr {
	if p.atKeyword("not") {
		opPos := p.pos
		p.next()
		x := p.parseNot()
		return &ast.UnaryExpr{OpPos: opPos, Op: ast.OpNot, X: x}
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() ast.Expr {
	x := p.parseConcat()
	for {
		var op ast.BinaryOp
		switch {
		case p.tok == token.EQ:
			op = ast.OpEq
		case p.tok == token.NE:
			op = ast.OpNe
		case p.tok == token.LT:
			op = ast.OpLt
		case p.tok == token.LE:
			op = ast.OpLe
		case p.tok == token.GT:
			op = ast.OpGt
		case p.tok == token.GE:
			op = ast.OpGe
		case p.atKeyword("in"):
			op = ast.OpIn
		case p.atKeyword("not"):
			if !p.peekIsNotIn() {
				return x
			}
			opPos := p.pos
			p.next() // "not"
			p.next() // "in"
			y := p.parseConcat()
			x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: ast.OpNotIn, Y: y}
			continue
		case p.atKeyword("is"):
			x = p.parseTest(x)
			continue
		default:
			return x
		}
		opPos := p.pos
		p.next()
		y := p.parseConcat()
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: op, Y: y}
	}
}

func (p *parser) peekIsNotIn() bool {
	save := *p
	p.next() // "not"
	ok := p.atKeyword("in")
	*p = save
	return ok
}

func (p *parser) parseTest(x ast.Expr) ast.Expr {
	isPos := p.pos
	p.next() // "is"
	negate := false
	if p.atKeyword("not") {
		negate = true
		p.next()
	}
	name := p.parseIdentLit()
	var args []ast.Expr
	if p.tok == token.LPAREN {
		args = p.parseArgList()
	}
	return &ast.TestExpr{X: x, IsPos: isPos, Negate: negate, Name: name, Args: args}
}

func (p *parser) parseConcat() ast.Expr {
	x := p.parseAdditive()
	for p.tok == token.TILDE {
		opPos := p.pos
		p.next()
		y := p.parseAdditive()
		x = &ast.ConcatExpr{X: x, TilPos: opPos, Y: y}
	}
	return x
}

func (p *parser) parseAdditive() ast.Expr {
	x := p.parseTerm()
	for p.tok == token.ADD || p.tok == token.SUB {
		op := ast.OpAdd
		if p.tok == token.SUB {
			op = ast.OpSub
		}
		opPos := p.pos
		p.next()
		y := p.parseTerm()
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: op, Y: y}
	}
	return x
}

func (p *parser) parseTerm() ast.Expr {
	x := p.parseUnary()
	for p.tok == token.MUL || p.tok == token.QUO || p.tok == token.FLOORQUO || p.tok == token.REM {
		var op ast.BinaryOp
		switch p.tok {
		case token.MUL:
			op = ast.OpMul
		case token.QUO:
			op = ast.OpDiv
		case token.FLOORQUO:
			op = ast.OpFloorDiv
		case token.REM:
			op = ast.OpMod
		}
		opPos := p.pos
		p.next()
		y := p.parseUnary()
		x = &ast.BinaryExpr{X: x, OpPos: opPos, Op: op, Y: y}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.SUB:
		opPos := p.pos
		p.next()
		return &ast.UnaryExpr{OpPos: opPos, Op: ast.OpNeg, X: p.parseUnary()}
	case token.ADD:
		opPos := p.pos
		p.next()
		return &ast.UnaryExpr{OpPos: opPos, Op: ast.OpPos, X: p.parseUnary()}
	default:
		return p.parsePower()
	}
}

// parsePower is right-associative, binding tighter than unary minus on
// its right operand only (`-2**2` is `-(2**2)`), the usual convention.
func (p *parser) parsePower() ast.Expr {
	x := p.parsePostfix()
	if p.tok == token.POW {
		opPos := p.pos
		p.next()
		y := p.parseUnary()
		return &ast.BinaryExpr{X: x, OpPos: opPos, Op: ast.OpPow, Y: y}
	}
	return x
}

func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok {
		case token.DOT:
			dot := p.pos
			p.next()
			field := p.parseIdentLit()
			x = &ast.Attribute{X: x, Dot: dot, Field: field}
		case token.LBRACK:
			lbrack := p.pos
			p.next()
			idx := p.parseExpr()
			rbrack := p.expect(token.RBRACK)
			x = &ast.Subscript{X: x, Lbrack: lbrack, Index: idx, Rbrack: rbrack}
		case token.PIPE:
			pipe := p.pos
			p.next()
			name := p.parseIdentLit()
			var args []ast.Expr
			var kwargs map[string]ast.Expr
			if p.tok == token.LPAREN {
				args, kwargs = p.parseArgListKw()
			}
			x = &ast.FilterExpr{X: x, Pipe: pipe, Name: name, Args: args, Kwargs: kwargs}
		case token.LPAREN:
			lparen := p.pos
			args, kwargs := p.parseArgListKw()
			x = &ast.CallExpr{Fun: x, Lparen: lparen, Args: args, Kwargs: kwargs, Rparen: p.pos}
		default:
			return x
		}
	}
}

func (p *parser) parseArgList() []ast.Expr {
	args, _ := p.parseArgListKw()
	return args
}

// parseArgListKw parses a parenthesized, comma-separated argument list
// where `name=expr` entries are collected as keyword arguments and
// everything else as positional.
func (p *parser) parseArgListKw() ([]ast.Expr, map[string]ast.Expr) {
	p.expect(token.LPAREN)
	var args []ast.Expr
	var kwargs map[string]ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		if p.tok == token.IDENT && p.isKwargLookahead() {
			name := p.parseIdentLit()
			p.expect(token.ASSIGN)
			v := p.parseExpr()
			if kwargs == nil {
				kwargs = map[string]ast.Expr{}
			}
			kwargs[name] = v
		} else {
			args = append(args, p.parseExpr())
		}
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args, kwargs
}

// isKwargLookahead reports whether the current IDENT is followed
// directly by `=` (and not `==`), i.e. starts a keyword argument rather
// than an expression.
func (p *parser) isKwargLookahead() bool {
	save := *p
	p.next()
	ok := p.tok == token.ASSIGN
	*p = save
	return ok
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.tok {
	case token.INT:
		lit := p.lit
		pos := p.pos
		p.next()
		return &ast.NumberLit{TokPos: pos, Value: lit, IsInt: true}
	case token.FLOAT:
		lit := p.lit
		pos := p.pos
		p.next()
		return &ast.NumberLit{TokPos: pos, Value: lit, IsInt: false}
	case token.STRING:
		lit := p.lit
		pos := p.pos
		p.next()
		return &ast.StringLit{TokPos: pos, Value: lit}
	case token.LPAREN:
		lparen := p.pos
		p.next()
		x := p.parseExpr()
		rparen := p.expect(token.RPAREN)
		return &ast.ParenExpr{Lparen: lparen, X: x, Rparen: rparen}
	case token.LBRACK:
		return p.parseListLit()
	case token.LBRACE:
		return p.parseDictLit()
	case token.IDENT:
		return p.parseIdentPrimary()
	default:
		pos := p.pos
		p.errorf(pos, "unexpected token %s in expression", p.tok)
		p.next()
		return &ast.BadExpr{From: pos, To: pos}
	}
}

func (p *parser) parseIdentPrimary() ast.Expr {
	pos := p.pos
	lit := p.lit
	switch lit {
	case "none", "None":
		p.next()
		return &ast.NoneLit{TokPos: pos}
	case "true", "True":
		p.next()
		return &ast.BoolLit{TokPos: pos, Value: true}
	case "false", "False":
		p.next()
		return &ast.BoolLit{TokPos: pos, Value: false}
	default:
		p.next()
		return &ast.Name{NamePos: pos, Value: lit}
	}
}

func (p *parser) parseListLit() *ast.ListLit {
	lbrack := p.pos
	p.next()
	var elts []ast.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elts = append(elts, p.parseExpr())
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.ListLit{Lbrack: lbrack, Elts: elts, Rbrack: rbrack}
}

func (p *parser) parseDictLit() *ast.DictLit {
	lbrace := p.pos
	p.next()
	var keys []string
	var values []ast.Expr
	for p.tok != token.RBRACE && p.tok != token.EOF {
		var key string
		switch p.tok {
		case token.STRING:
			key = p.lit
			p.next()
		case token.IDENT:
			key = p.lit
			p.next()
		default:
			p.errorf(p.pos, "expected dict key, got %s", p.tok)
		}
		p.expect(token.COLON)
		v := p.parseExpr()
		keys = append(keys, key)
		values = append(values, v)
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.DictLit{Lbrace: lbrace, Keys: keys, Values: values, Rbrace: rbrace}
}
