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

// Package lexer implements a scanner for template source text, in the
// same shape as the teacher's cue/scanner: an Init/Scan state machine
// over a byte slice, reporting through a Handler callback rather than
// panicking. Repeated calls to Scan return one token at a time until
// token.EOF.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/formshape/formshape/tmpl/token"
)

// Handler is called for every lexical error encountered; nil is
// permitted, in which case errors are silently skipped (mirroring
// cue/scanner's errors.Handler convention).
type Handler func(pos token.Pos, msg string)

// mode tracks whether the scanner is currently inside `{{ }}`/`{% %}`
// (code) or producing raw TEXT between tags.
type mode int

const (
	modeText mode = iota
	modeCode
)

// Scanner tokenizes template source. The zero value is not usable; use
// Init.
type Scanner struct {
	src  []byte
	err  Handler
	mode mode

	// closing holds the delimiter token the scanner must emit to leave
	// modeCode (VAR_END or BLOCK_END), set when VAR_START/BLOCK_START is
	// produced.
	closing token.Token

	offset   int
	rdOffset int
	ch       rune
	line     int
	col      int
}

// Init prepares s to scan src, reporting errors to err (which may be nil).
func (s *Scanner) Init(src []byte, err Handler) {
	s.src = src
	s.err = err
	s.mode = modeText
	s.offset = 0
	s.rdOffset = 0
	s.line = 1
	s.col = 0
	s.next()
}

func (s *Scanner) next() {
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		s.ch = -1
		return
	}
	s.offset = s.rdOffset
	r, w := rune(s.src[s.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.rdOffset:])
	}
	s.rdOffset += w
	s.ch = r
	s.col++
}

func (s *Scanner) pos() token.Pos {
	return token.Pos{Line: s.line, Column: s.col}
}

func (s *Scanner) error(pos token.Pos, msg string) {
	if s.err != nil {
		s.err(pos, msg)
	}
}

// Scan returns the next token, its position, and its literal text (only
// meaningful for TEXT, COMMENT, IDENT, INT, FLOAT, STRING).
func (s *Scanner) Scan() (token.Pos, token.Token, string) {
	if s.mode == modeText {
		return s.scanText()
	}
	return s.scanCode()
}

func (s *Scanner) scanText() (token.Pos, token.Token, string) {
	start := s.pos()
	if s.ch < 0 {
		return start, token.EOF, ""
	}
	var b strings.Builder
	for s.ch >= 0 {
		if tok, ok := s.peekDelim(); ok {
			if b.Len() == 0 {
				return s.scanDelim(tok)
			}
			return start, token.TEXT, b.String()
		}
		b.WriteRune(s.ch)
		s.next()
	}
	return start, token.TEXT, b.String()
}

// peekDelim reports whether the scanner sits at the start of a
// `{{`/`{%`/`{#` delimiter, and which token it opens.
func (s *Scanner) peekDelim() (token.Token, bool) {
	if s.ch != '{' || s.rdOffset >= len(s.src) {
		return 0, false
	}
	switch s.src[s.rdOffset] {
	case '{':
		return token.VAR_START, true
	case '%':
		return token.BLOCK_START, true
	case '#':
		return token.COMMENT, true
	}
	return 0, false
}

func (s *Scanner) scanDelim(tok token.Token) (token.Pos, token.Token, string) {
	start := s.pos()
	s.next() // consume '{'
	s.next() // consume second delim char
	s.skipTrimMarker()

	if tok == token.COMMENT {
		return s.scanCommentBody(start)
	}

	s.mode = modeCode
	if tok == token.VAR_START {
		s.closing = token.VAR_END
	} else {
		s.closing = token.BLOCK_END
	}
	return start, tok, ""
}

// skipTrimMarker consumes an optional Jinja-style `-` immediately after
// an opening delimiter. Whitespace-control hints affect only rendered
// output, never a variable's inferred structure, so the scanner simply
// discards the marker rather than threading it through the AST.
func (s *Scanner) skipTrimMarker() {
	if s.ch == '-' {
		s.next()
	}
}

func (s *Scanner) scanCommentBody(start token.Pos) (token.Pos, token.Token, string) {
	var b strings.Builder
	for s.ch >= 0 {
		if s.ch == '#' && s.rdOffset < len(s.src) && s.src[s.rdOffset] == '}' {
			s.next()
			s.next()
			return start, token.COMMENT, b.String()
		}
		b.WriteRune(s.ch)
		s.next()
	}
	s.error(start, "unterminated comment")
	return start, token.COMMENT, b.String()
}

func (s *Scanner) scanCode() (token.Pos, token.Token, string) {
	s.skipSpace()

	if s.atClosing() {
		return s.scanClosing()
	}
	if s.ch < 0 {
		s.error(s.pos(), "unterminated tag")
		return s.pos(), token.EOF, ""
	}

	start := s.pos()
	switch {
	case isIdentStart(s.ch):
		return start, token.IDENT, s.scanIdent()
	case isDigit(s.ch):
		return s.scanNumber(start)
	case s.ch == '"' || s.ch == '\'':
		return s.scanString(start)
	default:
		return s.scanOperator(start)
	}
}

func (s *Scanner) atClosing() bool {
	if s.ch == '-' && s.rdOffset < len(s.src) {
		// lookahead past a trailing trim marker to the real closer
		peek := rune(s.src[s.rdOffset])
		return (s.closing == token.VAR_END && peek == '}' && s.rdOffset+1 < len(s.src) && s.src[s.rdOffset+1] == '}') ||
			(s.closing == token.BLOCK_END && peek == '%' && s.rdOffset+1 < len(s.src) && s.src[s.rdOffset+1] == '}')
	}
	if s.closing == token.VAR_END {
		return s.ch == '}' && s.rdOffset < len(s.src) && s.src[s.rdOffset] == '}'
	}
	if s.closing == token.BLOCK_END {
		return s.ch == '%' && s.rdOffset < len(s.src) && s.src[s.rdOffset] == '}'
	}
	return false
}

func (s *Scanner) scanClosing() (token.Pos, token.Token, string) {
	start := s.pos()
	if s.ch == '-' {
		s.next()
	}
	s.next()
	s.next()
	s.mode = modeText
	return start, s.closing, ""
}

func (s *Scanner) skipSpace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

func isIdentStart(ch rune) bool { return ch == '_' || unicode.IsLetter(ch) }
func isIdentPart(ch rune) bool  { return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch) }
func isDigit(ch rune) bool      { return ch >= '0' && ch <= '9' }

func (s *Scanner) scanIdent() string {
	var b strings.Builder
	for isIdentPart(s.ch) {
		b.WriteRune(s.ch)
		s.next()
	}
	return b.String()
}

func (s *Scanner) scanNumber(start token.Pos) (token.Pos, token.Token, string) {
	var b strings.Builder
	isFloat := false
	for isDigit(s.ch) {
		b.WriteRune(s.ch)
		s.next()
	}
	if s.ch == '.' && s.rdOffset < len(s.src) && isDigit(rune(s.src[s.rdOffset])) {
		isFloat = true
		b.WriteRune(s.ch)
		s.next()
		for isDigit(s.ch) {
			b.WriteRune(s.ch)
			s.next()
		}
	}
	tok := token.INT
	if isFloat {
		tok = token.FLOAT
	}
	return start, tok, b.String()
}

func (s *Scanner) scanString(start token.Pos) (token.Pos, token.Token, string) {
	quote := s.ch
	s.next()
	var b strings.Builder
	for s.ch >= 0 && s.ch != quote {
		if s.ch == '\\' {
			s.next()
		}
		b.WriteRune(s.ch)
		s.next()
	}
	if s.ch == quote {
		s.next()
	} else {
		s.error(start, "unterminated string literal")
	}
	return start, token.STRING, b.String()
}

func (s *Scanner) scanOperator(start token.Pos) (token.Pos, token.Token, string) {
	ch := s.ch
	s.next()
	two := func(next rune, withNext, alone token.Token) (token.Pos, token.Token, string) {
		if s.ch == next {
			s.next()
			return start, withNext, ""
		}
		return start, alone, ""
	}
	switch ch {
	case '.':
		return start, token.DOT, ""
	case '[':
		return start, token.LBRACK, ""
	case ']':
		return start, token.RBRACK, ""
	case '(':
		return start, token.LPAREN, ""
	case ')':
		return start, token.RPAREN, ""
	case '{':
		return start, token.LBRACE, ""
	case '}':
		return start, token.RBRACE, ""
	case ',':
		return start, token.COMMA, ""
	case ':':
		return start, token.COLON, ""
	case '|':
		return start, token.PIPE, ""
	case '~':
		return start, token.TILDE, ""
	case '+':
		return start, token.ADD, ""
	case '-':
		return start, token.SUB, ""
	case '%':
		return start, token.REM, ""
	case '=':
		return two('=', token.EQ, token.ASSIGN)
	case '!':
		if s.ch == '=' {
			s.next()
			return start, token.NE, ""
		}
		s.error(start, "unexpected '!'")
		return start, token.ILLEGAL, ""
	case '<':
		return two('=', token.LE, token.LT)
	case '>':
		return two('=', token.GE, token.GT)
	case '*':
		return two('*', token.POW, token.MUL)
	case '/':
		return two('/', token.FLOORQUO, token.QUO)
	default:
		s.error(start, "illegal character")
		return start, token.ILLEGAL, ""
	}
}
