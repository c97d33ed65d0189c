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

// Package errors defines the shared error taxonomy for the template
// inference engine (specification §7): MergeException,
// InvalidExpression, UnexpectedExpression, and the InferException base.
package errors

import (
	"errors"
	"fmt"

	"github.com/formshape/formshape/tmpl/token"
)

// Is, As and New are thin re-exports of the standard library, kept here
// so callers only need to import one errors package.
func New(msg string) error                         { return errors.New(msg) }
func Is(err, target error) bool                     { return errors.Is(err, target) }
func As(err error, target interface{}) bool         { return errors.As(err, target) }
func Unwrap(err error) error                        { return errors.Unwrap(err) }

// Error is the common interface satisfied by every error this package
// raises. It exposes enough structure for diagnostics tooling to print
// positions and the affected variable without parsing the message.
type Error interface {
	error
	// Position returns the primary position of the error.
	Position() token.Pos
	// InputPositions returns every position that contributed evidence to
	// the error (§7: "both contributing line ranges").
	InputPositions() []token.Pos
	// Label returns the human variable name the error concerns, if any.
	Label() string
}

// InferException is the base for the two runtime-like errors
// (InvalidExpression, UnexpectedExpression).
type InferException struct {
	Pos     token.Pos
	Message string
}

func (e *InferException) Error() string            { return e.Message }
func (e *InferException) Position() token.Pos       { return e.Pos }
func (e *InferException) InputPositions() []token.Pos { return nil }
func (e *InferException) Label() string             { return "" }

// InvalidExpression reports an AST node encountered in a position where
// it cannot be typed, e.g. an unsupported operator.
type InvalidExpression struct {
	InferException
}

// NewInvalidExpression builds an InvalidExpression at pos with a
// formatted message.
func NewInvalidExpression(pos token.Pos, format string, args ...interface{}) *InvalidExpression {
	return &InvalidExpression{InferException{Pos: pos, Message: fmt.Sprintf(format, args...)}}
}

// UnexpectedExpression reports a node type the visitor does not support
// at all.
type UnexpectedExpression struct {
	InferException
}

// NewUnexpectedExpression builds an UnexpectedExpression at pos.
func NewUnexpectedExpression(pos token.Pos, format string, args ...interface{}) *UnexpectedExpression {
	return &UnexpectedExpression{InferException{Pos: pos, Message: fmt.Sprintf(format, args...)}}
}

// MergeException is raised when a single name is used in incompatible
// roles (scalar vs. dictionary vs. list), a tuple/list length mismatch
// occurs, or a constant-scalar conflict is detected under strict merge.
type MergeException struct {
	VarLabel string
	KindA    string
	KindB    string
	LinenosA []int
	LinenosB []int
	Message  string
}

func (e *MergeException) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.VarLabel != "" {
		return fmt.Sprintf("incompatible types for %q: %s vs %s", e.VarLabel, e.KindA, e.KindB)
	}
	return fmt.Sprintf("incompatible types: %s vs %s", e.KindA, e.KindB)
}

func (e *MergeException) Position() token.Pos {
	if len(e.LinenosA) > 0 {
		return token.Pos{Line: e.LinenosA[0]}
	}
	if len(e.LinenosB) > 0 {
		return token.Pos{Line: e.LinenosB[0]}
	}
	return token.NoPos
}

func (e *MergeException) InputPositions() []token.Pos {
	var out []token.Pos
	for _, l := range append(append([]int(nil), e.LinenosA...), e.LinenosB...) {
		out = append(out, token.Pos{Line: l})
	}
	return out
}

func (e *MergeException) Label() string { return e.VarLabel }

// Newf creates an InferException-shaped error with the given position
// and message, mirroring the teacher's errors.Newf convenience
// constructor.
func Newf(p token.Pos, format string, args ...interface{}) Error {
	return &InferException{Pos: p, Message: fmt.Sprintf(format, args...)}
}

// Wrapf creates an error at p wrapping err for additional context, in
// the teacher's Wrapf style.
func Wrapf(err error, p token.Pos, format string, args ...interface{}) Error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &InferException{Pos: p, Message: msg}
}
