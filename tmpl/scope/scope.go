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

// Package scope implements the name → structural-type scope stack
// (specification §4.C): a stack of frames, looked up outward, bound at
// the top, with rebind-outer support for assignments that target a name
// already bound in an enclosing frame.
package scope

import "github.com/formshape/formshape/tmpl/shape"

// Frame is one level of the scope stack: a mapping from local name to
// its inferred structural type.
type Frame map[string]*shape.Structural

// Scope is a stack of Frames. The zero value is not usable; use New.
type Scope struct {
	frames []Frame
}

// New returns a Scope with a single empty top-level frame.
func New() *Scope {
	return &Scope{frames: []Frame{{}}}
}

// Push opens a new inner frame (for, if-branch, with, macro body, ...).
func (s *Scope) Push() {
	s.frames = append(s.frames, Frame{})
}

// Pop closes the innermost frame and returns it. Names bound there never
// leak to outer frames (§8 "Scope hygiene").
func (s *Scope) Pop() Frame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

// Lookup walks outer frames from the top down and returns the first
// binding found. ok is false if name is not bound in any frame (a free
// variable).
func (s *Scope) Lookup(name string) (t *shape.Structural, ok bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, found := s.frames[i][name]; found {
			return v, true
		}
	}
	return nil, false
}

// Bind sets name in the top (innermost) frame.
func (s *Scope) Bind(name string, t *shape.Structural) {
	s.frames[len(s.frames)-1][name] = t
}

// RebindOuter sets name in whichever frame it is already bound in
// (searching from innermost outward), for assignments that target an
// existing outer name rather than shadowing it. It returns false, doing
// nothing, if name is not bound in any frame — callers should fall back
// to Bind in that case, which creates a new local binding.
func (s *Scope) RebindOuter(name string, t *shape.Structural) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, found := s.frames[i][name]; found {
			s.frames[i][name] = t
			return true
		}
	}
	return false
}
