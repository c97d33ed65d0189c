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

package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/tmpl/scope"
	"github.com/formshape/formshape/tmpl/shape"
)

func TestLookupWalksOuterFrames(t *testing.T) {
	s := scope.New()
	s.Bind("x", shape.NewScalar("x"))
	s.Push()
	defer s.Pop()

	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, v.Kind)
}

func TestScopeHygiene(t *testing.T) {
	s := scope.New()
	s.Push()
	s.Bind("loopvar", shape.NewScalar("loopvar"))
	s.Pop()

	_, ok := s.Lookup("loopvar")
	assert.False(t, ok, "inner binding must not leak to the outer frame")
}

func TestRebindOuter(t *testing.T) {
	s := scope.New()
	s.Bind("x", shape.NewScalar("x"))
	s.Push()

	ok := s.RebindOuter("x", shape.NewList("x", shape.NewScalar("x[]")))
	require.True(t, ok)
	s.Pop()

	v, _ := s.Lookup("x")
	assert.Equal(t, shape.List, v.Kind)
}

func TestRebindOuterMissingReturnsFalse(t *testing.T) {
	s := scope.New()
	ok := s.RebindOuter("never_bound", shape.NewScalar("never_bound"))
	assert.False(t, ok)
}
