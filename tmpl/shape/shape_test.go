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

package shape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formshape/formshape/tmpl/shape"
)

func TestPretty(t *testing.T) {
	cases := []struct {
		name string
		s    *shape.Structural
		want string
	}{
		{"unknown", shape.NewUnknown("x"), "<unknown>"},
		{"scalar", shape.NewScalar("x"), "<scalar>"},
		{"constant", shape.NewConstantScalar("x", "hi"), "hi"},
		{"list", shape.NewList("xs", shape.NewScalar("xs[]")), "[<scalar>]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, shape.Pretty(c.s))
		})
	}
}

func TestPrettyOptionalSuffix(t *testing.T) {
	s := shape.NewScalar("y")
	s.Required = false
	assert.Equal(t, "<scalar>?", shape.Pretty(s))
}

func TestEqualIgnoresLinenos(t *testing.T) {
	a := shape.NewScalar("x", 1, 2, 3)
	b := shape.NewScalar("x", 9)
	assert.True(t, shape.Equal(a, b))
}

func TestEqualComparesRequired(t *testing.T) {
	a := shape.NewScalar("x")
	b := shape.NewScalar("x")
	b.Required = false
	assert.False(t, shape.Equal(a, b))
}

func TestWithFieldLeavesReceiverUnchanged(t *testing.T) {
	dict := shape.NewDictionary("x", []string{"a"}, map[string]*shape.Structural{"a": shape.NewScalar("a")})
	extended := dict.WithField("b", shape.NewScalar("b"))
	_, ok := dict.Field("b")
	assert.False(t, ok, "original dictionary must not be mutated")
	_, ok = extended.Field("b")
	assert.True(t, ok)
}
