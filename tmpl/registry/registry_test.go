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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/tmpl/registry"
	"github.com/formshape/formshape/tmpl/shape"
)

func TestLookupFilterBuiltin(t *testing.T) {
	sig, ok := registry.LookupFilter("sum", nil)
	require.True(t, ok)
	assert.Equal(t, shape.List, sig.InputKind)
	assert.Equal(t, shape.Scalar, sig.ElementConstraint)
	assert.Equal(t, registry.ResultScalar, sig.Result)
}

func TestLookupFilterUnknownDegrades(t *testing.T) {
	_, ok := registry.LookupFilter("not_a_real_filter", nil)
	assert.False(t, ok)
}

func TestLookupFilterCustomOverlay(t *testing.T) {
	custom := map[string]registry.FilterSignature{
		"my_filter": {Name: "my_filter", InputKind: shape.Scalar, Result: registry.ResultScalar},
	}
	sig, ok := registry.LookupFilter("my_filter", custom)
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, sig.InputKind)
}

func TestLookupTestDefinedHint(t *testing.T) {
	sig, ok := registry.LookupTest("defined")
	require.True(t, ok)
	assert.Equal(t, registry.HintDefinedness, sig.Hint)
}

func TestFilterSignatureArgKinds(t *testing.T) {
	sig, ok := registry.LookupFilter("join", nil)
	require.True(t, ok)
	require.True(t, sig.HasArgs())
	assert.Equal(t, []shape.Kind{shape.Scalar}, sig.Args)
	assert.Equal(t, shape.Scalar, sig.Kwargs["attribute"])

	sig, ok = registry.LookupFilter("default", nil)
	require.True(t, ok)
	assert.Equal(t, shape.Scalar, sig.Kwargs["boolean"])

	sig, ok = registry.LookupFilter("length", nil)
	require.True(t, ok)
	assert.False(t, sig.HasArgs())
}
