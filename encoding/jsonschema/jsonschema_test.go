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

package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/encoding/jsonschema"
	"github.com/formshape/formshape/tmpl/shape"
)

func TestProjectUnknown(t *testing.T) {
	out := jsonschema.Project(shape.NewUnknown("x"))
	assert.Equal(t, "", out.Type)
}

func TestProjectScalar(t *testing.T) {
	out := jsonschema.Project(shape.NewScalar("x"))
	assert.Equal(t, "", out.Type)
	require.Len(t, out.AnyOf, 4)
	var types []string
	for _, alt := range out.AnyOf {
		types = append(types, alt.Type)
	}
	assert.ElementsMatch(t, []string{"string", "number", "boolean", "null"}, types)
}

func TestProjectConstantScalar(t *testing.T) {
	out := jsonschema.Project(shape.NewConstantScalar("x", true))
	assert.Equal(t, "boolean", out.Type)
	assert.Equal(t, true, out.Const)

	outNum := jsonschema.Project(shape.NewConstantScalar("x", 3.0))
	assert.Equal(t, "number", outNum.Type)
}

func TestProjectList(t *testing.T) {
	out := jsonschema.Project(shape.NewList("xs", shape.NewConstantScalar("", "lit")))
	assert.Equal(t, "array", out.Type)
	require.NotNil(t, out.Items)
	assert.Equal(t, "string", out.Items.Type)
}

func TestProjectTuple(t *testing.T) {
	out := jsonschema.Project(shape.NewTuple("t", []*shape.Structural{
		shape.NewScalar(""), shape.NewScalar(""),
	}))
	assert.Equal(t, "array", out.Type)
	require.NotNil(t, out.MinItems)
	assert.Equal(t, uint64(2), *out.MinItems)
	assert.Equal(t, uint64(2), *out.MaxItems)
	require.Contains(t, out.Extras, "items")
	assert.Equal(t, false, out.Extras["additionalItems"])
}

func TestProjectDictionary(t *testing.T) {
	req := shape.NewScalar("a")
	opt := shape.NewScalar("b")
	opt.Required = false
	s := shape.NewDictionary("x", []string{"a", "b"}, map[string]*shape.Structural{
		"a": req,
		"b": opt,
	})
	out := jsonschema.Project(s)
	assert.Equal(t, "object", out.Type)
	require.NotNil(t, out.Properties)
	assert.Equal(t, 2, out.Properties.Len())
	assert.Equal(t, []string{"a"}, out.Required)
}

func TestDumpProducesIndentedJSONWithTrailingNewline(t *testing.T) {
	out, err := jsonschema.Dump(jsonschema.Project(shape.NewConstantScalar("x", "lit")))
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "string"`)
	assert.Equal(t, byte('\n'), out[len(out)-1])
}
