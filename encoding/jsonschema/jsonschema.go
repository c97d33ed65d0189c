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

// Package jsonschema projects an inferred context Structural (§3) onto
// a JSON Schema document (§4.G), built directly on
// github.com/invopop/jsonschema's Schema type rather than through its
// struct-reflection Reflector — there is no static Go type to reflect
// on here, since the tree is built dynamically from the inferred shape.
package jsonschema

import (
	"bytes"
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/formshape/formshape/tmpl/shape"
)

// Project converts a Structural into a *jsonschema.Schema. Unknown
// projects to an empty schema (matches anything); a non-constant Scalar
// to an `anyOf` of the four JSON primitive types the data model can't
// itself distinguish between (a constant literal narrows this to its
// own Go value's single type plus `const`); List to an `items`-typed
// array; Tuple to a fixed-length array with a positional schema per
// slot (Draft-4 `items`-as-array + `additionalItems: false`, since this
// package targets Draft-4 rather than 2020-12's `prefixItems`);
// Dictionary to an object with `required` populated from each field's
// Required flag.
func Project(s *shape.Structural) *jsonschema.Schema {
	if s == nil {
		return &jsonschema.Schema{}
	}
	out := &jsonschema.Schema{Title: s.Label}
	switch s.Kind {
	case shape.Unknown:
		// no Type constraint: matches any instance.
	case shape.Scalar:
		projectScalar(s, out)
	case shape.List:
		out.Type = "array"
		out.Items = Project(s.Element)
	case shape.Tuple:
		projectTuple(s, out)
	case shape.Dictionary:
		projectDictionary(s, out)
	}
	return out
}

func projectScalar(s *shape.Structural, out *jsonschema.Schema) {
	if !s.Constant || s.Lit == nil {
		out.AnyOf = []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "boolean"},
			{Type: "null"},
		}
		return
	}
	out.Type = "string"
	out.Const = s.Lit.Value
	switch s.Lit.Value.(type) {
	case bool:
		out.Type = "boolean"
	case float64, int, int64:
		out.Type = "number"
	}
}

func projectTuple(s *shape.Structural, out *jsonschema.Schema) {
	out.Type = "array"
	items := make([]*jsonschema.Schema, len(s.Items))
	for i, it := range s.Items {
		items[i] = Project(it)
	}
	n := uint64(len(s.Items))
	out.MinItems = &n
	out.MaxItems = &n
	if out.Extras == nil {
		out.Extras = map[string]interface{}{}
	}
	out.Extras["items"] = items
	out.Extras["additionalItems"] = false
}

func projectDictionary(s *shape.Structural, out *jsonschema.Schema) {
	out.Type = "object"
	out.Properties = jsonschema.NewProperties()
	var required []string
	for _, name := range s.FieldOrder {
		field, ok := s.Fields[name]
		if !ok {
			continue
		}
		out.Properties.Set(name, Project(field))
		if field.Required {
			required = append(required, name)
		}
	}
	out.Required = required
}

// Dump renders schema as indented JSON followed by a trailing newline,
// the shape a CLI's `schema` subcommand writes to stdout.
func Dump(schema *jsonschema.Schema) (string, error) {
	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.Write(raw)
	buf.WriteByte('\n')
	return buf.String(), nil
}
