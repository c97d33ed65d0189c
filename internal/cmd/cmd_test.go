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

package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formshape/formshape/internal/cmd"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	ctx := log.WithContext(context.Background(), log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false}))
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "t.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInferCommandPrintsPrettyTree(t *testing.T) {
	path := writeTemplate(t, "{{ x }}")
	out, err := runCLI(t, "infer", path)
	require.NoError(t, err)
	assert.Contains(t, out, "x")
}

func TestSchemaCommandPrintsJSONSchema(t *testing.T) {
	path := writeTemplate(t, "{{ x }}")
	out, err := runCLI(t, "schema", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"type"`)
	assert.Contains(t, out, "x")
}

func TestInferCommandMissingFileErrors(t *testing.T) {
	_, err := runCLI(t, "infer", "/does/not/exist.html")
	assert.Error(t, err)
}

func TestInferRequiresExactlyOneArg(t *testing.T) {
	_, err := runCLI(t, "infer")
	assert.Error(t, err)
}

func TestLogLevelFlagIsAccepted(t *testing.T) {
	path := writeTemplate(t, "{{ x }}")
	_, err := runCLI(t, "--log-level", "debug", "infer", path)
	assert.NoError(t, err)
}

func TestLogLevelFlagRejectsInvalidLevel(t *testing.T) {
	path := writeTemplate(t, "{{ x }}")
	_, err := runCLI(t, "--log-level", "not-a-level", "infer", path)
	assert.Error(t, err)
}
