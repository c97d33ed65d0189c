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

// Package config loads the configuration options from §6 from a YAML
// file on disk, in the style of the teacher's own file-backed config
// loaders: a FileSystemLoader wrapping afero.Fs, defaulting quietly
// when the file is absent rather than treating that as an error
// (config/config.go's LoadConfig does the same for a missing
// config.yaml).
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/formshape/formshape/tmpl/infer"
	"github.com/formshape/formshape/tmpl/registry"
)

// DefaultFileName is the conventional config file name a FileSystemLoader
// looks for in its root directory.
const DefaultFileName = "tmplshape.yaml"

// file is the on-disk shape of the config file; it mirrors infer.Config
// field-for-field except CustomFilters, which isn't YAML-representable
// (a filter signature is Go-only — see SPEC_FULL.md).
type file struct {
	IndexByInt                  string `yaml:"index_by_int"`
	IndexByVariable             string `yaml:"index_by_variable"`
	PackageObjectCanBeExtended  bool   `yaml:"package_object_can_be_extended"`
	RaiseOnInvalidFilterArg     bool   `yaml:"raise_on_invalid_filter_argument"`
	BooleanConditions           *bool  `yaml:"boolean_conditions"`
}

// FileSystemLoader loads an infer.Config from DefaultFileName under Fs,
// layered over infer.DefaultConfig().
type FileSystemLoader struct {
	Fs afero.Fs
}

// Load reads and parses the config file, returning infer.DefaultConfig()
// unchanged if the file does not exist.
func (l *FileSystemLoader) Load() (infer.Config, error) {
	cfg := infer.DefaultConfig()

	f, err := l.Fs.Open(DefaultFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("opening %s: %w", DefaultFileName, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", DefaultFileName, err)
	}

	var parsed file
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", DefaultFileName, err)
	}

	return apply(cfg, parsed), nil
}

func apply(cfg infer.Config, f file) infer.Config {
	if kind, ok := parseIndexKind(f.IndexByInt); ok {
		cfg.TypeOfVariableIndexedWithIntegerType = kind
	}
	if kind, ok := parseIndexKind(f.IndexByVariable); ok {
		cfg.TypeOfVariableIndexedWithVariableType = kind
	}
	cfg.PackageObjectCanBeExtended = f.PackageObjectCanBeExtended || cfg.PackageObjectCanBeExtended
	cfg.RaiseOnInvalidFilterArgument = f.RaiseOnInvalidFilterArg || cfg.RaiseOnInvalidFilterArgument
	if f.BooleanConditions != nil {
		cfg.BooleanConditions = *f.BooleanConditions
	}
	return cfg
}

func parseIndexKind(s string) (infer.IndexKind, bool) {
	switch s {
	case "list":
		return infer.IndexList, true
	case "tuple":
		return infer.IndexTuple, true
	case "dict":
		return infer.IndexDict, true
	case "any":
		return infer.IndexAny, true
	default:
		return 0, false
	}
}

// ApplyCustomFilters overlays Go-constructed filter signatures onto cfg,
// the one piece of configuration that can only come from Go code, never
// the YAML file (registry.FilterSignature isn't YAML-representable).
func ApplyCustomFilters(cfg infer.Config, custom map[string]registry.FilterSignature) infer.Config {
	cfg.CustomFilters = custom
	return cfg
}
