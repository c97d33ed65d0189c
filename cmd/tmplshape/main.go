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

// Command tmplshape infers the structural shape of the free variables a
// template reads and prints it either as a pretty diagnostic tree or as
// a JSON Schema document.
package main

import (
	"os"

	"github.com/formshape/formshape/internal/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
