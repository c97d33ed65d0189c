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

// Package cmd provides the root command for the tmplshape CLI, built on
// the teacher's own cobra + charmbracelet/log wiring (cmd/root.go):
// flag values held in locals of NewRootCmd and carried by closure, a
// log.Logger threaded through the command context, a leveled --log-level
// flag parsed in PersistentPreRunE, and Main() translating a returned
// error into an exit code.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the tmplshape command tree.
func NewRootCmd() *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:           "tmplshape",
		Short:         "Infer the structural shape of a template's free variables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).SetLevel(l)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&level, "log-level", "l", "info", "Set log level (debug, info, warn, error)")

	root.AddCommand(newInferCmd(), newSchemaCmd())
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// Main executes the root command, returning a process exit code.
func Main() int {
	cli := NewRootCmd()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	ctx = log.WithContext(ctx, logger)

	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}
