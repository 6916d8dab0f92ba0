// Copyright 2025 Meshline Authors
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

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meshline/meshctl/internal/headless"
)

func newHeadlessCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "headless",
		Short: "Run the JSON-over-stdio protocol",
		Long: `Run the machine front-end: newline-delimited JSON messages on stdin
and stdout, one message per line, processed strictly in order. Intended
for driving meshctl from another program, not for humans.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := Bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			runner := headless.NewRunner(app.Executor, app.Session, os.Stdin, os.Stdout, app.Logger)
			return runner.Run(cmd.Context())
		},
	}
}
