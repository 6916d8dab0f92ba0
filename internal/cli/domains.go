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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/domain"
	"github.com/meshline/meshctl/pkg/errors"
)

// addDomainCommands registers one cobra subcommand per registry
// domain. Flag parsing is disabled on them: the domain argument
// scanner owns the line past the subcommand token, with its tolerant
// unknown-flag semantics.
func addDomainCommands(root *cobra.Command, configPath *string) {
	registry, err := domain.BuildDefault()
	if err != nil {
		// The tables are compiled in; a broken registry is a build
		// defect, not a runtime condition.
		panic(fmt.Sprintf("building domain registry: %v", err))
	}

	for _, name := range registry.DomainNames() {
		d, _, _, _ := registry.Resolve(name)
		root.AddCommand(newDomainCommand(name, d, configPath))
	}

	// Deprecated names stay invocable so existing scripts keep working;
	// dispatching under the old name is what makes the executor attach
	// its deprecation notice.
	for _, name := range registry.DeprecatedNames() {
		d, canonical, _, ok := registry.Resolve(name)
		if !ok {
			continue
		}
		cmd := newDomainCommand(name, d, configPath)
		cmd.Short = fmt.Sprintf("Deprecated: use %s", canonical)
		cmd.Hidden = true
		root.AddCommand(cmd)
	}
}

// newDomainCommand builds the cobra subcommand for one domain name.
// The name may be a deprecated alias; it is passed through to dispatch
// unchanged.
func newDomainCommand(name string, d *domain.Domain, configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " <command> [args]",
		Short:              d.Info.Short,
		Long:               d.Info.Long,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			app, err := Bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			var sub string
			var rest []string
			if len(cmdArgs) > 0 {
				sub = cmdArgs[0]
				rest = cmdArgs[1:]
			}

			result := app.Executor.Execute(cmd.Context(), name, sub, rest, app.Session)
			return printResult(result, lineColor(app.Color, rest))
		},
	}
}

// lineColor folds a command line's --no-color request into the
// terminal color decision for that one invocation.
func lineColor(base bool, rest []string) bool {
	if !base {
		return false
	}
	return !args.Parse(rest, nil).NoColor
}

// printResult renders a dispatch result to the terminal: output lines
// to stdout, the error contract (message plus optional hint) to
// stderr. Returns errSilent on failure so the caller exits non-zero
// without printing the error a second time.
func printResult(result *domain.Result, color bool) error {
	for _, line := range result.Output {
		if strings.HasPrefix(line, "Warning:") || strings.HasPrefix(line, "Notice:") {
			fmt.Fprintln(os.Stderr, styled(StatusWarn, line, color))
			continue
		}
		fmt.Println(line)
	}

	if result.Err == nil {
		return nil
	}
	for i, line := range errors.UserMessage(result.Err) {
		if i == 0 {
			fmt.Fprintln(os.Stderr, styled(StatusError, line, color))
			continue
		}
		fmt.Fprintln(os.Stderr, styled(Muted, line, color))
	}
	return errSilent
}
