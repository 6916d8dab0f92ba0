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

// Package cli wires the cobra command tree: one subcommand per domain
// plus the REPL, headless, and auth front-ends. Domain command lines
// are passed through to the dispatch core untouched; cobra only routes
// the first two tokens.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errSilent signals a failure that was already reported to the user;
// Execute exits non-zero without printing it again.
var errSilent = errors.New("command failed")

// Version information, set from main via SetVersion.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion records build metadata (called from main).
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// NewRootCommand creates the root cobra command for meshctl.
func NewRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "meshctl",
		Short: "meshctl - Meshline fabric client",
		Long: `meshctl is the command-line client for the Meshline fabric. It
exposes the fabric's configuration domains (load balancing, DNS, CDN,
security, and more) as subcommands, an interactive shell, and a
machine-driven headless mode.

Run 'meshctl repl' for the interactive shell.
Run 'meshctl subscription domains' to see what your tier can reach.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/meshctl/config.yaml)")

	// Program-level flags are case-insensitive; domain command lines
	// have their own scanner and are not affected.
	cmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	cmd.AddCommand(
		newReplCommand(&configPath),
		newHeadlessCommand(&configPath),
		newAuthCommand(&configPath),
		newVersionCommand(),
	)
	addDomainCommands(cmd, &configPath)

	return cmd
}

// Execute runs the root command and maps failures to exit codes.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
