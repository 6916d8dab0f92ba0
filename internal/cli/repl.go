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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshline/meshctl/internal/executor"
)

func newReplCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Long:  "Start the interactive shell. Commands use the same domain syntax as the one-shot CLI; 'help' lists domains and 'exit' leaves.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := Bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runRepl(cmd.Context(), app)
		},
	}
}

func runRepl(ctx context.Context, app *App) error {
	fmt.Printf("meshctl %s interactive shell. Type 'help' for domains, 'exit' to leave.\n", version)

	scanner := bufio.NewScanner(os.Stdin)
	chatMode := false

	for {
		fmt.Print(replPrompt(app, chatMode))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if chatMode {
			done, exited := runChatLine(ctx, app, line)
			chatMode = !done
			if exited {
				return nil
			}
			continue
		}

		switch line {
		case "help":
			printHelp(app)
			continue
		case "exit", "quit":
			return nil
		}
		if rest, ok := strings.CutPrefix(line, "complete "); ok {
			printCompletions(ctx, app, rest)
			continue
		}

		domainName, command, rest, ok := executor.SplitLine(line)
		if !ok {
			continue
		}
		result := app.Executor.Execute(ctx, domainName, command, rest, app.Session)
		printResult(result, lineColor(app.Color, rest))

		if result.ShouldExit {
			return nil
		}
		if result.EnterChatMode {
			chatMode = true
			fmt.Println(styled(Muted, "Entering chat mode. Type 'back' to return, 'exit' to leave.", app.Color))
		}
	}
}

// runChatLine routes one line of chat-mode input. Returns done=true
// when the user leaves chat mode and exited=true when they leave the
// shell entirely.
func runChatLine(ctx context.Context, app *App, line string) (done, exited bool) {
	switch line {
	case "back":
		return true, false
	case "exit", "quit":
		return true, true
	}

	result := app.Executor.Execute(ctx, "chat", "ask", strings.Fields(line), app.Session)
	printResult(result, app.Color)
	return false, result.ShouldExit
}

// replPrompt renders the context-aware prompt: namespace, tier, and a
// chat marker when in the chat sub-mode.
func replPrompt(app *App, chatMode bool) string {
	if chatMode {
		return styled(PromptStyle, "chat> ", app.Color)
	}
	marker := ""
	if !app.Session.TokenValidated() {
		marker = styled(StatusWarn, "!", app.Color)
	}
	return styled(PromptStyle, fmt.Sprintf("[%s]%s> ", app.Session.Namespace(), marker), app.Color)
}

// printCompletions serves the 'complete <domain> <command> [partial]'
// builtin. It never executes the command; it only asks it to suggest.
func printCompletions(ctx context.Context, app *App, rest string) {
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		fmt.Println(styled(Muted, "usage: complete <domain> <command> [partial]", app.Color))
		return
	}
	partial := ""
	if len(fields) > 2 {
		partial = fields[2]
	}
	suggestions := app.Executor.Complete(ctx, fields[0], fields[1], partial, app.Session)
	if len(suggestions) == 0 {
		fmt.Println(styled(Muted, "no suggestions", app.Color))
		return
	}
	for _, s := range suggestions {
		if s.Description != "" {
			fmt.Printf("  %-30s %s\n", s.Text, styled(Muted, s.Description, app.Color))
			continue
		}
		fmt.Printf("  %s\n", s.Text)
	}
}

func printHelp(app *App) {
	fmt.Println("Domains:")
	for _, info := range app.Registry.DomainsByTier(app.Session.Tier()) {
		line := fmt.Sprintf("  %-15s %s", info.Name, info.Short)
		if info.Preview {
			line += " " + styled(StatusWarn, "(preview)", app.Color)
		}
		fmt.Println(line)
	}
	fmt.Println("\nUse '<domain> <command> [args]'. Add --spec to any command for its machine-readable form.")
}
