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

	"github.com/spf13/cobra"

	"github.com/meshline/meshctl/internal/auth"
	"github.com/meshline/meshctl/internal/config"
)

func newAuthCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage fabric credentials",
	}
	cmd.AddCommand(
		newAuthLoginCommand(configPath),
		newAuthLogoutCommand(),
		newAuthStatusCommand(configPath),
	)
	return cmd
}

func newAuthLoginCommand(configPath *string) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token and verify it against the fabric",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			if token == "" {
				token, err = auth.ResolveToken()
				if err != nil {
					return err
				}
			}
			if token == "" {
				token, err = auth.PromptToken()
				if err != nil {
					return err
				}
			}

			_, validated, err := auth.Connect(cmd.Context(), token, cfg.API.BaseURL)
			if err != nil {
				return err
			}
			if err := auth.StoreToken(token); err != nil {
				return err
			}

			color := IsTTY()
			if validated {
				fmt.Println(styled(StatusOK, SymbolOK+" logged in", color))
			} else {
				fmt.Println(styled(StatusWarn, SymbolWarn+" token stored, but the fabric could not be reached to verify it", color))
			}
			if t, ok := auth.TierFromToken(token); ok {
				fmt.Println(styled(Muted, "subscription tier: "+t.String(), color))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "API token (omit to be prompted)")
	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := auth.ClearToken(); err != nil {
				return err
			}
			fmt.Println(styled(StatusOK, SymbolOK+" logged out", IsTTY()))
			return nil
		},
	}
}

func newAuthStatusCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current credential state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := Bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			if app.Session.Client() == nil {
				fmt.Println(styled(StatusError, SymbolError+" not logged in", app.Color))
				fmt.Println(styled(Muted, "run 'meshctl auth login' to store a token", app.Color))
				return nil
			}
			if app.Session.TokenValidated() {
				fmt.Println(styled(StatusOK, SymbolOK+" logged in and verified", app.Color))
			} else {
				fmt.Println(styled(StatusWarn, SymbolWarn+" token present but unverified", app.Color))
			}
			fmt.Println(styled(Muted, "subscription tier: "+app.Session.Tier().String(), app.Color))
			return nil
		},
	}
}
