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

// Package auth resolves and stores fabric API credentials. Tokens live
// in the OS keyring; the environment and an interactive prompt are the
// other sources, in that order.
package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/zalando/go-keyring"
	"golang.org/x/term"

	"github.com/meshline/meshctl/internal/client"
	"github.com/meshline/meshctl/internal/tier"
	"github.com/meshline/meshctl/pkg/errors"
)

const (
	// keyringService namespaces our entries in the OS keyring.
	keyringService = "meshctl"
	keyringUser    = "api-token"

	// EnvToken overrides every other token source when set.
	EnvToken = "MESHCTL_API_TOKEN"
)

// StoreToken persists a token in the OS keyring.
func StoreToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return &errors.AuthError{Reason: "storing token in keyring", Cause: err}
	}
	return nil
}

// LoadToken reads the stored token. A missing entry is not an error;
// it returns the empty string.
func LoadToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == keyring.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", &errors.AuthError{Reason: "reading token from keyring", Cause: err}
	}
	return token, nil
}

// ClearToken removes the stored token. Clearing an absent entry is a
// no-op.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && err != keyring.ErrNotFound {
		return &errors.AuthError{Reason: "removing token from keyring", Cause: err}
	}
	return nil
}

// ResolveToken finds a token: the environment first, then the keyring,
// then an interactive prompt when stdin is a terminal. An empty result
// with a nil error means no source had one.
func ResolveToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, nil
	}
	token, err := LoadToken()
	if err != nil || token != "" {
		return token, err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}
	return PromptToken()
}

// PromptToken asks for a token interactively without echoing it.
func PromptToken() (string, error) {
	var token string
	prompt := &survey.Password{Message: "Fabric API token:"}
	if err := survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)); err != nil {
		return "", &errors.AuthError{Reason: "token prompt aborted", Cause: err}
	}
	return strings.TrimSpace(token), nil
}

// TierFromToken extracts the subscription tier claim from a JWT access
// token without verifying the signature. The server is the authority
// on access; this claim only seeds the client-side gate, which fails
// open on anything unrecognized. Non-JWT tokens return ok=false.
func TierFromToken(token string) (tier.Tier, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return 0, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	name, ok := claims["tier"].(string)
	if !ok {
		return 0, false
	}
	return tier.Parse(name)
}

// Connect builds an API client for a token and confirms the
// credentials against the fabric. The returned bool reports whether
// validation succeeded; a client is returned either way so callers can
// proceed optimistically when the fabric is unreachable.
func Connect(ctx context.Context, token, baseURL string) (*client.Client, bool, error) {
	c, err := client.New(client.Options{BaseURL: baseURL, Token: token})
	if err != nil {
		return nil, false, err
	}
	resp, err := c.Get(ctx, "api/web/whoami")
	if err != nil {
		var transport *errors.TransportError
		if errors.As(err, &transport) && (transport.StatusCode == 401 || transport.StatusCode == 403) {
			return nil, false, &errors.AuthError{Reason: fmt.Sprintf("token rejected (HTTP %d)", transport.StatusCode), Cause: err}
		}
		return c, false, nil
	}
	return c, resp.OK, nil
}
