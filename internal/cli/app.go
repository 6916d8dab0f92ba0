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
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/meshline/meshctl/internal/auth"
	"github.com/meshline/meshctl/internal/config"
	"github.com/meshline/meshctl/internal/domain"
	"github.com/meshline/meshctl/internal/executor"
	"github.com/meshline/meshctl/internal/log"
	"github.com/meshline/meshctl/internal/output"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/internal/tier"
)

// App is the wired client: configuration, registry, executor, and the
// session every front-end drives.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *domain.Registry
	Executor *executor.Executor
	Session  *session.Session
	Color    bool
}

// Bootstrap loads configuration, builds the registry and executor, and
// seeds a session. Credentials are resolved non-interactively here;
// commands that require a login prompt for one themselves.
func Bootstrap(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logCfg := log.FromEnv()
	if logCfg.Level == "info" {
		logCfg.Level = cfg.Log.Level
	}
	logCfg.Format = log.Format(cfg.Log.Format)
	logger := log.New(logCfg)

	registry, err := domain.BuildDefault()
	if err != nil {
		return nil, err
	}

	exec := executor.New(registry, executor.Options{
		QuotaRules: cfg.Quota,
		Logger:     logger,
	})

	sess := session.New()
	sess.SetNamespace(cfg.Defaults.Namespace)
	sess.SetFormat(output.ParseFormat(cfg.Defaults.Format))

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Executor: exec,
		Session:  sess,
		Color:    IsTTY(),
	}
	app.connectStoredCredentials(ctx)
	return app, nil
}

// connectStoredCredentials attaches an API client when a token is
// already available from the environment or keyring. Failure leaves
// the session unauthenticated; commands surface that when they need
// the network.
func (a *App) connectStoredCredentials(ctx context.Context) {
	token, err := resolveStoredToken()
	if err != nil || token == "" {
		if err != nil {
			a.Logger.Debug("token resolution failed", slog.String("error", err.Error()))
		}
		return
	}

	c, validated, err := auth.Connect(ctx, token, a.Config.API.BaseURL)
	if err != nil {
		a.Logger.Debug("stored credentials rejected", slog.String("error", err.Error()))
		return
	}
	a.Session.SetClient(c, validated)
	if t, ok := auth.TierFromToken(token); ok {
		a.Session.SetTier(t)
	} else {
		// Unknown claim shapes pass through; the gate fails open.
		a.Session.SetTier(tier.Tier(0))
	}
}

// resolveStoredToken checks the non-interactive token sources only:
// the environment, then the keyring. Never prompts.
func resolveStoredToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv(auth.EnvToken)); token != "" {
		return token, nil
	}
	return auth.LoadToken()
}
