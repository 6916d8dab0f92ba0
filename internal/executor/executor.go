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

// Package executor dispatches parsed command lines against the domain
// registry. It owns the gate order (resolve, tier, quota, parse,
// invoke) and guarantees every dispatch returns a well-formed result:
// handler panics are converted to error results, never propagated.
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/completion"
	"github.com/meshline/meshctl/internal/domain"
	"github.com/meshline/meshctl/internal/log"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/internal/tier"
	"github.com/meshline/meshctl/pkg/errors"
)

// Executor dispatches commands for one session. It is owned by a
// single front-end loop, like the session itself, so it keeps plain
// counters without locking.
type Executor struct {
	registry   *domain.Registry
	quota      *tier.QuotaEngine
	quotaRules []tier.QuotaRule
	logger     *slog.Logger

	started  time.Time
	requests int
}

// Options configures an executor.
type Options struct {
	// QuotaRules are evaluated before every dispatch. Nil disables the
	// quota gate.
	QuotaRules []tier.QuotaRule

	// Logger receives dispatch telemetry. Nil selects the default.
	Logger *slog.Logger
}

// New creates an executor over a registry.
func New(registry *domain.Registry, opts Options) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		registry:   registry,
		quota:      tier.NewQuotaEngine(),
		quotaRules: opts.QuotaRules,
		logger:     logger,
		started:    time.Now(),
	}
}

// SplitLine tokenizes one raw input line into domain, subcommand, and
// argument tokens. Empty and whitespace-only lines return ok=false.
func SplitLine(line string) (domainName, command string, rest []string, ok bool) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return "", "", nil, false
	case 1:
		return fields[0], "", nil, true
	default:
		return fields[0], fields[1], fields[2:], true
	}
}

// Execute dispatches one command. The returned result is always
// non-nil; failures are carried in it as structured errors.
func (e *Executor) Execute(ctx context.Context, domainName, command string, rawArgs []string, sess *session.Session) (result *domain.Result) {
	start := time.Now()
	e.requests++

	logger := e.logger.With(
		slog.String(log.SessionIDKey, sess.ID()),
		slog.String(log.DomainKey, domainName),
		slog.String(log.CommandKey, command),
	)

	// A panicking handler must not take down the session loop. The
	// stand-in result keeps the tagged-union contract intact.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("command panicked", slog.Any("panic", r))
			result = domain.Failure(fmt.Errorf("internal error executing %s %s: %v", domainName, command, r))
		}
		logger.Debug("command dispatched",
			slog.Duration(log.DurationKey, time.Since(start)),
			slog.String("status", string(result.Status)),
		)
	}()

	d, canonical, deprecated, ok := e.registry.Resolve(domainName)
	if !ok {
		return domain.Failure(&errors.NotFoundError{
			Resource:   "domain",
			ID:         domainName,
			Suggestion: nearestHint(e.registry.NearestDomains(domainName, 3)),
		})
	}

	// Tier gate, before anything that could reach the network. Preview
	// is a warning overlay applied after access is granted, never a
	// denial by itself.
	if !tier.ValidateAccess(sess.Tier(), d.Info.RequiredTier) {
		return domain.Failure(&errors.AccessError{
			Domain:       canonical,
			CallerTier:   sess.Tier().String(),
			RequiredTier: d.Info.RequiredTier.String(),
			Suggestion:   fmt.Sprintf("upgrade to the %s tier to use %s", d.Info.RequiredTier, canonical),
		})
	}

	if err := e.quota.Check(e.quotaRules, canonical, e.usageContext(canonical, sess)); err != nil {
		return domain.Failure(err)
	}

	if command == "" {
		return domain.Failure(&errors.ValidationError{
			Field:      "command",
			Message:    fmt.Sprintf("domain %s requires a subcommand", canonical),
			Suggestion: "one of: " + strings.Join(d.CommandNames(), ", "),
		})
	}

	def, ok := d.Command(command)
	if !ok {
		return domain.Failure(&errors.NotFoundError{
			Resource:   "command",
			ID:         fmt.Sprintf("%s %s", canonical, command),
			Suggestion: "available commands: " + strings.Join(d.CommandNames(), ", "),
		})
	}

	parsed := args.Parse(rawArgs, d.ResourceTypes)
	if parsed.Namespace == "" {
		parsed.Namespace = sess.Namespace()
	}

	// --spec renders the command specification instead of executing.
	// It is answered locally even for commands that would otherwise
	// need credentials.
	if parsed.Spec {
		return e.renderSpec(d, def)
	}

	result, err := def.Execute(ctx, &parsed, sess)
	if err != nil {
		return e.annotate(domain.Failure(err), d, deprecated, domainName, canonical)
	}
	if result == nil {
		result = domain.Success()
	}
	return e.annotate(result, d, deprecated, domainName, canonical)
}

// Complete produces suggestions for a partial token of a known
// command. It never dials on its own; live lookup and fallback are the
// command's completion function's concern.
func (e *Executor) Complete(ctx context.Context, domainName, command, partial string, sess *session.Session) []completion.Suggestion {
	def, ok := e.registry.Lookup(domainName, command)
	if !ok || def.Complete == nil {
		return nil
	}
	return def.Complete(ctx, partial, sess)
}

// Registry exposes the registry for front-ends that enumerate domains.
func (e *Executor) Registry() *domain.Registry { return e.registry }

// usageContext builds the environment quota expressions evaluate in.
func (e *Executor) usageContext(domainName string, sess *session.Session) map[string]interface{} {
	return map[string]interface{}{
		"domain":           domainName,
		"tier":             sess.Tier().String(),
		"namespace":        sess.Namespace(),
		"authenticated":    sess.Client() != nil,
		"session_requests": e.requests,
		"session_seconds":  int(time.Since(e.started).Seconds()),
	}
}

// renderSpec answers a --spec request with indented JSON.
func (e *Executor) renderSpec(d *domain.Domain, def *domain.CommandDefinition) *domain.Result {
	encoded, err := json.MarshalIndent(domain.BuildSpec(d, def), "", "  ")
	if err != nil {
		return domain.Failure(fmt.Errorf("encoding command spec: %w", err))
	}
	return domain.Success(strings.Split(string(encoded), "\n")...)
}

// annotate prepends the non-fatal notice lines: a deprecation notice
// when the domain was reached through a retired name, and a preview
// warning when the domain is flagged preview. Both apply to error
// results too.
func (e *Executor) annotate(result *domain.Result, d *domain.Domain, deprecated bool, requested, canonical string) *domain.Result {
	var notices []string
	if deprecated {
		notices = append(notices, fmt.Sprintf("Notice: %q is deprecated, use %q", strings.ToLower(requested), canonical))
	}
	if d.Info.Preview {
		notices = append(notices, fmt.Sprintf("Warning: %s is a preview domain and may change without notice", canonical))
	}
	if len(notices) > 0 {
		result.Output = append(notices, result.Output...)
	}
	return result
}

func nearestHint(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "did you mean: " + strings.Join(names, ", ")
}
