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

// Package domain defines the static command surface of the client: the
// per-domain metadata generated from upstream API specs, the command
// definitions, and the registry that resolves them. Everything here is
// immutable after registry construction.
package domain

import (
	"context"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/completion"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/internal/tier"
)

// Category groups domains by concern. The set is fixed.
type Category string

const (
	CategoryNetworking    Category = "networking"
	CategorySecurity      Category = "security"
	CategoryDelivery      Category = "delivery"
	CategoryObservability Category = "observability"
	CategoryPlatform      Category = "platform"
	CategoryAssistant     Category = "assistant"
)

// RelatedRef points at another domain with a relevance weight, as
// emitted by the table generator.
type RelatedRef struct {
	Name   string
	Weight int
}

// Info is the static, immutable metadata of one domain. Generated at
// build time from upstream API specs; read-only at runtime.
type Info struct {
	// Name is the canonical domain name (the CLI subcommand).
	Name string

	// DisplayName is the human-facing name.
	DisplayName string

	// Short, Medium, and Long are the three description tiers.
	Short  string
	Medium string
	Long   string

	// RequiredTier bounds which subscription tiers may invoke any
	// command in this domain.
	RequiredTier tier.Tier

	// Preview marks the domain available but not fully stable. Preview
	// is a warning overlay, never an access gate by itself.
	Preview bool

	// Category is the domain's concern grouping.
	Category Category

	// UseCases are free-text use-case strings used by related-domain
	// scoring.
	UseCases []string

	// Workflows reference documented multi-domain workflows.
	Workflows []string

	// Related lists generator-emitted related domains with weights.
	Related []RelatedRef
}

// Status discriminates the two result variants. An explicit tag, not
// field presence, decides how a result is handled.
type Status string

const (
	// StatusSuccess marks a completed command.
	StatusSuccess Status = "success"
	// StatusError marks a failed command; Err is set.
	StatusError Status = "error"
)

// Result is the outcome of dispatching one command. Handlers and the
// executor always return a well-formed Result; failures are values,
// never panics across the dispatch boundary.
type Result struct {
	// Status tags the variant.
	Status Status

	// Output holds the renderable output lines (may be empty).
	Output []string

	// Err is the structured failure when Status is StatusError.
	Err error

	// ContextChanged tells the REPL to refresh its displayed prompt
	// (e.g. after a namespace change).
	ContextChanged bool

	// ShouldExit tells the front-end to terminate the session.
	ShouldExit bool

	// EnterChatMode signals the REPL to switch into the chat sub-mode.
	EnterChatMode bool
}

// Success builds a success result from output lines.
func Success(lines ...string) *Result {
	return &Result{Status: StatusSuccess, Output: lines}
}

// Failure builds an error result from a structured error.
func Failure(err error) *Result {
	return &Result{Status: StatusError, Err: err}
}

// HandlerFunc executes a command against the session. It may perform
// network I/O through the session's API client and may mutate the
// session via its setters.
type HandlerFunc func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error)

// CompleteFunc produces completion suggestions for a partial token. It
// must tolerate and swallow transport failures, degrading to static
// fallback suggestions, and must not execute anything.
type CompleteFunc func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion

// CommandDefinition is one invocable operation in a domain. Owned by
// the registry for the process lifetime; never copied or mutated after
// registration.
type CommandDefinition struct {
	// Name is the canonical subcommand name.
	Name string

	// Aliases are alternative names resolving to this command.
	Aliases []string

	// Short, Medium, and Long are the three description tiers.
	Short  string
	Medium string
	Long   string

	// Usage is the one-line usage string.
	Usage string

	// Execute runs the command.
	Execute HandlerFunc

	// Complete is the optional completion function.
	Complete CompleteFunc
}

// Spec is the machine-readable command specification returned when a
// caller passes --spec instead of executing.
type Spec struct {
	Domain        string   `json:"domain"`
	Command       string   `json:"command"`
	Aliases       []string `json:"aliases,omitempty"`
	Usage         string   `json:"usage"`
	Description   string   `json:"description"`
	ResourceTypes []string `json:"resource_types,omitempty"`
	Flags         []string `json:"flags"`
}

// specFlags is the fixed flag surface the argument scanner accepts.
var specFlags = []string{
	"--namespace|--ns|-n|-ns <namespace>",
	"--name <name>",
	"--output|-o <json|yaml|table|text|tsv|none>",
	"--spec",
	"--no-color",
}
