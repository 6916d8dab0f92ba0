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

package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/completion"
	"github.com/meshline/meshctl/internal/jq"
	"github.com/meshline/meshctl/internal/output"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/pkg/errors"
)

// apiQueryCommand builds the raw-access command of the api domain: a
// GET against an arbitrary fabric path with an optional jq filter
// applied to the response.
func apiQueryCommand() *CommandDefinition {
	executor := jq.NewExecutor(0, 0)
	return &CommandDefinition{
		Name:   "query",
		Short:  "Raw GET with a jq filter",
		Medium: "Fetch an arbitrary fabric API path and filter the response with a jq expression",
		Long:   "Fetch an arbitrary fabric API path with GET and optionally filter the decoded response with a jq expression. The first positional token is the path; the second is the jq expression.",
		Usage:  "api query <path> [jq-expression] [-o <format>]",
		Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
			c, err := requireClient(sess)
			if err != nil {
				return nil, err
			}
			if parsed.Name == "" {
				return nil, &errors.ValidationError{
					Field:      "path",
					Message:    "an API path is required",
					Suggestion: "usage: api query <path> [jq-expression]",
				}
			}

			resp, err := c.Get(ctx, parsed.Name)
			if err != nil {
				return nil, err
			}

			data := resp.Data
			if len(parsed.Residual) > 0 {
				expression := strings.Join(parsed.Residual, " ")
				data, err = executor.Execute(ctx, expression, data)
				if err != nil {
					return nil, &errors.ValidationError{
						Field:      "jq-expression",
						Message:    err.Error(),
						Suggestion: "check the jq expression syntax",
					}
				}
			}

			lines, err := renderLines(data, parsed, sess)
			if err != nil {
				return nil, err
			}
			return Success(lines...), nil
		},
	}
}

// namespaceCommands builds the namespace domain: switching the session
// namespace, showing the active one, and listing what the fabric knows.
func namespaceCommands() []*CommandDefinition {
	return []*CommandDefinition{
		{
			Name:    "set",
			Aliases: []string{"use"},
			Short:   "Switch the active namespace",
			Medium:  "Switch the session's active namespace",
			Long:    "Switch the session's active namespace. An empty name restores the default namespace. The REPL prompt reflects the change.",
			Usage:   "namespace set <name>",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				sess.SetNamespace(parsed.Name)
				result := Success(fmt.Sprintf("namespace set to %q", sess.Namespace()))
				result.ContextChanged = true
				return result, nil
			},
		},
		{
			Name:   "current",
			Short:  "Show the active namespace",
			Medium: "Show the session's active namespace",
			Usage:  "namespace current",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				return Success(sess.Namespace()), nil
			},
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Short:   "List namespaces",
			Medium:  "List the namespaces visible to the caller",
			Usage:   "namespace list [-o <format>]",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				c, err := requireClient(sess)
				if err != nil {
					return nil, err
				}
				resp, err := c.Get(ctx, "api/web/namespaces")
				if err != nil {
					return nil, err
				}
				lines, err := renderLines(resp.Data, parsed, sess)
				if err != nil {
					return nil, err
				}
				return Success(lines...), nil
			},
			Complete: func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion {
				s := &completion.Suggester{
					Live: completion.LiveFunc(func(ctx context.Context, partial string) ([]completion.Suggestion, error) {
						c := sess.Client()
						if c == nil {
							return nil, completion.ErrUnavailable
						}
						resp, err := c.Get(ctx, "api/web/namespaces")
						if err != nil {
							return nil, completion.ErrUnavailable
						}
						names := extractNames(resp.Data)
						if names == nil {
							return nil, completion.ErrUnavailable
						}
						out := make([]completion.Suggestion, 0, len(names))
						for _, name := range names {
							out = append(out, completion.Suggestion{Text: name, Description: "namespace"})
						}
						return out, nil
					}),
					Static:      []completion.Suggestion{{Text: session.DefaultNamespace, Description: "namespace"}},
					Fingerprint: sess.AuthFingerprint,
				}
				return s.Complete(ctx, partial)
			},
		},
	}
}

// chatCommands builds the assistant domain. "ask" reconstructs the
// question from the positional tokens the scanner split apart.
func chatCommands() []*CommandDefinition {
	return []*CommandDefinition{
		{
			Name:   "start",
			Short:  "Enter chat mode",
			Medium: "Switch the REPL into the interactive assistant sub-mode",
			Usage:  "chat start",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				result := Success("entering chat mode (empty line to leave)")
				result.EnterChatMode = true
				return result, nil
			},
		},
		{
			Name:   "ask",
			Short:  "Ask the assistant",
			Medium: "Send one question to the fabric assistant",
			Long:   "Send one question to the fabric assistant and print the answer with suggested follow-ups. The question is everything after 'ask'.",
			Usage:  "chat ask <question...>",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				c, err := requireClient(sess)
				if err != nil {
					return nil, err
				}

				question := strings.TrimSpace(strings.Join(append([]string{parsed.Name}, parsed.Residual...), " "))
				if question == "" {
					return nil, &errors.ValidationError{
						Field:      "question",
						Message:    "a question is required",
						Suggestion: "usage: chat ask <question...>",
					}
				}

				record := sess.RecordQuery(question, nil)
				resp, err := c.Post(ctx, "api/assistant/query", map[string]interface{}{
					"query_id":  record.ID,
					"query":     question,
					"namespace": parsed.Namespace,
				})
				if err != nil {
					return nil, err
				}

				answer, followUps := decodeAssistant(resp.Data)
				sess.RecordQuery(question, followUps)

				lines := []string{answer}
				if len(followUps) > 0 {
					lines = append(lines, "", "Follow-ups:")
					for _, fu := range followUps {
						lines = append(lines, "  - "+fu)
					}
				}
				return Success(lines...), nil
			},
			Complete: func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion {
				// Follow-ups from the last answer are the suggestions.
				var static []completion.Suggestion
				if last := sess.LastQuery(); last != nil {
					for _, fu := range last.FollowUps {
						static = append(static, completion.Suggestion{Text: fu, Description: "follow-up"})
					}
				}
				s := &completion.Suggester{Static: static, Fingerprint: sess.AuthFingerprint}
				return s.Complete(ctx, partial)
			},
		},
		{
			Name:   "last",
			Short:  "Show the last question",
			Medium: "Show the most recent assistant question and its follow-ups",
			Usage:  "chat last",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				last := sess.LastQuery()
				if last == nil {
					return Success("no assistant queries in this session"), nil
				}
				lines := []string{
					"id:    " + last.ID,
					"query: " + last.Text,
				}
				for _, fu := range last.FollowUps {
					lines = append(lines, "  - "+fu)
				}
				return Success(lines...), nil
			},
		},
	}
}

// decodeAssistant extracts the answer text and follow-up list from an
// assistant response payload, tolerating absent fields.
func decodeAssistant(data interface{}) (string, []string) {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return fmt.Sprint(data), nil
	}
	answer, _ := obj["answer"].(string)
	if answer == "" {
		answer = "(no answer)"
	}
	var followUps []string
	if raw, ok := obj["follow_ups"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				followUps = append(followUps, s)
			}
		}
	}
	return answer, followUps
}

// subscriptionCommands builds the subscription domain, exposing the
// tier gate's own views: the caller's tier, the cumulative accessible
// domain list, preview overlays, and related-domain discovery. The
// registry is resolved lazily because these commands are part of it.
func subscriptionCommands(registry func() *Registry) []*CommandDefinition {
	return []*CommandDefinition{
		{
			Name:   "show",
			Short:  "Show the subscription tier",
			Medium: "Show the caller's subscription tier and validation state",
			Usage:  "subscription show",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				lines := []string{
					"tier:            " + sess.Tier().String(),
					fmt.Sprintf("token validated: %t", sess.TokenValidated()),
				}
				return Success(lines...), nil
			},
		},
		{
			Name:   "domains",
			Short:  "List accessible domains",
			Medium: "List every domain the caller's tier can access",
			Long:   "List every domain the caller's tier can access. Access is cumulative: each tier includes everything the tiers below it cover. Preview domains are marked.",
			Usage:  "subscription domains",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				var lines []string
				for _, info := range registry().DomainsByTier(sess.Tier()) {
					line := fmt.Sprintf("%-16s %-12s %s", info.Name, info.RequiredTier.String(), info.Short)
					if info.Preview {
						line += " (preview)"
					}
					lines = append(lines, line)
				}
				return Success(lines...), nil
			},
		},
		{
			Name:   "preview",
			Short:  "List preview domains",
			Medium: "List the preview domains available at the caller's tier",
			Usage:  "subscription preview",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				infos := registry().PreviewDomainsInTier(sess.Tier())
				if len(infos) == 0 {
					return Success("no preview domains at tier " + sess.Tier().String()), nil
				}
				var lines []string
				for _, info := range infos {
					lines = append(lines, fmt.Sprintf("%-16s %s", info.Name, info.Short))
				}
				return Success(lines...), nil
			},
		},
		{
			Name:   "related",
			Short:  "Discover related domains",
			Medium: "Show the domains most related to a given one",
			Usage:  "subscription related <domain>",
			Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
				if parsed.Name == "" {
					return nil, &errors.ValidationError{
						Field:      "domain",
						Message:    "a domain name is required",
						Suggestion: "usage: subscription related <domain>",
					}
				}
				infos := registry().RelatedDomains(parsed.Name, DefaultRelatedLimit)
				if infos == nil {
					return nil, &errors.NotFoundError{
						Resource:   "domain",
						ID:         parsed.Name,
						Suggestion: "see 'subscription domains' for the available domains",
					}
				}
				var lines []string
				for _, info := range infos {
					lines = append(lines, fmt.Sprintf("%-16s %s", info.Name, info.Short))
				}
				return Success(lines...), nil
			},
			Complete: func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion {
				var static []completion.Suggestion
				for _, name := range registry().DomainNames() {
					static = append(static, completion.Suggestion{Text: name, Description: "domain"})
				}
				s := &completion.Suggester{Static: static, Fingerprint: sess.AuthFingerprint}
				return s.Complete(ctx, partial)
			},
		},
	}
}

// exitCommand builds the session-terminating command shared by the
// REPL and headless front-ends.
func exitCommand() *CommandDefinition {
	return &CommandDefinition{
		Name:    "exit",
		Aliases: []string{"quit"},
		Short:   "End the session",
		Medium:  "End the interactive session",
		Usage:   "session exit",
		Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
			result := Success()
			result.ShouldExit = true
			return result, nil
		},
	}
}

// formatCommand builds the session output-format switcher.
func formatCommand() *CommandDefinition {
	return &CommandDefinition{
		Name:   "format",
		Short:  "Set the session output format",
		Medium: "Set the default output format for this session",
		Usage:  "session format <json|yaml|table|text|tsv|none>",
		Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
			if parsed.Name == "" {
				return Success("output format: " + string(sess.Format())), nil
			}
			sess.SetFormat(output.ParseFormat(parsed.Name))
			return Success("output format set to " + string(sess.Format())), nil
		},
	}
}
