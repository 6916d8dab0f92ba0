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
	"sort"
	"strings"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/client"
	"github.com/meshline/meshctl/internal/completion"
	"github.com/meshline/meshctl/internal/output"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/pkg/errors"
)

// BuildSpec assembles the machine-readable specification for one
// command in a domain.
func BuildSpec(d *Domain, def *CommandDefinition) Spec {
	return Spec{
		Domain:        d.Info.Name,
		Command:       def.Name,
		Aliases:       def.Aliases,
		Usage:         def.Usage,
		Description:   def.Medium,
		ResourceTypes: d.ResourceTypeNames(),
		Flags:         specFlags,
	}
}

// crudOptions configures the generated command set for one domain.
type crudOptions struct {
	// domainName is the canonical domain, used in paths and messages.
	domainName string

	// resourceTypes lists the domain's resource types.
	resourceTypes []string
}

// crudCommands builds the standard generated command set (list, get,
// create, delete) for a domain whose resources live under
// api/config/namespaces/{namespace}/{resource_type}s.
func crudCommands(opts crudOptions) []*CommandDefinition {
	return []*CommandDefinition{
		{
			Name:     "list",
			Aliases:  []string{"ls"},
			Short:    "List resources",
			Medium:   fmt.Sprintf("List %s resources in the active namespace", opts.domainName),
			Long:     fmt.Sprintf("List %s resources in the active namespace. The resource type defaults to the domain's only type when it has exactly one.", opts.domainName),
			Usage:    fmt.Sprintf("%s list [resource_type] [--namespace <ns>] [-o <format>]", opts.domainName),
			Execute:  listHandler(opts),
			Complete: staticComplete(typeSuggestions(opts.resourceTypes)),
		},
		{
			Name:     "get",
			Aliases:  []string{"describe", "show"},
			Short:    "Get one resource",
			Medium:   fmt.Sprintf("Fetch a single %s resource by name", opts.domainName),
			Long:     fmt.Sprintf("Fetch a single %s resource by name from the active namespace and render it in the requested output format.", opts.domainName),
			Usage:    fmt.Sprintf("%s get [resource_type] <name> [--namespace <ns>] [-o <format>]", opts.domainName),
			Execute:  getHandler(opts),
			Complete: liveNameComplete(opts, typeSuggestions(opts.resourceTypes)),
		},
		{
			Name:     "create",
			Short:    "Create a resource",
			Medium:   fmt.Sprintf("Create a named %s resource with default settings", opts.domainName),
			Long:     fmt.Sprintf("Create a named %s resource with default settings in the active namespace. Detailed configuration is applied with subsequent updates.", opts.domainName),
			Usage:    fmt.Sprintf("%s create [resource_type] <name> [--namespace <ns>]", opts.domainName),
			Execute:  createHandler(opts),
			Complete: staticComplete(typeSuggestions(opts.resourceTypes)),
		},
		{
			Name:     "delete",
			Aliases:  []string{"rm"},
			Short:    "Delete a resource",
			Medium:   fmt.Sprintf("Delete a %s resource by name", opts.domainName),
			Long:     fmt.Sprintf("Delete a %s resource by name from the active namespace.", opts.domainName),
			Usage:    fmt.Sprintf("%s delete [resource_type] <name> [--namespace <ns>]", opts.domainName),
			Execute:  deleteHandler(opts),
			Complete: liveNameComplete(opts, typeSuggestions(opts.resourceTypes)),
		},
	}
}

// requireClient returns the session's API client or the authentication
// error every unauthenticated network command surfaces.
func requireClient(sess *session.Session) (*client.Client, error) {
	if c := sess.Client(); c != nil {
		return c, nil
	}
	return nil, &errors.AuthError{Reason: "not logged in"}
}

// resolveType picks the resource type for a request: the parsed one if
// present, the domain's only type when unambiguous, otherwise a
// validation error naming the candidates.
func resolveType(parsed *args.ParsedArgs, opts crudOptions) (string, error) {
	if parsed.ResourceType != "" {
		return parsed.ResourceType, nil
	}
	if len(opts.resourceTypes) == 1 {
		return opts.resourceTypes[0], nil
	}
	sorted := append([]string(nil), opts.resourceTypes...)
	sort.Strings(sorted)
	return "", &errors.ValidationError{
		Field:      "resource_type",
		Message:    "resource type is required",
		Suggestion: "one of: " + strings.Join(sorted, ", "),
	}
}

// resourcePath builds the fabric config path for a resource type
// collection in a namespace.
func resourcePath(namespace, resourceType string) string {
	return fmt.Sprintf("api/config/namespaces/%s/%ss", namespace, resourceType)
}

// renderLines renders decoded API data with the effective format: the
// per-invocation --output when given, the session format otherwise.
func renderLines(data interface{}, parsed *args.ParsedArgs, sess *session.Session) ([]string, error) {
	format := parsed.Output
	if format == "" {
		format = sess.Format()
	}
	rendered, err := output.Render(data, format)
	if err != nil {
		return nil, err
	}
	if rendered == "" {
		return nil, nil
	}
	return strings.Split(rendered, "\n"), nil
}

func listHandler(opts crudOptions) HandlerFunc {
	return func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
		c, err := requireClient(sess)
		if err != nil {
			return nil, err
		}
		rt, err := resolveType(parsed, opts)
		if err != nil {
			return nil, err
		}

		resp, err := c.Get(ctx, resourcePath(parsed.Namespace, rt))
		if err != nil {
			return nil, err
		}
		lines, err := renderLines(resp.Data, parsed, sess)
		if err != nil {
			return nil, err
		}
		return Success(lines...), nil
	}
}

func getHandler(opts crudOptions) HandlerFunc {
	return func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
		c, err := requireClient(sess)
		if err != nil {
			return nil, err
		}
		rt, err := resolveType(parsed, opts)
		if err != nil {
			return nil, err
		}
		if parsed.Name == "" {
			return nil, &errors.ValidationError{
				Field:      "name",
				Message:    "resource name is required",
				Suggestion: fmt.Sprintf("usage: %s get %s <name>", opts.domainName, rt),
			}
		}

		resp, err := c.Get(ctx, resourcePath(parsed.Namespace, rt)+"/"+parsed.Name)
		if err != nil {
			return nil, err
		}
		lines, err := renderLines(resp.Data, parsed, sess)
		if err != nil {
			return nil, err
		}
		return Success(lines...), nil
	}
}

func createHandler(opts crudOptions) HandlerFunc {
	return func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
		c, err := requireClient(sess)
		if err != nil {
			return nil, err
		}
		rt, err := resolveType(parsed, opts)
		if err != nil {
			return nil, err
		}
		if parsed.Name == "" {
			return nil, &errors.ValidationError{
				Field:      "name",
				Message:    "resource name is required",
				Suggestion: fmt.Sprintf("usage: %s create %s <name>", opts.domainName, rt),
			}
		}

		body := map[string]interface{}{
			"metadata": map[string]interface{}{
				"name":      parsed.Name,
				"namespace": parsed.Namespace,
			},
		}
		if _, err := c.Post(ctx, resourcePath(parsed.Namespace, rt), body); err != nil {
			return nil, err
		}
		return Success(fmt.Sprintf("%s %q created in namespace %q", rt, parsed.Name, parsed.Namespace)), nil
	}
}

func deleteHandler(opts crudOptions) HandlerFunc {
	return func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*Result, error) {
		c, err := requireClient(sess)
		if err != nil {
			return nil, err
		}
		rt, err := resolveType(parsed, opts)
		if err != nil {
			return nil, err
		}
		if parsed.Name == "" {
			return nil, &errors.ValidationError{
				Field:      "name",
				Message:    "resource name is required",
				Suggestion: fmt.Sprintf("usage: %s delete %s <name>", opts.domainName, rt),
			}
		}

		if _, err := c.Delete(ctx, resourcePath(parsed.Namespace, rt)+"/"+parsed.Name); err != nil {
			return nil, err
		}
		return Success(fmt.Sprintf("%s %q deleted from namespace %q", rt, parsed.Name, parsed.Namespace)), nil
	}
}

// typeSuggestions turns resource type names into static suggestions.
func typeSuggestions(resourceTypes []string) []completion.Suggestion {
	sorted := append([]string(nil), resourceTypes...)
	sort.Strings(sorted)
	suggestions := make([]completion.Suggestion, 0, len(sorted))
	for _, rt := range sorted {
		suggestions = append(suggestions, completion.Suggestion{Text: rt, Description: "resource type"})
	}
	return suggestions
}

// staticComplete wraps a static list in the two-tier suggester with no
// live source.
func staticComplete(static []completion.Suggestion) CompleteFunc {
	return func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion {
		s := &completion.Suggester{Static: static, Fingerprint: sess.AuthFingerprint}
		return s.Complete(ctx, partial)
	}
}

// liveNameComplete builds a completion function that asks the fabric
// for live resource names, falling back to the static list on any
// transport failure or when unauthenticated.
func liveNameComplete(opts crudOptions, static []completion.Suggestion) CompleteFunc {
	return func(ctx context.Context, partial string, sess *session.Session) []completion.Suggestion {
		s := &completion.Suggester{
			Live:        liveNameSource(opts, sess),
			Static:      static,
			Fingerprint: sess.AuthFingerprint,
		}
		return s.Complete(ctx, partial)
	}
}

func liveNameSource(opts crudOptions, sess *session.Session) completion.LiveSource {
	return completion.LiveFunc(func(ctx context.Context, partial string) ([]completion.Suggestion, error) {
		c := sess.Client()
		if c == nil || len(opts.resourceTypes) != 1 {
			return nil, completion.ErrUnavailable
		}

		resp, err := c.Get(ctx, resourcePath(sess.Namespace(), opts.resourceTypes[0]))
		if err != nil {
			return nil, completion.ErrUnavailable
		}

		names := extractNames(resp.Data)
		if names == nil {
			return nil, completion.ErrUnavailable
		}
		suggestions := make([]completion.Suggestion, 0, len(names))
		for _, name := range names {
			suggestions = append(suggestions, completion.Suggestion{Text: name, Description: opts.resourceTypes[0]})
		}
		return suggestions, nil
	})
}

// extractNames pulls resource names out of a fabric list payload,
// accepting both bare lists and {"items": [...]} envelopes.
func extractNames(data interface{}) []string {
	if obj, ok := data.(map[string]interface{}); ok {
		if items, ok := obj["items"].([]interface{}); ok {
			return extractNames(items)
		}
		return nil
	}
	list, ok := data.([]interface{})
	if !ok {
		return nil
	}
	var names []string
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok {
			names = append(names, name)
			continue
		}
		if meta, ok := obj["metadata"].(map[string]interface{}); ok {
			if name, ok := meta["name"].(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
