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
	"fmt"
	"sort"
	"strings"
)

// Domain is one registry entry: the static metadata plus the commands
// and resource types the domain exposes.
type Domain struct {
	// Info is the generated domain metadata.
	Info Info

	// ResourceTypes is the set of resource type tokens the argument
	// scanner recognizes for this domain, keyed lower-case.
	ResourceTypes map[string]struct{}

	commands map[string]*CommandDefinition
	index    map[string]*CommandDefinition
}

// Command resolves a subcommand by canonical name or alias. Alias and
// canonical lookup are indistinguishable to callers.
func (d *Domain) Command(name string) (*CommandDefinition, bool) {
	def, ok := d.index[strings.ToLower(name)]
	return def, ok
}

// CommandNames returns the canonical subcommand names, sorted.
func (d *Domain) CommandNames() []string {
	names := make([]string, 0, len(d.commands))
	for name := range d.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourceTypeNames returns the domain's resource types, sorted.
func (d *Domain) ResourceTypeNames() []string {
	names := make([]string, 0, len(d.ResourceTypes))
	for name := range d.ResourceTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry maps domain and subcommand names to command definitions.
// It is built once at process start from the generated tables and
// passed by reference to the executor; it is never mutated afterwards
// and never reached through ambient globals.
type Registry struct {
	domains    map[string]*Domain
	deprecated map[string]string
}

// Entry is the table-generator input for one domain.
type Entry struct {
	Info          Info
	ResourceTypes []string
	Commands      []*CommandDefinition
}

// NewRegistry builds a registry from generated entries plus a mapping
// of deprecated domain names to their replacements. Duplicate domain
// names, duplicate command names or aliases within a domain, and
// deprecation targets that do not exist are construction errors:
// domain existence is validated here, once, not on every lookup.
func NewRegistry(entries []Entry, deprecated map[string]string) (*Registry, error) {
	r := &Registry{
		domains:    make(map[string]*Domain, len(entries)),
		deprecated: make(map[string]string, len(deprecated)),
	}

	for _, entry := range entries {
		name := strings.ToLower(entry.Info.Name)
		if name == "" {
			return nil, fmt.Errorf("registry: domain with empty name")
		}
		if _, exists := r.domains[name]; exists {
			return nil, fmt.Errorf("registry: duplicate domain %q", name)
		}

		d := &Domain{
			Info:          entry.Info,
			ResourceTypes: make(map[string]struct{}, len(entry.ResourceTypes)),
			commands:      make(map[string]*CommandDefinition, len(entry.Commands)),
			index:         make(map[string]*CommandDefinition),
		}
		for _, rt := range entry.ResourceTypes {
			d.ResourceTypes[strings.ToLower(rt)] = struct{}{}
		}
		for _, def := range entry.Commands {
			cname := strings.ToLower(def.Name)
			if _, exists := d.index[cname]; exists {
				return nil, fmt.Errorf("registry: duplicate command %q in domain %q", cname, name)
			}
			d.commands[cname] = def
			d.index[cname] = def
			for _, alias := range def.Aliases {
				lalias := strings.ToLower(alias)
				if _, exists := d.index[lalias]; exists {
					return nil, fmt.Errorf("registry: alias %q collides in domain %q", lalias, name)
				}
				d.index[lalias] = def
			}
		}
		r.domains[name] = d
	}

	for old, replacement := range deprecated {
		lold, lnew := strings.ToLower(old), strings.ToLower(replacement)
		if _, exists := r.domains[lold]; exists {
			return nil, fmt.Errorf("registry: deprecated name %q shadows a live domain", lold)
		}
		if _, exists := r.domains[lnew]; !exists {
			return nil, fmt.Errorf("registry: deprecation of %q targets unknown domain %q", lold, lnew)
		}
		r.deprecated[lold] = lnew
	}

	return r, nil
}

// Resolve finds a domain by name, following the deprecation mapping.
// The boolean deprecated return tells the executor to surface a
// non-fatal notice; resolution converges to the same *Domain a direct
// lookup by canonical name yields.
func (r *Registry) Resolve(name string) (d *Domain, canonical string, deprecated bool, ok bool) {
	lower := strings.ToLower(name)
	if replacement, isDeprecated := r.deprecated[lower]; isDeprecated {
		lower = replacement
		deprecated = true
	}
	d, ok = r.domains[lower]
	if !ok {
		return nil, "", false, false
	}
	return d, lower, deprecated, true
}

// Lookup resolves a command definition by domain and subcommand name,
// following deprecation and alias mappings. Returns false when either
// level is absent.
func (r *Registry) Lookup(domainName, command string) (*CommandDefinition, bool) {
	d, _, _, ok := r.Resolve(domainName)
	if !ok {
		return nil, false
	}
	return d.Command(command)
}

// DomainNames returns all canonical domain names, sorted.
func (r *Registry) DomainNames() []string {
	names := make([]string, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeprecatedNames returns the deprecated domain names, sorted. Each
// resolves through the deprecation mapping to a live domain.
func (r *Registry) DeprecatedNames() []string {
	names := make([]string, 0, len(r.deprecated))
	for name := range r.deprecated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NearestDomains returns best-effort suggestions for an unknown domain
// name: domains sharing a prefix with the input, or all domains when
// nothing shares one. Not required to be exhaustive.
func (r *Registry) NearestDomains(input string, limit int) []string {
	if limit <= 0 {
		limit = 5
	}
	lower := strings.ToLower(input)
	var matched []string
	for _, name := range r.DomainNames() {
		if sharedPrefix(name, lower) > 0 {
			matched = append(matched, name)
		}
	}
	if matched == nil {
		matched = r.DomainNames()
	}
	sort.Slice(matched, func(i, j int) bool {
		pi, pj := sharedPrefix(matched[i], lower), sharedPrefix(matched[j], lower)
		if pi != pj {
			return pi > pj
		}
		return matched[i] < matched[j]
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
