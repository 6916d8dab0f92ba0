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

import "github.com/meshline/meshctl/internal/tier"

// BuildDefault constructs the process registry from the generated
// tables plus the subscription domain, whose commands read the
// registry they live in (resolved lazily after construction).
func BuildDefault() (*Registry, error) {
	var registry *Registry
	lookup := func() *Registry { return registry }

	entries := append(tableEntries(), Entry{
		Info: Info{
			Name:         "subscription",
			DisplayName:  "Subscription",
			Short:        "Tier and domain access",
			Medium:       "Inspect the subscription tier and which domains it can reach.",
			Long:         "Inspect the caller's subscription tier, the cumulative set of domains it can reach, preview overlays, and related-domain suggestions.",
			RequiredTier: tier.Standard,
			Category:     CategoryPlatform,
			UseCases:     []string{"checking domain access", "discovering related domains"},
		},
		Commands: subscriptionCommands(lookup),
	})

	built, err := NewRegistry(entries, deprecations)
	if err != nil {
		return nil, err
	}
	registry = built
	return registry, nil
}
