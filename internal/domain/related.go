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
	"sort"
	"strings"

	"github.com/meshline/meshctl/internal/tier"
)

// Scoring weights for related-domain discovery.
const (
	weightCategory  = 4
	weightUseCase   = 3
	weightProximity = 2
)

// DefaultRelatedLimit caps related-domain results when the caller does
// not supply a limit.
const DefaultRelatedLimit = 5

// DomainsByTier returns every domain a caller at the given tier may
// access, cumulative: requiredTier <= tier, so Enterprise always
// includes Professional's domains and Professional always includes
// Standard's. Unrecognized tiers see everything, matching the
// fail-open access rule. Sorted by name.
func (r *Registry) DomainsByTier(t tier.Tier) []Info {
	if !tier.Known(t) {
		t = tier.Enterprise
	}
	var infos []Info
	for _, name := range r.DomainNames() {
		d := r.domains[name]
		if d.Info.RequiredTier <= t {
			infos = append(infos, d.Info)
		}
	}
	return infos
}

// IsPreviewDomain reports whether the named domain is flagged preview.
// Unknown domains return false rather than erroring.
func (r *Registry) IsPreviewDomain(name string) bool {
	d, _, _, ok := r.Resolve(name)
	return ok && d.Info.Preview
}

// PreviewDomainsInTier returns the preview domains accessible at the
// given tier. Preview status is orthogonal to tier; this is the
// intersection of both overlays. Sorted by name.
func (r *Registry) PreviewDomainsInTier(t tier.Tier) []Info {
	var infos []Info
	for _, info := range r.DomainsByTier(t) {
		if info.Preview {
			infos = append(infos, info)
		}
	}
	return infos
}

// RelatedDomains scores every other domain against the named one and
// returns the top matches. The score combines generator-emitted
// related references (their own weights), category match, use-case
// keyword overlap, and tier proximity; ties break by domain name for
// determinism. Unknown domains return nil.
func (r *Registry) RelatedDomains(name string, limit int) []Info {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	base, canonical, _, ok := r.Resolve(name)
	if !ok {
		return nil
	}

	explicit := make(map[string]int, len(base.Info.Related))
	for _, ref := range base.Info.Related {
		explicit[strings.ToLower(ref.Name)] = ref.Weight
	}
	baseKeywords := useCaseKeywords(base.Info.UseCases)

	type scored struct {
		info  Info
		score int
	}
	var candidates []scored

	for _, other := range r.DomainNames() {
		if other == canonical {
			continue
		}
		d := r.domains[other]
		score := explicit[other]

		if d.Info.Category == base.Info.Category {
			score += weightCategory
		}
		if overlaps(baseKeywords, useCaseKeywords(d.Info.UseCases)) {
			score += weightUseCase
		}
		score += proximityScore(base.Info.RequiredTier, d.Info.RequiredTier)

		if score > 0 {
			candidates = append(candidates, scored{info: d.Info, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].info.Name < candidates[j].info.Name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	infos := make([]Info, len(candidates))
	for i, c := range candidates {
		infos[i] = c.info
	}
	return infos
}

// proximityScore awards full weight for an identical required tier and
// half for an adjacent one.
func proximityScore(a, b tier.Tier) int {
	switch diff := a - b; {
	case diff == 0:
		return weightProximity
	case diff == 1 || diff == -1:
		return weightProximity / 2
	default:
		return 0
	}
}

// useCaseKeywords tokenizes use-case strings into a lower-case word
// set, dropping short stop-ish words.
func useCaseKeywords(useCases []string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, uc := range useCases {
		for _, word := range strings.Fields(strings.ToLower(uc)) {
			word = strings.Trim(word, ".,;:()")
			if len(word) > 3 {
				keywords[word] = struct{}{}
			}
		}
	}
	return keywords
}

func overlaps(a, b map[string]struct{}) bool {
	for word := range a {
		if _, ok := b[word]; ok {
			return true
		}
	}
	return false
}
