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

// Package tier implements the subscription gate consulted before any
// network call: tier ordering, access validation, and configurable
// quota rules. Everything here is pure; no I/O.
package tier

import "strings"

// Tier is a subscription level. The order is total: a higher tier is a
// strict superset of every lower tier's domain access.
type Tier int

const (
	// Standard is the entry subscription level.
	Standard Tier = 1
	// Professional includes everything Standard covers.
	Professional Tier = 2
	// Enterprise includes everything Professional covers.
	Enterprise Tier = 3
)

// Names lists the recognized tier names in ascending order.
var Names = []string{"standard", "professional", "enterprise"}

// String returns the lower-case tier name, or "unknown" for values
// outside the recognized range.
func (t Tier) String() string {
	switch t {
	case Standard:
		return "standard"
	case Professional:
		return "professional"
	case Enterprise:
		return "enterprise"
	default:
		return "unknown"
	}
}

// Known reports whether t is one of the recognized tiers.
func Known(t Tier) bool {
	return t >= Standard && t <= Enterprise
}

// Parse resolves a tier name case-insensitively. The second return is
// false for unrecognized names; callers deciding access should pass
// the unrecognized value through to ValidateAccess, which fails open.
func Parse(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return Standard, true
	case "professional":
		return Professional, true
	case "enterprise":
		return Enterprise, true
	default:
		return 0, false
	}
}

// ValidateAccess reports whether a caller at callerTier may invoke
// commands in a domain requiring requiredTier.
//
// An unrecognized caller tier is treated as Enterprise-equivalent:
// when the subscription service starts reporting a tier this build
// does not know, the client must not lock existing users out. The
// server remains the authority; this gate favors availability.
func ValidateAccess(callerTier, requiredTier Tier) bool {
	if !Known(callerTier) {
		return true
	}
	return callerTier >= requiredTier
}
