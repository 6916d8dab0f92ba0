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

// Package args tokenizes a flat domain-command argument list into a
// structured intent. The scanner is deliberately tolerant: malformed
// input degrades to a partial ParsedArgs and never errors. Deciding
// whether required fields are missing is the executor's job.
//
// cobra/pflag handle the program-level flags; this scanner exists
// because domain command lines need semantics pflag cannot express:
// unknown flags are skipped (with best-effort value skipping) instead
// of erroring, and positionals are resolved against a per-domain
// resource type set supplied at parse time.
package args

import (
	"strings"

	"github.com/meshline/meshctl/internal/output"
)

// ParsedArgs is the structured intent of one domain command line.
// Produced fresh per invocation; never persisted.
type ParsedArgs struct {
	// ResourceType is set only when the first positional token matched
	// the domain's known resource types (normalized to lower case).
	ResourceType string

	// Name is the target resource name, from the first unmatched
	// positional token or the --name flag (the flag wins).
	Name string

	// Namespace is the requested namespace. Empty means "use the
	// session default"; the parser never injects it.
	Namespace string

	// Output is the requested output format. Empty means the session
	// format applies.
	Output output.Format

	// Spec requests the machine-readable command specification instead
	// of execution.
	Spec bool

	// NoColor disables styled output.
	NoColor bool

	// Residual holds tokens the scanner could not place: unknown flags
	// (with their skipped values) and extra positionals beyond the
	// first name. Kept for inspection; dispatch ignores them.
	Residual []string
}

// Parse scans tokens left to right with one token of lookahead for
// flag values. knownResourceTypes may be nil, in which case the first
// positional always resolves as the name.
func Parse(tokens []string, knownResourceTypes map[string]struct{}) ParsedArgs {
	var parsed ParsedArgs
	nameFromFlag := false
	sawPositional := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if !strings.HasPrefix(tok, "-") {
			// Positional resolution. The first positional is tested
			// against the domain's resource types; everything else can
			// only become the name, first one wins.
			if !sawPositional {
				sawPositional = true
				if lower := strings.ToLower(tok); isKnownType(lower, knownResourceTypes) {
					parsed.ResourceType = lower
					continue
				}
			}
			if parsed.Name == "" && !nameFromFlag {
				parsed.Name = tok
			} else {
				parsed.Residual = append(parsed.Residual, tok)
			}
			continue
		}

		value, hasValue := lookahead(tokens, i)

		switch tok {
		case "--namespace", "--ns", "-n", "-ns":
			if hasValue {
				parsed.Namespace = value
				i++
			}
		case "--name":
			if hasValue {
				parsed.Name = value
				nameFromFlag = true
				i++
			}
		case "--output", "-o":
			if hasValue {
				parsed.Output = output.ParseFormat(value)
				i++
			}
		case "--spec":
			parsed.Spec = true
		case "--no-color":
			parsed.NoColor = true
		default:
			// Unknown flag: consume a following value token so it does
			// not pollute the positional slots.
			parsed.Residual = append(parsed.Residual, tok)
			if hasValue {
				parsed.Residual = append(parsed.Residual, value)
				i++
			}
		}
	}

	return parsed
}

// lookahead returns the next token when it exists and is not itself a
// flag. A value-taking flag in the final position leaves its field
// unset rather than erroring.
func lookahead(tokens []string, i int) (string, bool) {
	if i+1 >= len(tokens) {
		return "", false
	}
	next := tokens[i+1]
	if strings.HasPrefix(next, "-") {
		return "", false
	}
	return next, true
}

func isKnownType(lower string, known map[string]struct{}) bool {
	if known == nil {
		return false
	}
	_, ok := known[lower]
	return ok
}
