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

package args

import (
	"reflect"
	"testing"

	"github.com/meshline/meshctl/internal/output"
)

func typeSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func TestParse(t *testing.T) {
	known := typeSet("dns_zone", "dns_load_balancer")

	tests := []struct {
		name   string
		tokens []string
		known  map[string]struct{}
		want   ParsedArgs
	}{
		{
			name:   "empty input",
			tokens: nil,
			known:  known,
			want:   ParsedArgs{},
		},
		{
			name:   "type then name",
			tokens: []string{"dns_zone", "example.com"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "example.com"},
		},
		{
			name:   "type matched case-insensitively",
			tokens: []string{"DNS_Zone", "example.com"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "example.com"},
		},
		{
			name:   "unknown first positional becomes the name",
			tokens: []string{"example.com"},
			known:  known,
			want:   ParsedArgs{Name: "example.com"},
		},
		{
			name:   "nil type set never matches",
			tokens: []string{"dns_zone"},
			known:  nil,
			want:   ParsedArgs{Name: "dns_zone"},
		},
		{
			name:   "flags before positionals",
			tokens: []string{"--namespace", "prod", "dns_zone", "example.com"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "example.com", Namespace: "prod"},
		},
		{
			name:   "flags after positionals",
			tokens: []string{"dns_zone", "example.com", "-n", "prod"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "example.com", Namespace: "prod"},
		},
		{
			name:   "all namespace aliases equivalent",
			tokens: []string{"--ns", "prod"},
			known:  known,
			want:   ParsedArgs{Namespace: "prod"},
		},
		{
			name:   "name flag wins over positional",
			tokens: []string{"--name", "flagged", "positional"},
			known:  known,
			want:   ParsedArgs{Name: "flagged", Residual: []string{"positional"}},
		},
		{
			name:   "positional before name flag is displaced",
			tokens: []string{"positional", "--name", "flagged"},
			known:  known,
			want:   ParsedArgs{Name: "flagged"},
		},
		{
			name:   "output flag parsed",
			tokens: []string{"-o", "json"},
			known:  known,
			want:   ParsedArgs{Output: output.FormatJSON},
		},
		{
			name:   "unrecognized format falls back to table",
			tokens: []string{"--output", "bogus"},
			known:  known,
			want:   ParsedArgs{Output: output.FormatTable},
		},
		{
			name:   "boolean flags",
			tokens: []string{"--spec", "--no-color"},
			known:  known,
			want:   ParsedArgs{Spec: true, NoColor: true},
		},
		{
			name:   "value flag at end of line is ignored",
			tokens: []string{"dns_zone", "--namespace"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone"},
		},
		{
			name:   "flag does not consume a following flag",
			tokens: []string{"--namespace", "--spec"},
			known:  known,
			want:   ParsedArgs{Spec: true},
		},
		{
			name:   "unknown flag and value go to residual",
			tokens: []string{"--force", "yes", "dns_zone", "example.com"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "example.com", Residual: []string{"--force", "yes"}},
		},
		{
			name:   "extra positionals go to residual",
			tokens: []string{"dns_zone", "first", "second", "third"},
			known:  known,
			want:   ParsedArgs{ResourceType: "dns_zone", Name: "first", Residual: []string{"second", "third"}},
		},
		{
			name:   "only first positional is type-tested",
			tokens: []string{"example.com", "dns_zone"},
			known:  known,
			want:   ParsedArgs{Name: "example.com", Residual: []string{"dns_zone"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.tokens, tt.known)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%v) = %+v, want %+v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestParseNeverInjectsNamespace(t *testing.T) {
	got := Parse([]string{"dns_zone", "example.com"}, typeSet("dns_zone"))
	if got.Namespace != "" {
		t.Errorf("Namespace = %q, want empty: merging the session default is the dispatcher's job", got.Namespace)
	}
}
