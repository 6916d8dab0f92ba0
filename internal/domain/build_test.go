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
	"testing"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/session"
)

func TestBuildDefault(t *testing.T) {
	r, err := BuildDefault()
	if err != nil {
		t.Fatalf("BuildDefault() error: %v", err)
	}

	for _, name := range []string{"api", "dns", "load_balancer", "cdn", "site", "security", "waf", "bot_defense", "observability", "namespace", "chat", "session", "subscription"} {
		if _, _, _, ok := r.Resolve(name); !ok {
			t.Errorf("domain %q missing from the default registry", name)
		}
	}

	for old, canonical := range map[string]string{"virtual_host": "load_balancer", "secops": "security"} {
		_, got, deprecated, ok := r.Resolve(old)
		if !ok || !deprecated || got != canonical {
			t.Errorf("Resolve(%q) = (%q, deprecated=%v, ok=%v), want canonical %q", old, got, deprecated, ok, canonical)
		}
	}
}

// The subscription commands read the registry they live in; the lazy
// wiring must be complete by the time the registry is returned.
func TestBuildDefaultSubscriptionWired(t *testing.T) {
	r, err := BuildDefault()
	if err != nil {
		t.Fatalf("BuildDefault() error: %v", err)
	}

	def, ok := r.Lookup("subscription", "domains")
	if !ok {
		t.Fatal("subscription domains command missing")
	}

	result, err := def.Execute(context.Background(), &args.ParsedArgs{}, session.New())
	if err != nil {
		t.Fatalf("subscription domains error: %v", err)
	}
	if result.Status != StatusSuccess || len(result.Output) == 0 {
		t.Errorf("subscription domains = %+v, want success with output", result)
	}
}

func TestBuildDefaultCommandSurface(t *testing.T) {
	r, err := BuildDefault()
	if err != nil {
		t.Fatalf("BuildDefault() error: %v", err)
	}

	tests := []struct {
		domainName string
		command    string
	}{
		{"dns", "list"},
		{"dns", "ls"},
		{"load_balancer", "describe"},
		{"security", "rm"},
		{"api", "query"},
		{"namespace", "set"},
		{"chat", "ask"},
		{"session", "exit"},
	}
	for _, tt := range tests {
		if _, ok := r.Lookup(tt.domainName, tt.command); !ok {
			t.Errorf("Lookup(%q, %q) not found", tt.domainName, tt.command)
		}
	}
}
