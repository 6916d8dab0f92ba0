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

package errors

import (
	"fmt"
	"testing"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation suggestion",
			err:  &ValidationError{Field: "name", Message: "required", Suggestion: "pass a name"},
			want: "pass a name",
		},
		{
			name: "not found suggestion",
			err:  &NotFoundError{Resource: "domain", ID: "dnz", Suggestion: "did you mean: dns"},
			want: "did you mean: dns",
		},
		{
			name: "access upgrade hint",
			err:  &AccessError{Domain: "waf", Suggestion: "upgrade to enterprise"},
			want: "upgrade to enterprise",
		},
		{
			name: "unauthorized transport",
			err:  &TransportError{StatusCode: 401, Message: "unauthorized"},
			want: "re-authenticate with 'meshctl auth login'",
		},
		{
			name: "forbidden transport",
			err:  &TransportError{StatusCode: 403, Message: "forbidden"},
			want: "re-authenticate with 'meshctl auth login'",
		},
		{
			name: "missing resource transport",
			err:  &TransportError{StatusCode: 404, Message: "not found"},
			want: "check the resource name and namespace spelling",
		},
		{
			name: "server error has no hint",
			err:  &TransportError{StatusCode: 500, Message: "boom"},
			want: "",
		},
		{
			name: "auth error",
			err:  &AuthError{Reason: "not logged in"},
			want: "re-authenticate with 'meshctl auth login'",
		},
		{
			name: "wrapped error still matches",
			err:  fmt.Errorf("dispatch: %w", &AuthError{Reason: "expired"}),
			want: "re-authenticate with 'meshctl auth login'",
		},
		{
			name: "plain error",
			err:  New("opaque"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hint(tt.err); got != tt.want {
				t.Errorf("Hint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	lines := UserMessage(&ValidationError{Field: "name", Message: "required", Suggestion: "pass a name"})
	if len(lines) != 2 {
		t.Fatalf("UserMessage() = %v, want message + hint", lines)
	}
	if lines[0] != "Error: validation failed on name: required" {
		t.Errorf("message line = %q", lines[0])
	}
	if lines[1] != "Hint: pass a name" {
		t.Errorf("hint line = %q", lines[1])
	}

	if lines := UserMessage(New("opaque")); len(lines) != 1 {
		t.Errorf("UserMessage(plain) = %v, want message only", lines)
	}
	if UserMessage(nil) != nil {
		t.Error("UserMessage(nil) should be nil")
	}
}

func TestWrapPreservesTypes(t *testing.T) {
	inner := &NotFoundError{Resource: "domain", ID: "x"}
	wrapped := Wrapf(Wrap(inner, "resolving"), "dispatching %s", "x")

	var nf *NotFoundError
	if !As(wrapped, &nf) || nf != inner {
		t.Errorf("As() failed to recover the wrapped typed error from %v", wrapped)
	}
	if Wrap(nil, "noop") != nil {
		t.Error("Wrap(nil) must be nil")
	}
}
