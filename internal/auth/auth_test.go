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

package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meshline/meshctl/internal/tier"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestTierFromToken(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   tier.Tier
		wantOK bool
	}{
		{
			name:   "professional claim",
			token:  "", // filled below
			want:   tier.Professional,
			wantOK: true,
		},
	}
	tests[0].token = signedToken(t, jwt.MapClaims{"tier": "professional"})

	extra := []struct {
		name   string
		token  string
		want   tier.Tier
		wantOK bool
	}{
		{"missing claim", signedToken(t, jwt.MapClaims{"sub": "user"}), 0, false},
		{"unrecognized tier name", signedToken(t, jwt.MapClaims{"tier": "platinum"}), 0, false},
		{"non-string claim", signedToken(t, jwt.MapClaims{"tier": 2}), 0, false},
		{"not a jwt", "opaque-api-token", 0, false},
		{"empty token", "", 0, false},
	}
	tests = append(tests, extra...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TierFromToken(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TierFromToken() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// The claim is read without signature verification: the gate it feeds
// fails open and the server stays authoritative, so a tampered claim
// buys nothing.
func TestTierFromTokenIgnoresSignature(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"tier": "enterprise"}).SignedString([]byte("a-different-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	got, ok := TierFromToken(token)
	if !ok || got != tier.Enterprise {
		t.Errorf("TierFromToken() = (%v, %v), want the claim regardless of key", got, ok)
	}
}
