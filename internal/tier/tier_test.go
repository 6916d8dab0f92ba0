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

package tier

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Tier
		wantOK bool
	}{
		{"standard", Standard, true},
		{"Professional", Professional, true},
		{"  ENTERPRISE  ", Enterprise, true},
		{"platinum", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidateAccess(t *testing.T) {
	tests := []struct {
		name     string
		caller   Tier
		required Tier
		want     bool
	}{
		{"same tier", Standard, Standard, true},
		{"higher tier", Enterprise, Standard, true},
		{"adjacent higher", Professional, Standard, true},
		{"lower tier denied", Standard, Professional, false},
		{"two below denied", Standard, Enterprise, false},
		{"unknown caller fails open", Tier(99), Enterprise, true},
		{"zero caller fails open", Tier(0), Professional, true},
		{"negative caller fails open", Tier(-1), Standard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAccess(tt.caller, tt.required); got != tt.want {
				t.Errorf("ValidateAccess(%v, %v) = %v, want %v", tt.caller, tt.required, got, tt.want)
			}
		})
	}
}

// Access is cumulative: granting a tier grants everything below it.
func TestValidateAccessMonotonic(t *testing.T) {
	for _, required := range []Tier{Standard, Professional, Enterprise} {
		for caller := Standard; caller <= Enterprise; caller++ {
			if ValidateAccess(caller, required) && caller < Enterprise {
				if !ValidateAccess(caller+1, required) {
					t.Errorf("access granted at %v but denied at %v for required %v", caller, caller+1, required)
				}
			}
		}
	}
}

func TestTierString(t *testing.T) {
	if Standard.String() != "standard" || Tier(42).String() != "unknown" {
		t.Errorf("unexpected String() values: %q, %q", Standard.String(), Tier(42).String())
	}
}
