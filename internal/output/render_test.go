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

package output

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{" table ", FormatTable},
		{"tsv", FormatTSV},
		{"text", FormatText},
		{"none", FormatNone},
		{"bogus", DefaultFormat},
		{"", DefaultFormat},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderNone(t *testing.T) {
	got, err := Render(map[string]interface{}{"name": "a"}, FormatNone)
	if err != nil || got != "" {
		t.Errorf("Render(none) = (%q, %v), want empty", got, err)
	}
}

func TestRenderJSON(t *testing.T) {
	got, err := Render(map[string]interface{}{"name": "web"}, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(got, `"name": "web"`) {
		t.Errorf("Render(json) = %q", got)
	}
}

func TestRenderYAML(t *testing.T) {
	got, err := Render(map[string]interface{}{"name": "web"}, FormatYAML)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(got, "name: web") || strings.HasSuffix(got, "\n") {
		t.Errorf("Render(yaml) = %q, want trimmed yaml", got)
	}
}

func TestRenderTableListEnvelope(t *testing.T) {
	data := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"name": "a", "namespace": "default", "replicas": float64(3)},
			map[string]interface{}{"name": "b", "namespace": "prod", "replicas": float64(1)},
		},
	}

	got, err := Render(data, FormatTable)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render(table) = %d lines, want header + 2 rows:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "NAMESPACE") {
		t.Errorf("header = %q, want NAME then NAMESPACE first", lines[0])
	}
	if !strings.Contains(lines[1], "3") {
		t.Errorf("row = %q, want integer rendering without a decimal point", lines[1])
	}
}

func TestRenderTSV(t *testing.T) {
	data := []interface{}{
		map[string]interface{}{"name": "a", "kind": "zone"},
	}
	got, err := Render(data, FormatTSV)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	lines := strings.Split(got, "\n")
	if lines[0] != "NAME\tKIND" {
		t.Errorf("tsv header = %q", lines[0])
	}
	if lines[1] != "a\tzone" {
		t.Errorf("tsv row = %q", lines[1])
	}
}

func TestRenderTableNonTabularDegradesToText(t *testing.T) {
	got, err := Render([]interface{}{"a", "b"}, FormatTable)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "a\nb" {
		t.Errorf("Render(table, scalars) = %q, want text fallback", got)
	}
}

func TestRenderText(t *testing.T) {
	got, err := Render(map[string]interface{}{"b": "2", "a": float64(1)}, FormatText)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "a: 1\nb: 2" {
		t.Errorf("Render(text) = %q, want sorted key: value lines", got)
	}
}

func TestRenderNil(t *testing.T) {
	got, err := Render(nil, FormatJSON)
	if err != nil || got != "" {
		t.Errorf("Render(nil) = (%q, %v), want empty", got, err)
	}
}
