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

import "strings"

// Format is a rendering format for command results.
type Format string

const (
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatTable renders an aligned column table.
	FormatTable Format = "table"
	// FormatText renders plain key/value text.
	FormatText Format = "text"
	// FormatTSV renders tab-separated values for scripting.
	FormatTSV Format = "tsv"
	// FormatNone suppresses payload output.
	FormatNone Format = "none"
)

// DefaultFormat is used when no format is requested or the requested
// string is unrecognized.
const DefaultFormat = FormatTable

// ParseFormat normalizes a format string. Unrecognized values fall
// back to DefaultFormat rather than erroring.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "table":
		return FormatTable
	case "text", "plain":
		return FormatText
	case "tsv":
		return FormatTSV
	case "none":
		return FormatNone
	default:
		return DefaultFormat
	}
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable, FormatText, FormatTSV, FormatNone:
		return true
	default:
		return false
	}
}
