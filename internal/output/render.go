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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Render formats arbitrary decoded API data in the requested format.
// Rendering is pure; it is called after a command result is produced
// and is never part of the dispatch contract itself.
func Render(data interface{}, format Format) (string, error) {
	if data == nil || format == FormatNone {
		return "", nil
	}

	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("rendering json: %w", err)
		}
		return string(encoded), nil

	case FormatYAML:
		encoded, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("rendering yaml: %w", err)
		}
		return strings.TrimRight(string(encoded), "\n"), nil

	case FormatTSV:
		return renderColumns(data, false)

	case FormatText:
		return renderText(data), nil

	case FormatTable:
		fallthrough
	default:
		return renderColumns(data, true)
	}
}

// renderColumns renders rows of maps as aligned columns (aligned=true)
// or raw tab-separated values (aligned=false). Non-tabular data
// degrades to text rendering.
func renderColumns(data interface{}, aligned bool) (string, error) {
	rows, ok := tabularRows(data)
	if !ok {
		return renderText(data), nil
	}

	headers := columnHeaders(rows)
	if len(headers) == 0 {
		return "", nil
	}

	var sb strings.Builder
	var w *tabwriter.Writer
	if aligned {
		w = tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	}

	writeLine := func(fields []string) {
		line := strings.Join(fields, "\t")
		if aligned {
			fmt.Fprintln(w, line)
		} else {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	writeLine(upperAll(headers))
	for _, row := range rows {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = cellString(row[h])
		}
		writeLine(fields)
	}

	if aligned {
		if err := w.Flush(); err != nil {
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// tabularRows coerces data into a slice of string-keyed maps. Accepts
// a single object, a list of objects, or a fabric list envelope
// ({"items": [...]}).
func tabularRows(data interface{}) ([]map[string]interface{}, bool) {
	if obj, ok := data.(map[string]interface{}); ok {
		if items, ok := obj["items"].([]interface{}); ok {
			return tabularRows(items)
		}
		return []map[string]interface{}{obj}, true
	}

	list, ok := data.([]interface{})
	if !ok {
		return nil, false
	}
	rows := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		row, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		rows = append(rows, row)
	}
	return rows, true
}

// columnHeaders returns the union of row keys, name-ish keys first,
// remainder sorted for deterministic output.
func columnHeaders(rows []map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var headers []string
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				headers = append(headers, key)
			}
		}
	}

	sort.Slice(headers, func(i, j int) bool {
		pi, pj := headerRank(headers[i]), headerRank(headers[j])
		if pi != pj {
			return pi < pj
		}
		return headers[i] < headers[j]
	})
	return headers
}

func headerRank(key string) int {
	switch key {
	case "name":
		return 0
	case "namespace":
		return 1
	default:
		return 2
	}
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; print integers without a point.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}

// renderText renders data as plain text: scalars verbatim, maps as
// sorted "key: value" lines, lists one element per line.
func renderText(data interface{}) string {
	switch val := data.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, cellString(val[k])))
		}
		return strings.Join(lines, "\n")
	case []interface{}:
		lines := make([]string, 0, len(val))
		for _, item := range val {
			lines = append(lines, cellString(item))
		}
		return strings.Join(lines, "\n")
	default:
		return cellString(val)
	}
}
