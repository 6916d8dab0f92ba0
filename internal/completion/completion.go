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

// Package completion implements the two-tier suggestion strategy used
// by the REPL and the headless protocol: a live source that may call
// the fabric API, and a mandatory static fallback that takes over when
// the live source is unavailable. Completion never executes commands.
package completion

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrUnavailable is returned by live sources that cannot currently
// produce suggestions (no client, network failure). The suggester
// swallows it and serves the static fallback.
var ErrUnavailable = errors.New("completion: live suggestions unavailable")

// Suggestion is one ranked completion candidate.
type Suggestion struct {
	// Text is the completion text.
	Text string `json:"text"`

	// Description is optional display context.
	Description string `json:"description,omitempty"`
}

// LiveSource produces suggestions that may require network I/O.
// Implementations return ErrUnavailable (or any error) to signal the
// fallback branch; they must never panic on transport failure.
type LiveSource interface {
	Suggestions(ctx context.Context, partial string) ([]Suggestion, error)
}

// LiveFunc adapts a function to the LiveSource interface.
type LiveFunc func(ctx context.Context, partial string) ([]Suggestion, error)

// Suggestions implements LiveSource.
func (f LiveFunc) Suggestions(ctx context.Context, partial string) ([]Suggestion, error) {
	return f(ctx, partial)
}

// maxCacheEntries bounds the per-suggester prefix cache. The cache is
// per-session by construction (a suggester is owned by one session's
// machinery) and reset wholesale when full.
const maxCacheEntries = 128

// Suggester combines a live source with a static fallback and an
// optional per-session prefix cache.
type Suggester struct {
	// Live is the optional network-backed source.
	Live LiveSource

	// Static is the mandatory fallback list.
	Static []Suggestion

	// Fingerprint identifies the authentication context; a change
	// invalidates cached entries so a credential switch never serves
	// stale results. Nil disables caching.
	Fingerprint func() string

	cache map[string][]Suggestion
}

// Complete returns ranked suggestions for the partial input: live
// results when the live source succeeds, the filtered static fallback
// otherwise. Results whose text has the partial as a prefix rank
// first; ties break lexically.
func (s *Suggester) Complete(ctx context.Context, partial string) []Suggestion {
	if cached, ok := s.cacheGet(partial); ok {
		return cached
	}

	var result []Suggestion
	if s.Live != nil {
		live, err := s.Live.Suggestions(ctx, partial)
		if err == nil {
			result = rank(live, partial)
		}
	}
	if result == nil {
		result = rank(filter(s.Static, partial), partial)
	}

	s.cachePut(partial, result)
	return result
}

func (s *Suggester) cacheKey(partial string) (string, bool) {
	if s.Fingerprint == nil {
		return "", false
	}
	return s.Fingerprint() + "\x00" + partial, true
}

func (s *Suggester) cacheGet(partial string) ([]Suggestion, bool) {
	key, ok := s.cacheKey(partial)
	if !ok || s.cache == nil {
		return nil, false
	}
	cached, ok := s.cache[key]
	return cached, ok
}

func (s *Suggester) cachePut(partial string, result []Suggestion) {
	key, ok := s.cacheKey(partial)
	if !ok {
		return
	}
	if s.cache == nil || len(s.cache) >= maxCacheEntries {
		s.cache = make(map[string][]Suggestion)
	}
	s.cache[key] = result
}

// filter keeps suggestions containing the partial (case-insensitive).
// An empty partial keeps everything.
func filter(in []Suggestion, partial string) []Suggestion {
	if partial == "" {
		return append([]Suggestion(nil), in...)
	}
	needle := strings.ToLower(partial)
	var out []Suggestion
	for _, s := range in {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			out = append(out, s)
		}
	}
	return out
}

// rank orders suggestions: prefix matches first, then lexical.
func rank(in []Suggestion, partial string) []Suggestion {
	out := append([]Suggestion(nil), in...)
	needle := strings.ToLower(partial)
	sort.SliceStable(out, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(out[i].Text), needle)
		pj := strings.HasPrefix(strings.ToLower(out[j].Text), needle)
		if pi != pj {
			return pi
		}
		return out[i].Text < out[j].Text
	})
	return out
}
