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

// Package session holds the mutable per-run state of one REPL run or
// one headless connection. A session is owned by exactly one dispatch
// loop; there are no concurrent writers and no cross-session sharing,
// so no locking. All mutation goes through setters.
package session

import (
	"github.com/google/uuid"

	"github.com/meshline/meshctl/internal/client"
	"github.com/meshline/meshctl/internal/output"
	"github.com/meshline/meshctl/internal/tier"
)

// DefaultNamespace is the namespace used when none is set. The session
// namespace is never empty; clearing it restores this value.
const DefaultNamespace = "default"

// AIQuery is the bounded record of the most recent assistant query,
// used only by the chat subsystem to offer follow-ups.
type AIQuery struct {
	// ID is the query identifier assigned by this client.
	ID string

	// Text is the question as asked.
	Text string

	// FollowUps are suggested follow-up questions from the assistant.
	FollowUps []string
}

// Session is the mutable state of one running client.
type Session struct {
	id             string
	namespace      string
	format         output.Format
	apiClient      *client.Client
	tokenValidated bool
	callerTier     tier.Tier
	lastQuery      *AIQuery
}

// New creates a session with defaults: namespace "default", table
// output, unauthenticated, Standard tier.
func New() *Session {
	return &Session{
		id:         uuid.New().String(),
		namespace:  DefaultNamespace,
		format:     output.DefaultFormat,
		callerTier: tier.Standard,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Namespace returns the active namespace. Never empty.
func (s *Session) Namespace() string { return s.namespace }

// SetNamespace changes the active namespace. An empty value restores
// the default rather than leaving the session without one.
func (s *Session) SetNamespace(ns string) {
	if ns == "" {
		ns = DefaultNamespace
	}
	s.namespace = ns
}

// Format returns the session output format.
func (s *Session) Format() output.Format { return s.format }

// SetFormat changes the session output format. Invalid values are
// replaced with the default.
func (s *Session) SetFormat(f output.Format) {
	if !f.Valid() {
		f = output.DefaultFormat
	}
	s.format = f
}

// Client returns the fabric API client, or nil when unauthenticated.
func (s *Session) Client() *client.Client { return s.apiClient }

// TokenValidated reports whether the current credentials have been
// confirmed against the fabric.
func (s *Session) TokenValidated() bool { return s.tokenValidated }

// SetClient installs (or clears) the API client. Clearing also resets
// the validated flag.
func (s *Session) SetClient(c *client.Client, validated bool) {
	s.apiClient = c
	if c == nil {
		validated = false
	}
	s.tokenValidated = validated
}

// Tier returns the caller's subscription tier.
func (s *Session) Tier() tier.Tier { return s.callerTier }

// SetTier records the caller's subscription tier as resolved from the
// subscription context. Unrecognized values are stored as-is; the
// access gate fails open on them.
func (s *Session) SetTier(t tier.Tier) { s.callerTier = t }

// AuthFingerprint identifies the credential context for cache keying.
func (s *Session) AuthFingerprint() string {
	if s.apiClient == nil {
		return "anonymous"
	}
	return s.apiClient.AuthFingerprint()
}

// RecordQuery stores the last assistant query, replacing any previous
// record. The record is bounded to a single entry by contract.
func (s *Session) RecordQuery(text string, followUps []string) *AIQuery {
	s.lastQuery = &AIQuery{
		ID:        uuid.New().String(),
		Text:      text,
		FollowUps: followUps,
	}
	return s.lastQuery
}

// LastQuery returns the most recent assistant query, or nil.
func (s *Session) LastQuery() *AIQuery { return s.lastQuery }
