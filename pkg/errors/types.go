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
)

// ValidationError represents user input validation failures.
// Use this for invalid user input, malformed arguments, or missing
// required fields.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NotFoundError represents a resource not found error.
// Use this when a requested domain, subcommand, or API resource does
// not exist.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "domain", "command", "dns_zone")
	Resource string

	// ID is the identifier that was not found
	ID string

	// Suggestion provides nearest-match guidance, if any
	Suggestion string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// AccessError represents a subscription gate denial: the caller's tier
// or quota does not cover the requested domain. Always recoverable; the
// process continues and no network call is made.
type AccessError struct {
	// Domain is the domain that was denied
	Domain string

	// CallerTier is the caller's subscription tier name
	CallerTier string

	// RequiredTier is the tier the domain requires
	RequiredTier string

	// Rule is the quota rule that failed, if the denial came from a
	// quota rule rather than the tier order
	Rule string

	// Suggestion carries the upgrade hint
	Suggestion string
}

// Error implements the error interface.
func (e *AccessError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("access to %s denied by quota rule %q", e.Domain, e.Rule)
	}
	return fmt.Sprintf("access to %s requires the %s tier (current: %s)", e.Domain, e.RequiredTier, e.CallerTier)
}

// TransportError represents fabric API failures: network errors,
// timeouts, or non-2xx HTTP responses. The dispatch core never retries
// these; retry lives in the transport layer.
type TransportError struct {
	// StatusCode is the HTTP status code (0 for network-level failures)
	StatusCode int

	// Path is the API path that failed
	Path string

	// Message is the human-readable error message
	Message string

	// RequestID correlates this error with server logs
	RequestID string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := "fabric API error"
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, e.StatusCode)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid
// config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "api.base_url")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// AuthError represents authentication problems: missing, expired, or
// rejected credentials.
type AuthError struct {
	// Reason explains the authentication failure
	Reason string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AuthError) Unwrap() error {
	return e.Cause
}
