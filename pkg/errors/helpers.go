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
	"errors"
	"fmt"
)

// Wrap creates a new error that wraps the given error with additional context.
// If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Hint extracts the actionable suggestion from an error, if its type
// carries one. Returns the empty string when there is nothing to
// suggest. Every user-visible error path renders as one message line
// plus an optional "Hint:" line built from this value.
func Hint(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Suggestion
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Suggestion
	}

	var access *AccessError
	if errors.As(err, &access) {
		return access.Suggestion
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		switch transport.StatusCode {
		case 401, 403:
			return "re-authenticate with 'meshctl auth login'"
		case 404:
			return "check the resource name and namespace spelling"
		}
		return ""
	}

	var auth *AuthError
	if errors.As(err, &auth) {
		return "re-authenticate with 'meshctl auth login'"
	}

	return ""
}

// UserMessage renders an error as the user-facing lines defined by the
// error contract: the message itself, then a "Hint:" line when a
// suggestion is available.
func UserMessage(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{"Error: " + err.Error()}
	if hint := Hint(err); hint != "" {
		lines = append(lines, "Hint: "+hint)
	}
	return lines
}
