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

// Package headless implements the machine front-end: newline-delimited
// JSON messages over stdio, one message per line, processed strictly in
// order. The protocol is a tagged union; the type field alone decides
// how a message is interpreted.
package headless

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meshline/meshctl/internal/completion"
)

// MessageType discriminates the protocol union.
type MessageType string

// Inbound message types (controller to client).
const (
	TypeCommand           MessageType = "command"
	TypeCompletionRequest MessageType = "completion_request"
	TypeInterrupt         MessageType = "interrupt"
	TypeExit              MessageType = "exit"
)

// Outbound message types (client to controller).
const (
	TypeOutput             MessageType = "output"
	TypePrompt             MessageType = "prompt"
	TypeCompletionResponse MessageType = "completion_response"
	TypeError              MessageType = "error"
	TypeEvent              MessageType = "event"
)

// PromptContext is the session state echoed with every prompt so the
// controller can track context without issuing queries.
type PromptContext struct {
	Namespace     string `json:"namespace"`
	Format        string `json:"format"`
	Tier          string `json:"tier"`
	Authenticated bool   `json:"authenticated"`
}

// Message is one protocol frame. Exactly the fields implied by Type
// are set; everything else stays at its zero value and is omitted from
// the wire form.
type Message struct {
	// Type tags the union variant.
	Type MessageType `json:"type"`

	// Timestamp is set on every message, inbound ones included.
	Timestamp time.Time `json:"timestamp"`

	// ID correlates a completion_response with its request and gives
	// events a stable identity. Optional on command messages; echoed
	// when present.
	ID string `json:"id,omitempty"`

	// Command is the raw command line (TypeCommand).
	Command string `json:"command,omitempty"`

	// Partial is the token under completion (TypeCompletionRequest).
	Partial string `json:"partial,omitempty"`

	// Lines carries command output (TypeOutput).
	Lines []string `json:"lines,omitempty"`

	// Suggestions answers a completion request (TypeCompletionResponse).
	Suggestions []completion.Suggestion `json:"suggestions,omitempty"`

	// Error and Hint carry a failure (TypeError).
	Error string `json:"error,omitempty"`
	Hint  string `json:"hint,omitempty"`

	// Event names an out-of-band notification (TypeEvent).
	Event string `json:"event,omitempty"`

	// Context accompanies every prompt (TypePrompt).
	Context *PromptContext `json:"context,omitempty"`

	// ExitCode accompanies the final exit message (TypeExit outbound).
	ExitCode int `json:"exit_code,omitempty"`
}

// ValidateInbound checks that a decoded frame is a well-formed inbound
// message. Outbound types arriving on the inbound channel are protocol
// violations, reported but not fatal.
func (m *Message) ValidateInbound() error {
	switch m.Type {
	case TypeCommand:
		if m.Command == "" {
			return fmt.Errorf("command message requires a command field")
		}
		return nil
	case TypeCompletionRequest:
		return nil
	case TypeInterrupt, TypeExit:
		return nil
	case "":
		return fmt.Errorf("message is missing the type field")
	default:
		return fmt.Errorf("unsupported inbound message type %q", m.Type)
	}
}

func newMessage(t MessageType) Message {
	return Message{Type: t, Timestamp: time.Now().UTC()}
}

// NewOutput builds an output frame from command output lines.
func NewOutput(lines []string) Message {
	m := newMessage(TypeOutput)
	m.Lines = lines
	return m
}

// NewPrompt builds a prompt frame carrying the session context.
func NewPrompt(ctx PromptContext) Message {
	m := newMessage(TypePrompt)
	m.Context = &ctx
	return m
}

// NewCompletionResponse builds a completion answer correlated to its
// request.
func NewCompletionResponse(id string, suggestions []completion.Suggestion) Message {
	m := newMessage(TypeCompletionResponse)
	m.ID = id
	m.Suggestions = suggestions
	return m
}

// NewError builds an error frame from message and hint lines.
func NewError(errText, hint string) Message {
	m := newMessage(TypeError)
	m.Error = errText
	m.Hint = hint
	return m
}

// NewEvent builds an out-of-band event frame with a fresh identity.
func NewEvent(event string) Message {
	m := newMessage(TypeEvent)
	m.ID = uuid.New().String()
	m.Event = event
	return m
}

// NewExit builds the final frame of a session.
func NewExit(code int) Message {
	m := newMessage(TypeExit)
	m.ExitCode = code
	return m
}
