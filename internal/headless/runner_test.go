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

package headless

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/meshline/meshctl/internal/args"
	"github.com/meshline/meshctl/internal/domain"
	"github.com/meshline/meshctl/internal/executor"
	"github.com/meshline/meshctl/internal/log"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/internal/tier"
)

func testRunner(t *testing.T, input string) (*Runner, *bytes.Buffer) {
	t.Helper()

	entries := []domain.Entry{
		{
			Info: domain.Info{Name: "echo", RequiredTier: tier.Standard, Category: domain.CategoryPlatform},
			Commands: []*domain.CommandDefinition{
				{
					Name: "say",
					Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*domain.Result, error) {
						return domain.Success("echo: " + parsed.Name), nil
					},
				},
				{
					Name: "nothing",
					Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*domain.Result, error) {
						return domain.Success(), nil
					},
				},
				{
					Name: "bye",
					Execute: func(ctx context.Context, parsed *args.ParsedArgs, sess *session.Session) (*domain.Result, error) {
						result := domain.Success("leaving")
						result.ShouldExit = true
						return result, nil
					},
				},
			},
		},
	}
	registry, err := domain.NewRegistry(entries, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	logger := log.New(&log.Config{Level: "error", Output: io.Discard})
	exec := executor.New(registry, executor.Options{Logger: logger})

	var out bytes.Buffer
	return NewRunner(exec, session.New(), strings.NewReader(input), &out, logger), &out
}

func decodeFrames(t *testing.T, out *bytes.Buffer) []Message {
	t.Helper()
	var frames []Message
	dec := json.NewDecoder(out)
	for dec.More() {
		var m Message
		if err := dec.Decode(&m); err != nil {
			t.Fatalf("decoding output frame: %v", err)
		}
		frames = append(frames, m)
	}
	return frames
}

func frameTypes(frames []Message) []MessageType {
	types := make([]MessageType, len(frames))
	for i, f := range frames {
		types[i] = f.Type
	}
	return types
}

func run(t *testing.T, input string) []Message {
	t.Helper()
	runner, out := testRunner(t, input)
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return decodeFrames(t, out)
}

func TestRunCommandOrdering(t *testing.T) {
	frames := run(t, `{"type":"command","command":"echo say hello"}`+"\n")

	// Initial prompt, output before the follow-up prompt, final exit on EOF.
	want := []MessageType{TypePrompt, TypeOutput, TypePrompt, TypeExit}
	got := frameTypes(frames)
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
	if frames[1].Lines[0] != "echo: hello" {
		t.Errorf("output = %v", frames[1].Lines)
	}
}

func TestRunZeroOutputCommand(t *testing.T) {
	frames := run(t, `{"type":"command","command":"echo nothing"}`+"\n")

	// No output frame is emitted for an empty result, just the prompt.
	want := []MessageType{TypePrompt, TypePrompt, TypeExit}
	got := frameTypes(frames)
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestRunFailedCommandEmitsError(t *testing.T) {
	frames := run(t, `{"type":"command","command":"missing list"}`+"\n")

	got := frameTypes(frames)
	want := []MessageType{TypePrompt, TypeError, TypePrompt, TypeExit}
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
	if frames[1].Error == "" {
		t.Error("error frame has no message")
	}
}

func TestRunMalformedJSONKeepsChannelOpen(t *testing.T) {
	input := "{not json}\n" + `{"type":"command","command":"echo say still-here"}` + "\n"
	frames := run(t, input)

	got := frameTypes(frames)
	want := []MessageType{TypePrompt, TypeError, TypeOutput, TypePrompt, TypeExit}
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	if !strings.Contains(frames[1].Error, "malformed") {
		t.Errorf("error = %q, want a malformed-message report", frames[1].Error)
	}
	if frames[2].Lines[0] != "echo: still-here" {
		t.Errorf("command after malformed input did not run: %v", frames[2].Lines)
	}
}

func TestRunRejectsUnknownInboundType(t *testing.T) {
	frames := run(t, `{"type":"output","lines":["spoofed"]}`+"\n")

	got := frameTypes(frames)
	if len(got) < 2 || got[1] != TypeError {
		t.Fatalf("frames = %v, want an error frame for an outbound type inbound", got)
	}
}

func TestRunInterruptAcknowledged(t *testing.T) {
	frames := run(t, `{"type":"interrupt"}`+"\n")

	got := frameTypes(frames)
	if len(got) < 2 || got[1] != TypeEvent {
		t.Fatalf("frames = %v, want an event acknowledgement", got)
	}
	if !strings.Contains(frames[1].Event, "no command in flight") {
		t.Errorf("event = %q", frames[1].Event)
	}
}

func TestRunExitMessage(t *testing.T) {
	input := `{"type":"exit"}` + "\n" + `{"type":"command","command":"echo say after"}` + "\n"
	frames := run(t, input)

	got := frameTypes(frames)
	want := []MessageType{TypePrompt, TypeExit}
	if len(got) != len(want) || got[1] != TypeExit {
		t.Fatalf("frames = %v, want %v (nothing after exit)", got, want)
	}
}

func TestRunExitMessageEchoesRequestedCode(t *testing.T) {
	frames := run(t, `{"type":"exit","exit_code":7}`+"\n")

	got := frameTypes(frames)
	if len(got) != 2 || got[1] != TypeExit {
		t.Fatalf("frames = %v, want [prompt exit]", got)
	}
	if frames[1].ExitCode != 7 {
		t.Errorf("ExitCode = %d, want the requested 7", frames[1].ExitCode)
	}
}

func TestRunEOFExitsWithDefaultCode(t *testing.T) {
	frames := run(t, "")

	got := frameTypes(frames)
	if len(got) != 2 || got[1] != TypeExit {
		t.Fatalf("frames = %v, want [prompt exit]", got)
	}
	if frames[1].ExitCode != 0 {
		t.Errorf("ExitCode = %d, want the default 0", frames[1].ExitCode)
	}
}

func TestRunShouldExitResult(t *testing.T) {
	frames := run(t, `{"type":"command","command":"echo bye"}`+"\n")

	got := frameTypes(frames)
	want := []MessageType{TypePrompt, TypeOutput, TypeExit}
	if len(got) != len(want) || got[len(got)-1] != TypeExit {
		t.Fatalf("frames = %v, want %v", got, want)
	}
}

func TestRunTimestampsPresent(t *testing.T) {
	frames := run(t, `{"type":"command","command":"echo say hi"}`+"\n")
	for i, f := range frames {
		if f.Timestamp.IsZero() {
			t.Errorf("frame %d (%s) has a zero timestamp", i, f.Type)
		}
	}
}

func TestValidateInbound(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{"command", Message{Type: TypeCommand, Command: "dns list"}, false},
		{"command without line", Message{Type: TypeCommand}, true},
		{"completion request", Message{Type: TypeCompletionRequest, Command: "dns get", Partial: "zo"}, false},
		{"interrupt", Message{Type: TypeInterrupt}, false},
		{"exit", Message{Type: TypeExit}, false},
		{"missing type", Message{}, true},
		{"outbound type", Message{Type: TypePrompt}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateInbound()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInbound() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
