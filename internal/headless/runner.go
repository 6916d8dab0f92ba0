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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/meshline/meshctl/internal/executor"
	"github.com/meshline/meshctl/internal/log"
	"github.com/meshline/meshctl/internal/session"
	"github.com/meshline/meshctl/pkg/errors"
)

// maxLineBytes bounds one inbound frame (1MB).
const maxLineBytes = 1 << 20

// Runner drives one headless session: a strictly serial loop reading
// frames from in and writing frames to out. All outbound traffic goes
// through one encoder, so ordering on the wire matches processing
// order; in particular a command's output frame is always written
// before the prompt that follows it.
type Runner struct {
	exec   *executor.Executor
	sess   *session.Session
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewRunner wires a headless runner over a transport pair.
func NewRunner(exec *executor.Executor, sess *session.Session, in io.Reader, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{exec: exec, sess: sess, in: in, out: out, logger: logger.With(slog.String(log.SessionIDKey, sess.ID()))}
}

// Run processes frames until an exit message, EOF, or context
// cancellation. A malformed frame is reported as an error frame and
// the channel stays open; only exit and EOF terminate the session.
func (r *Runner) Run(ctx context.Context) error {
	encoder := json.NewEncoder(r.out)

	if err := r.send(encoder, r.prompt()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			if sendErr := r.send(encoder, NewError(fmt.Sprintf("malformed message: %s", err), "send one JSON object per line")); sendErr != nil {
				return sendErr
			}
			continue
		}
		if err := msg.ValidateInbound(); err != nil {
			if sendErr := r.send(encoder, NewError(err.Error(), "")); sendErr != nil {
				return sendErr
			}
			continue
		}

		done, err := r.handle(ctx, encoder, &msg)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading headless input: %w", err)
	}

	// EOF without an exit frame still terminates cleanly.
	return r.send(encoder, NewExit(0))
}

// handle processes one validated inbound frame. The bool return is
// true when the session is over.
func (r *Runner) handle(ctx context.Context, encoder *json.Encoder, msg *Message) (bool, error) {
	switch msg.Type {
	case TypeCommand:
		return r.handleCommand(ctx, encoder, msg)

	case TypeCompletionRequest:
		domainName, command, _, ok := executor.SplitLine(msg.Command)
		if !ok {
			return false, r.send(encoder, NewCompletionResponse(msg.ID, nil))
		}
		suggestions := r.exec.Complete(ctx, domainName, command, msg.Partial, r.sess)
		return false, r.send(encoder, NewCompletionResponse(msg.ID, suggestions))

	case TypeInterrupt:
		// The loop is serial: by the time an interrupt is read, no
		// command is in flight. Acknowledge instead of ignoring it so
		// controllers do not hang waiting for an effect.
		return false, r.send(encoder, NewEvent("interrupt acknowledged: no command in flight"))

	case TypeExit:
		// The final frame echoes the requested code; absent on the wire
		// it stays at the zero default.
		return true, r.send(encoder, NewExit(msg.ExitCode))
	}
	return false, nil
}

func (r *Runner) handleCommand(ctx context.Context, encoder *json.Encoder, msg *Message) (bool, error) {
	domainName, command, rest, ok := executor.SplitLine(msg.Command)
	if !ok {
		// Blank command lines get a fresh prompt and nothing else.
		return false, r.send(encoder, r.prompt())
	}

	result := r.exec.Execute(ctx, domainName, command, rest, r.sess)

	if len(result.Output) > 0 {
		if err := r.send(encoder, NewOutput(result.Output)); err != nil {
			return false, err
		}
	}
	if result.Err != nil {
		if err := r.send(encoder, NewError(result.Err.Error(), errors.Hint(result.Err))); err != nil {
			return false, err
		}
	}
	if result.ShouldExit {
		return true, r.send(encoder, NewExit(0))
	}

	return false, r.send(encoder, r.prompt())
}

// prompt snapshots the session context into a prompt frame.
func (r *Runner) prompt() Message {
	return NewPrompt(PromptContext{
		Namespace:     r.sess.Namespace(),
		Format:        string(r.sess.Format()),
		Tier:          r.sess.Tier().String(),
		Authenticated: r.sess.Client() != nil,
	})
}

func (r *Runner) send(encoder *json.Encoder, msg Message) error {
	if err := encoder.Encode(msg); err != nil {
		return fmt.Errorf("writing headless frame: %w", err)
	}
	r.logger.Debug("frame sent", slog.String(log.EventKey, string(msg.Type)))
	return nil
}
