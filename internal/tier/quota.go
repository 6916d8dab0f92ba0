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

package tier

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/meshline/meshctl/pkg/errors"
)

// QuotaRule is a named boolean expression gating domain access, e.g.
// `requests_today < 1000`. Rules come from configuration and are
// evaluated against a usage context before any network call.
type QuotaRule struct {
	// Name identifies the rule in denial messages.
	Name string `yaml:"name"`

	// Expression is an expr-lang boolean expression. Empty allows.
	Expression string `yaml:"expression"`

	// Suggestion is the hint shown on denial. Optional.
	Suggestion string `yaml:"suggestion,omitempty"`
}

// QuotaEngine evaluates quota rules, caching compiled programs so
// repeated dispatches do not recompile.
type QuotaEngine struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewQuotaEngine creates an empty engine.
func NewQuotaEngine() *QuotaEngine {
	return &QuotaEngine{cache: make(map[string]*vm.Program)}
}

// Check evaluates every rule against the usage context and returns nil
// when all pass. The first failing rule produces an AccessError naming
// the rule; a rule that cannot compile or does not yield a boolean is
// a configuration defect and surfaces as a ConfigError.
func (e *QuotaEngine) Check(rules []QuotaRule, domain string, usage map[string]interface{}) error {
	for _, rule := range rules {
		if rule.Expression == "" {
			continue
		}

		program, err := e.compile(rule.Expression)
		if err != nil {
			return &errors.ConfigError{
				Key:    "quota." + rule.Name,
				Reason: fmt.Sprintf("expression does not compile: %s", err),
				Cause:  err,
			}
		}

		result, err := expr.Run(program, usage)
		if err != nil {
			return &errors.ConfigError{
				Key:    "quota." + rule.Name,
				Reason: fmt.Sprintf("expression evaluation failed: %s", err),
				Cause:  err,
			}
		}

		passed, ok := result.(bool)
		if !ok {
			return &errors.ConfigError{
				Key:    "quota." + rule.Name,
				Reason: fmt.Sprintf("expression must return boolean, got %T", result),
			}
		}

		if !passed {
			suggestion := rule.Suggestion
			if suggestion == "" {
				suggestion = "upgrade your subscription or wait for the quota window to reset"
			}
			return &errors.AccessError{
				Domain:     domain,
				Rule:       rule.Name,
				Suggestion: suggestion,
			}
		}
	}
	return nil
}

func (e *QuotaEngine) compile(expression string) (*vm.Program, error) {
	e.mu.RLock()
	if prog, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return prog, nil
	}
	e.mu.RUnlock()

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = program
	e.mu.Unlock()
	return program, nil
}
