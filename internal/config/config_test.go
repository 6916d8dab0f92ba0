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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meshline/meshctl/internal/tier"
	"github.com/meshline/meshctl/pkg/errors"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Default()
	if cfg.Version != want.Version || cfg.API.BaseURL != want.API.BaseURL {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Defaults.Namespace != want.Defaults.Namespace || cfg.Defaults.Format != want.Defaults.Format {
		t.Errorf("defaults = %+v, want %+v", cfg.Defaults, want.Defaults)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "defaults:\n  namespace: prod\n"
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Defaults.Namespace != "prod" {
		t.Errorf("Namespace = %q, want the file value", cfg.Defaults.Namespace)
	}
	if cfg.Defaults.Format != Default().Defaults.Format {
		t.Errorf("Format = %q, want the default for the omitted field", cfg.Defaults.Format)
	}
	if cfg.API.BaseURL == "" || cfg.Log.Level == "" {
		t.Errorf("cfg = %+v, omitted sections not defaulted", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown format", "defaults:\n  format: csv\n"},
		{"unnamed quota rule", "quota:\n  - expression: \"true\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}

			_, err := Load(path)
			var cfgErr *errors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Load() = %v, want *errors.ConfigError", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Defaults.Namespace = "staging"
	cfg.Quota = []tier.QuotaRule{{Name: "cap", Expression: "session_requests < 100"}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Defaults.Namespace != "staging" {
		t.Errorf("Namespace = %q after round trip", loaded.Defaults.Namespace)
	}
	if len(loaded.Quota) != 1 || loaded.Quota[0].Name != "cap" {
		t.Errorf("Quota = %+v after round trip", loaded.Quota)
	}
}

func TestSaveIsAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestLockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	holder, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	if err := holder.Lock(); err != nil {
		t.Fatalf("Lock() error: %v", err)
	}
	defer holder.Unlock()

	// flock locks are per file description, so a second descriptor in
	// the same process still contends.
	waiter, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- waiter.Lock() }()

	select {
	case err := <-done:
		if err != ErrLockTimeout {
			t.Errorf("Lock() = %v, want ErrLockTimeout", err)
		}
	case <-time.After(lockTimeout + 3*time.Second):
		t.Fatal("second Lock() never returned")
	}
}
