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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when file lock acquisition times out.
var ErrLockTimeout = errors.New("configuration locked by another process")

// lockTimeout is the maximum duration to wait for lock acquisition.
const lockTimeout = 5 * time.Second

// File manages the config file with flock-based locking so concurrent
// meshctl invocations do not corrupt it.
type File struct {
	path     string
	lockFile *os.File
}

// NewFile creates a File for the given path. An empty path selects the
// default XDG location.
func NewFile(path string) (*File, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
	}
	return &File{path: path}, nil
}

// Lock acquires an exclusive lock, polling until lockTimeout.
func (f *File) Lock() error {
	lockPath := f.path + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("opening lock file: %w", err)
	}

	deadline := time.Now().Add(lockTimeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err == nil {
			f.lockFile = lockFile
			return nil
		}
		if time.Now().After(deadline) {
			lockFile.Close()
			return ErrLockTimeout
		}
		<-ticker.C
	}
}

// Unlock releases the file lock.
func (f *File) Unlock() error {
	if f.lockFile == nil {
		return nil
	}
	if err := syscall.Flock(int(f.lockFile.Fd()), syscall.LOCK_UN); err != nil {
		f.lockFile.Close()
		f.lockFile = nil
		return fmt.Errorf("unlocking config: %w", err)
	}
	err := f.lockFile.Close()
	f.lockFile = nil
	if err != nil {
		return fmt.Errorf("closing lock file: %w", err)
	}
	return nil
}

// Load reads the configuration. A missing file yields the defaults.
// The file must be locked first.
func (f *File) Load() (*Config, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration atomically: temp file plus rename.
// The file must be locked first.
func (f *File) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config to YAML: %w", err)
	}

	tempPath := f.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("writing temporary config: %w", err)
	}
	if err := os.Rename(tempPath, f.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing config file: %w", err)
	}
	return nil
}

// WithLock runs fn while holding the lock.
func (f *File) WithLock(fn func() error) error {
	if err := f.Lock(); err != nil {
		return err
	}
	defer f.Unlock()
	return fn()
}

// Load is the convenience entry point: lock, read, validate.
func Load(path string) (*Config, error) {
	f, err := NewFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	if err := f.WithLock(func() error {
		var loadErr error
		cfg, loadErr = f.Load()
		return loadErr
	}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save is the convenience entry point: lock then write.
func Save(path string, cfg *Config) error {
	f, err := NewFile(path)
	if err != nil {
		return err
	}
	return f.WithLock(func() error {
		return f.Save(cfg)
	})
}
