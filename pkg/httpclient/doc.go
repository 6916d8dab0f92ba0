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

// Package httpclient provides the HTTP client factory used for all
// fabric API traffic.
//
// Clients produced here carry consistent transport behavior:
//   - Automatic retry with exponential backoff and jitter
//   - Request logging with sanitized URLs (sensitive parameters redacted)
//   - User-Agent header injection and per-request ID propagation
//   - TLS 1.2 minimum (TLS 1.3 preferred)
//   - Connection pooling
//
// Retry applies to idempotent methods only (GET, HEAD, OPTIONS) unless
// explicitly enabled, and covers 5xx, 408, 429 (honoring Retry-After),
// and transient network errors. 4xx client errors are never retried.
// Per-request timeouts live here; the dispatch core above this layer
// never retries or times out on its own.
package httpclient
