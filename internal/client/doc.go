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

// Package client implements the fabric API client used by domain
// command handlers. It is the transport collaborator of the dispatch
// core: verb methods against fabric paths with bearer authentication,
// returning decoded JSON payloads or a structured TransportError on
// any non-2xx response. Retry and per-request timeouts live in the
// underlying pkg/httpclient transport, never here and never above.
package client
