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

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshline/meshctl/pkg/errors"
)

func TestGetDecodesJSON(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"name":"a"}]}`))
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, Token: "tok", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	resp, err := c.Get(context.Background(), "api/config/namespaces/default/dns_zones")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !resp.OK || resp.StatusCode != http.StatusOK {
		t.Errorf("resp = %+v, want 200 OK", resp)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}

	obj, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data = %T, want decoded object", resp.Data)
	}
	if _, ok := obj["items"]; !ok {
		t.Errorf("Data = %v, missing items", obj)
	}
}

func TestNon2xxBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req-123")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"no such zone"}`))
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = c.Get(context.Background(), "api/config/namespaces/default/dns_zones/missing")
	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("err = %v, want *errors.TransportError", err)
	}
	if transport.StatusCode != 404 || transport.Message != "no such zone" || transport.RequestID != "req-123" {
		t.Errorf("transport error = %+v", transport)
	}
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := c.Get(context.Background(), "api/web/whoami")

	var transport *errors.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("err = %v, want *errors.TransportError", err)
	}
	if transport.Message != "Bad Gateway" {
		t.Errorf("Message = %q, want status text fallback", transport.Message)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, HTTPClient: server.Client()})
	resp, err := c.Post(context.Background(), "api/config/namespaces/default/dns_zones", map[string]string{"name": "z"})
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if string(gotBody) != `{"name":"z"}` {
		t.Errorf("body = %s", gotBody)
	}
}

func TestAuthFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty token", "", "anonymous"},
		{"short token", "abc", "token"},
		{"long token", "aaaaaaaa12345678", "12345678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Options{Token: tt.token})
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if got := c.AuthFingerprint(); got != tt.want {
				t.Errorf("AuthFingerprint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilClientFingerprint(t *testing.T) {
	var c *Client
	if got := c.AuthFingerprint(); got != "anonymous" {
		t.Errorf("nil client fingerprint = %q, want anonymous", got)
	}
}
