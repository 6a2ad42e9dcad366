// Copyright 2026 The Bda Authors
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

// Package client is a thin Go SDK over the catalog's wire surface,
// following the same request/response style as the teacher's own HTTP
// client: a base URL, an injected *http.Client, context-scoped requests
// and wrapped errors on any non-2xx response.
package client

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/internal/jsonutil"
	"github.com/catalogdb/bda/resource"
	"github.com/catalogdb/bda/server"
)

// Client talks to a bdad server's wire surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client targeting baseURL (e.g. "http://localhost:8080").
// If httpClient is nil, http.DefaultClient is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) sendRequest(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := jsonutil.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("client: building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	if err := jsonutil.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

func filterQuery(f catalog.Filter) url.Values {
	q := url.Values{}
	if f.Revision != "" {
		q.Set("revision", f.Revision)
	}
	if f.Namespaces != "" {
		q.Set("namespaces", f.Namespaces)
	}
	if f.Kinds != "" {
		q.Set("kinds", f.Kinds)
	}
	if f.Bql != "" {
		q.Set("bql", f.Bql)
	}
	return q
}

// GetKinds lists every resource kind the catalog has seen.
func (c *Client) GetKinds(ctx context.Context) ([]string, error) {
	var out []string
	err := c.sendRequest(ctx, http.MethodGet, "/v1/kinds", nil, nil, &out)
	return out, err
}

// GetNamespaces lists every distinct namespace.
func (c *Client) GetNamespaces(ctx context.Context) ([]string, error) {
	var out []string
	err := c.sendRequest(ctx, http.MethodGet, "/v1/namespaces", nil, nil, &out)
	return out, err
}

// GetRevisions lists every distinct version.
func (c *Client) GetRevisions(ctx context.Context) ([]string, error) {
	var out []string
	err := c.sendRequest(ctx, http.MethodGet, "/v1/revisions", nil, nil, &out)
	return out, err
}

// GetResources returns every record matching f.
func (c *Client) GetResources(ctx context.Context, f catalog.Filter) ([]resource.Resource, error) {
	var out []resource.Resource
	err := c.sendRequest(ctx, http.MethodGet, "/v1/resources", filterQuery(f), nil, &out)
	return out, err
}

// PutResource creates or updates r. Its index partition is derived from
// its own resource_kind; the caller never names it separately.
func (c *Client) PutResource(ctx context.Context, r resource.Resource) (server.PutResponse, error) {
	var out server.PutResponse
	err := c.sendRequest(ctx, http.MethodPut, "/v1/resources", nil,
		server.PutRequest{Resource: r}, &out)
	return out, err
}

// DelResource deletes the record with the given id.
func (c *Client) DelResource(ctx context.Context, id string) (server.PutResponse, error) {
	var out server.PutResponse
	err := c.sendRequest(ctx, http.MethodDelete, "/v1/resources"+id, nil, nil, &out)
	return out, err
}

// DelResources deletes every record matching f.
func (c *Client) DelResources(ctx context.Context, f catalog.Filter) ([]catalog.Op, error) {
	var out []catalog.Op
	err := c.sendRequest(ctx, http.MethodDelete, "/v1/resources", filterQuery(f), nil, &out)
	return out, err
}

// StreamResources reads the SSE stream from /v1/resources/stream, calling
// onResource for every "resource" event in arrival order. It returns once
// the stream ends or ctx is cancelled.
func (c *Client) StreamResources(ctx context.Context, f catalog.Filter, onResource func(resource.Resource) error) error {
	u := c.baseURL + "/v1/resources/stream"
	if q := filterQuery(f); len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("client: building stream request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: stream request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: stream request: status %d: %s", resp.StatusCode, string(data))
	}
	return readSSEEvents(resp.Body, onResource)
}

// readSSEEvents parses a minimal server-sent-events stream: "event: NAME"
// followed by "data: PAYLOAD" lines, separated by a blank line. Only
// "resource" events are decoded and forwarded; "error" events abort the
// stream.
func readSSEEvents(body io.Reader, onResource func(resource.Resource) error) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var event, data string
	flush := func() error {
		defer func() { event, data = "", "" }()
		switch event {
		case "resource":
			var r resource.Resource
			if err := jsonutil.Unmarshal([]byte(data), &r); err != nil {
				return fmt.Errorf("client: decoding streamed resource: %w", err)
			}
			return onResource(r)
		case "error":
			return fmt.Errorf("client: server reported stream error: %s", data)
		}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event != "" {
				if err := flush(); err != nil {
					return err
				}
			}
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("client: reading stream: %w", err)
	}
	return nil
}
