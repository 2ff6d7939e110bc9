/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Connection is the HTTP session every UserClient in a run dispatches through.
// It owns a dedicated transport so that shutting it down releases exactly the
// sockets the run opened.
type Connection struct {
	client    *http.Client
	transport *http.Transport
	closed    atomic.Bool
}

// NewConnection creates a connection whose round trips are bounded by the
// configured request timeout.  The caller owns the connection and must call
// Shutdown when the run ends.
func NewConnection(config *TestConfig) *Connection {
	return newConnection(config.RequestTimeout)
}

func newConnection(timeout time.Duration) *Connection {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib guarantees the type

	return &Connection{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		transport: transport,
	}
}

// Do performs a single round trip.  It is safe for concurrent use.
func (c *Connection) Do(req *http.Request) (*http.Response, error) {
	if c.closed.Load() {
		return nil, ErrConnectionClosed
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	return resp, nil
}

// Closed reports whether Shutdown has been called.
func (c *Connection) Closed() bool {
	return c.closed.Load()
}

// Shutdown releases the connection's pooled sockets.  It is idempotent, and
// any request dispatched afterwards fails with ErrConnectionClosed.
func (c *Connection) Shutdown() {
	if c.closed.Swap(true) {
		return
	}

	c.transport.CloseIdleConnections()
}
