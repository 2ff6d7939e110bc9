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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Response is a raw response as received from the API.
type Response struct {
	Operation     Operation
	Method        string
	URL           string
	StatusCode    int
	Header        http.Header
	Body          []byte
	RequestHeader http.Header
	RequestBody   []byte
	Duration      time.Duration
	TraceID       string
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// ExtractID returns the id of the user resource in the response body.
func (r *Response) ExtractID() (string, error) {
	return ExtractID(r.Body)
}

// UserClient performs user operations against the configured endpoint.  It
// holds no mutable state and may be shared between goroutines.
type UserClient struct {
	baseURL   string
	conn      *Connection
	authToken string
	config    *TestConfig
	endpoints *Endpoints
	logger    logr.Logger
	observer  Observer
}

// Option customizes a UserClient at construction.
type Option func(*UserClient)

// WithLogger sets the logger used for request logging.
func WithLogger(logger logr.Logger) Option {
	return func(c *UserClient) {
		c.logger = logger
	}
}

// WithObserver registers an observer for request events.
func WithObserver(observer Observer) Option {
	return func(c *UserClient) {
		c.observer = observer
	}
}

// WithAuthToken overrides the configured token, e.g. to exercise invalid
// credentials.
func WithAuthToken(token string) Option {
	return func(c *UserClient) {
		c.authToken = token
	}
}

// NewUserClient creates a client bound to the shared connection.  It fails
// immediately if the base URL or auth token is missing.
func NewUserClient(conn *Connection, config *TestConfig, options ...Option) (*UserClient, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: connection is required", ErrMissingConfiguration)
	}

	c := &UserClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		conn:      conn,
		authToken: config.AuthToken,
		config:    config,
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
	}

	for _, o := range options {
		o(c)
	}

	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrMissingConfiguration)
	}

	if c.authToken == "" {
		return nil, fmt.Errorf("%w: auth token is required", ErrMissingConfiguration)
	}

	return c, nil
}

// BaseURL returns the users collection URL requests are made against.
func (c *UserClient) BaseURL() string {
	return c.baseURL
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	id := make([]byte, 16)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	id := make([]byte, 8)
	_, _ = rand.Read(id)

	return hex.EncodeToString(id)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	traceID := generateTraceID()
	spanID := generateSpanID()

	return fmt.Sprintf("00-%s-%s-01", traceID, spanID)
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// request describes a single round trip.
type request struct {
	operation     Operation
	method        string
	path          string
	body          any
	authenticated bool
}

//nolint:cyclop // test code complexity is acceptable
func (c *UserClient) doRequest(ctx context.Context, r request) (*Response, error) {
	fullURL := c.baseURL + r.path

	var payload []byte

	var body io.Reader

	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s body: %w", r.operation, err)
		}

		payload = data
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.authenticated {
		req.Header.Set("Authorization", c.authToken)
	}

	log := c.logger.WithValues("operation", r.operation, "method", r.method, "url", fullURL, "traceID", traceID)

	if c.config.LogRequests && payload != nil {
		log.Info("request body", "body", string(payload))
	}

	start := time.Now()
	resp, err := c.conn.Do(req)
	duration := time.Since(start)

	if err != nil {
		terr := &TransportError{Operation: r.operation, Method: r.method, URL: fullURL, Err: err}

		log.Error(err, "http request failed", "duration", duration)
		c.notify(RequestEvent{Operation: r.operation, Method: r.method, URL: fullURL, Duration: duration, TraceID: traceID, Err: terr})

		return nil, terr
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Operation: r.operation, Method: r.method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}

		log.Error(err, "reading response body", "status", resp.StatusCode, "duration", duration)
		c.notify(RequestEvent{Operation: r.operation, Method: r.method, URL: fullURL, StatusCode: resp.StatusCode, Duration: duration, TraceID: traceID, Err: terr})

		return nil, terr
	}

	if c.config.LogRequests {
		log.Info("request completed", "status", resp.StatusCode, "duration", duration)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info("response body", "status", resp.StatusCode, "body", string(respBody))
	}

	c.notify(RequestEvent{Operation: r.operation, Method: r.method, URL: fullURL, StatusCode: resp.StatusCode, Duration: duration, TraceID: traceID})

	return &Response{
		Operation:     r.operation,
		Method:        r.method,
		URL:           fullURL,
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		Body:          respBody,
		RequestHeader: req.Header,
		RequestBody:   payload,
		Duration:      duration,
		TraceID:       traceID,
	}, nil
}

func (c *UserClient) notify(event RequestEvent) {
	if c.observer != nil {
		c.observer.RequestCompleted(event)
	}
}

// CreateRandom creates an active user with a random name, email and gender.
func (c *UserClient) CreateRandom(ctx context.Context) (*Response, error) {
	user := NewRandomUser()

	return c.create(ctx, user, true)
}

// CreateWithData creates a user from caller supplied values.  Values are sent
// verbatim, so empty or out of domain values can be used to exercise validation.
func (c *UserClient) CreateWithData(ctx context.Context, name, email, gender, status string) (*Response, error) {
	return c.create(ctx, User{Name: name, Email: email, Gender: gender, Status: status}, true)
}

// CreateWithoutAuth is CreateWithData without an Authorization header.
func (c *UserClient) CreateWithoutAuth(ctx context.Context, name, email, gender, status string) (*Response, error) {
	return c.create(ctx, User{Name: name, Email: email, Gender: gender, Status: status}, false)
}

func (c *UserClient) create(ctx context.Context, user User, authenticated bool) (*Response, error) {
	operation := OperationCreate
	if !authenticated {
		operation = OperationCreateWithoutAuth
	}

	return c.doRequest(ctx, request{
		operation:     operation,
		method:        http.MethodPost,
		path:          c.endpoints.CreateUser(),
		body:          user,
		authenticated: authenticated,
	})
}

// List lists users without pagination parameters.
func (c *UserClient) List(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, request{
		operation:     OperationList,
		method:        http.MethodGet,
		path:          c.endpoints.ListUsers(),
		authenticated: true,
	})
}

// ListPaged lists a single page of users.  Page bounds are enforced by the API.
func (c *UserClient) ListPaged(ctx context.Context, page, perPage int) (*Response, error) {
	return c.doRequest(ctx, request{
		operation:     OperationListPaged,
		method:        http.MethodGet,
		path:          c.endpoints.ListUsersPaged(page, perPage),
		authenticated: true,
	})
}

// GetByID retrieves a specific user.
func (c *UserClient) GetByID(ctx context.Context, userID string) (*Response, error) {
	return c.doRequest(ctx, request{
		operation:     OperationGet,
		method:        http.MethodGet,
		path:          c.endpoints.GetUser(userID),
		authenticated: true,
	})
}

// Update replaces a user's name and email.
func (c *UserClient) Update(ctx context.Context, userID, name, email string) (*Response, error) {
	return c.doRequest(ctx, request{
		operation:     OperationUpdate,
		method:        http.MethodPut,
		path:          c.endpoints.UpdateUser(userID),
		body:          UserUpdate{Name: name, Email: email},
		authenticated: true,
	})
}

// DeleteByID deletes a user.
func (c *UserClient) DeleteByID(ctx context.Context, userID string) (*Response, error) {
	return c.doRequest(ctx, request{
		operation:     OperationDelete,
		method:        http.MethodDelete,
		path:          c.endpoints.DeleteUser(userID),
		authenticated: true,
	})
}
