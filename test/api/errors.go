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
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("transport failure")

	// ErrConnectionClosed is returned when a request is dispatched through a
	// connection that has been shut down.
	ErrConnectionClosed = errors.New("connection has been shut down")

	// ErrMissingConfiguration is returned when a client is constructed without
	// a base URL or auth token.
	ErrMissingConfiguration = errors.New("missing client configuration")

	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("response decode failure")
)

// TransportError is raised when a request never produced an HTTP response.
// HTTP error statuses are never reported this way.
type TransportError struct {
	Operation Operation
	Method    string
	URL       string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Operation, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the round trip was abandoned because the
// configured request timeout expired.
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }

	return errors.As(e.Err, &t) && t.Timeout()
}

// DecodeError is raised when a response body cannot be parsed into the
// requested shape.
type DecodeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "decoding response"

	if e.Field != "" {
		msg += " field '" + e.Field + "'"
	}

	msg += ": " + e.Reason

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
