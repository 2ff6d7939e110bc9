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

package errors

import (
	"errors"
	"net/http"

	"github.com/unikorn-cloud/user-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/util"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error is an error that maps directly to an HTTP response.
type Error struct {
	// status is the HTTP status code.
	status int

	// message is returned as the message body member.
	message string

	// fields, when set, are returned as a validation failure body instead
	// of the message.
	fields openapi.FieldErrors

	// err is the underlying cause, logged but never returned.
	err error
}

func newError(status int, message string) *Error {
	return &Error{
		status:  status,
		message: message,
	}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}

	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

// WithError attaches an underlying cause.
func (e *Error) WithError(err error) *Error {
	e.err = err
	return e
}

// Status returns the HTTP status code.
func (e *Error) Status() int {
	return e.status
}

// Fields returns any field validation errors.
func (e *Error) Fields() openapi.FieldErrors {
	return e.fields
}

func HTTPUnauthorized() *Error {
	return newError(http.StatusUnauthorized, "Authentication failed")
}

func HTTPNotFound() *Error {
	return newError(http.StatusNotFound, "Resource not found")
}

func HTTPBadRequest(message string) *Error {
	return newError(http.StatusBadRequest, message)
}

func HTTPUnprocessableEntity(fields ...openapi.FieldError) *Error {
	e := newError(http.StatusUnprocessableEntity, "Data validation failed")
	e.fields = fields

	return e
}

func ServerError(message string) *Error {
	return newError(http.StatusInternalServerError, message)
}

// HandleError writes the error as a response, anything not raised as an
// *Error is a server error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpError *Error

	if !errors.As(err, &httpError) {
		httpError = ServerError("unhandled error").WithError(err)
	}

	if httpError.status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error(httpError, "request failed")
	}

	if httpError.fields != nil {
		util.WriteJSONResponse(w, r, httpError.status, httpError.fields)
		return
	}

	util.WriteJSONResponse(w, r, httpError.status, &openapi.Message{Message: httpError.message})
}
