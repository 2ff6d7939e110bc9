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
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

var (
	// ErrSchema is returned when a response does not match the documented contract.
	ErrSchema = errors.New("response does not match schema")

	// ErrUndocumentedOperation is raised when an operation has no route.
	ErrUndocumentedOperation = errors.New("operation is not documented")
)

//go:embed openapi/users.yaml
var usersSchema []byte

const (
	collectionPath = "/public/v2/users"
	resourcePath   = "/public/v2/users/{userID}"
)

type operationRoute struct {
	path   string
	method string
}

//nolint:gochecknoglobals
var operationRoutes = map[Operation]operationRoute{
	OperationCreate:            {collectionPath, http.MethodPost},
	OperationCreateWithoutAuth: {collectionPath, http.MethodPost},
	OperationList:              {collectionPath, http.MethodGet},
	OperationListPaged:         {collectionPath, http.MethodGet},
	OperationGet:               {resourcePath, http.MethodGet},
	OperationUpdate:            {resourcePath, http.MethodPut},
	OperationDelete:            {resourcePath, http.MethodDelete},
}

// SchemaValidator checks raw responses against the users API document.
type SchemaValidator struct {
	routes map[Operation]*routers.Route
}

// NewSchemaValidator loads and validates the embedded API document.
func NewSchemaValidator(ctx context.Context) (*SchemaValidator, error) {
	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(usersSchema)
	if err != nil {
		return nil, fmt.Errorf("loading users schema: %w", err)
	}

	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating users schema: %w", err)
	}

	routes := map[Operation]*routers.Route{}

	for operation, r := range operationRoutes {
		pathItem := spec.Paths.Value(r.path)
		if pathItem == nil {
			return nil, fmt.Errorf("%w: path %s", ErrUndocumentedOperation, r.path)
		}

		op := pathItem.GetOperation(r.method)
		if op == nil {
			return nil, fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, r.method, r.path)
		}

		routes[operation] = &routers.Route{
			Spec:      spec,
			Path:      r.path,
			PathItem:  pathItem,
			Method:    r.method,
			Operation: op,
		}
	}

	return &SchemaValidator{
		routes: routes,
	}, nil
}

// Validate checks the response status, content type and body against the
// documented responses for the operation that produced it.
func (v *SchemaValidator) Validate(ctx context.Context, response *Response) error {
	route, ok := v.routes[response.Operation]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUndocumentedOperation, response.Operation)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, response.URL, nil)
	if err != nil {
		return fmt.Errorf("creating validation request: %w", err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route:   route,
		},
		Status: response.StatusCode,
		Header: response.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(response.Body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %d: %w", ErrSchema, response.Operation, response.StatusCode, err)
	}

	return nil
}
