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

package users

import (
	"context"
	goerrors "errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/unikorn-cloud/user-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/errors"

	"k8s.io/utils/ptr"
)

const (
	// firstID mimics the production service, which hands out large ids.
	firstID int64 = 7000000

	messageBlank     = "can't be blank"
	messageInvalid   = "is invalid"
	messageTaken     = "has already been taken"
	messageGender    = "can't be blank, can be male of female"
	messageAttribute = "is not a valid value"
)

// Page is a page of users, newest first.
type Page struct {
	Items   openapi.UsersRead
	Total   int
	Page    int
	PerPage int
}

// Pages is the number of pages available at the current page size.
func (p *Page) Pages() int {
	if p.PerPage <= 0 {
		return 0
	}

	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Client is an in-memory user store.  It is safe for concurrent use.
type Client struct {
	// lock guards all fields below.
	lock sync.Mutex
	// users in creation order.
	users []*openapi.UserRead
	// nextID is the identifier of the next user created.
	nextID int64
	// validate checks request bodies.
	validate *validator.Validate
}

// NewClient creates an empty store.
func NewClient() *Client {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Client{
		nextID:   firstID,
		validate: validate,
	}
}

// fieldMessage maps a failed validation onto the message the production
// service returns for it.
func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		if err.Field() == "gender" {
			return messageGender
		}

		return messageBlank
	case "email":
		return messageInvalid
	case "oneof":
		if err.Field() == "gender" {
			return messageGender
		}

		return messageAttribute
	}

	return messageInvalid
}

func (c *Client) validateUser(in *openapi.UserWrite) openapi.FieldErrors {
	err := c.validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors

	if !goerrors.As(err, &validationErrors) {
		return openapi.FieldErrors{{Field: "base", Message: err.Error()}}
	}

	out := make(openapi.FieldErrors, 0, len(validationErrors))

	for _, fieldError := range validationErrors {
		out = append(out, openapi.FieldError{
			Field:   fieldError.Field(),
			Message: fieldMessage(fieldError),
		})
	}

	return out
}

// emailTaken must be called with the lock held.
func (c *Client) emailTaken(email string, except int64) bool {
	return slices.ContainsFunc(c.users, func(u *openapi.UserRead) bool {
		return u.Id != except && strings.EqualFold(u.Email, email)
	})
}

// index must be called with the lock held.
func (c *Client) index(id int64) int {
	return slices.IndexFunc(c.users, func(u *openapi.UserRead) bool {
		return u.Id == id
	})
}

// List returns a page of users, newest first.  Pages past the end are empty.
func (c *Client) List(_ context.Context, page, perPage int) *Page {
	c.lock.Lock()
	defer c.lock.Unlock()

	result := &Page{
		Items:   openapi.UsersRead{},
		Total:   len(c.users),
		Page:    page,
		PerPage: perPage,
	}

	// Bound the page before multiplying so huge page numbers cannot wrap.
	if perPage <= 0 || page < 1 || page-1 > (len(c.users)-1)/perPage {
		return result
	}

	start := (page - 1) * perPage

	for i := len(c.users) - 1 - start; i >= 0 && len(result.Items) < perPage; i-- {
		result.Items = append(result.Items, *c.users[i])
	}

	return result
}

// Create adds a user, failing with a validation error for bad or duplicate
// values.
func (c *Client) Create(_ context.Context, request *openapi.UserWrite) (*openapi.UserRead, error) {
	if fields := c.validateUser(request); fields != nil {
		return nil, errors.HTTPUnprocessableEntity(fields...)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if c.emailTaken(request.Email, 0) {
		return nil, errors.HTTPUnprocessableEntity(openapi.FieldError{Field: "email", Message: messageTaken})
	}

	user := &openapi.UserRead{
		Id:     c.nextID,
		Name:   request.Name,
		Email:  request.Email,
		Gender: request.Gender,
		Status: request.Status,
	}

	c.nextID++
	c.users = append(c.users, user)

	out := *user

	return &out, nil
}

// Get returns a single user.
func (c *Client) Get(_ context.Context, userID int64) (*openapi.UserRead, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(userID)
	if i < 0 {
		return nil, errors.HTTPNotFound()
	}

	out := *c.users[i]

	return &out, nil
}

// Update applies the fields present in the request.
func (c *Client) Update(_ context.Context, userID int64, request *openapi.UserUpdate) (*openapi.UserRead, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(userID)
	if i < 0 {
		return nil, errors.HTTPNotFound()
	}

	current := c.users[i]

	merged := &openapi.UserWrite{
		Name:   ptr.Deref(request.Name, current.Name),
		Email:  ptr.Deref(request.Email, current.Email),
		Gender: ptr.Deref(request.Gender, current.Gender),
		Status: ptr.Deref(request.Status, current.Status),
	}

	if fields := c.validateUser(merged); fields != nil {
		return nil, errors.HTTPUnprocessableEntity(fields...)
	}

	if c.emailTaken(merged.Email, userID) {
		return nil, errors.HTTPUnprocessableEntity(openapi.FieldError{Field: "email", Message: messageTaken})
	}

	current.Name = merged.Name
	current.Email = merged.Email
	current.Gender = merged.Gender
	current.Status = merged.Status

	out := *current

	return &out, nil
}

// Delete removes a user.
func (c *Client) Delete(_ context.Context, userID int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	i := c.index(userID)
	if i < 0 {
		return errors.HTTPNotFound()
	}

	c.users = slices.Delete(c.users, i, i+1)

	return nil
}

// Len returns the number of users stored.
func (c *Client) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.users)
}
