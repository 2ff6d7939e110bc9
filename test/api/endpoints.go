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
	"net/url"
	"strconv"
)

// Endpoints contains all API endpoint patterns, relative to the configured
// users base URL.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// User collection endpoints.
func (e *Endpoints) ListUsers() string {
	return ""
}

func (e *Endpoints) CreateUser() string {
	return ""
}

func (e *Endpoints) ListUsersPaged(page, perPage int) string {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	return "?" + query.Encode()
}

// Single user endpoints.
func (e *Endpoints) GetUser(userID string) string {
	return "/" + url.PathEscape(userID)
}

func (e *Endpoints) UpdateUser(userID string) string {
	return "/" + url.PathEscape(userID)
}

func (e *Endpoints) DeleteUser(userID string) string {
	return "/" + url.PathEscape(userID)
}
