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

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/unikorn-cloud/user-api-tests/pkg/server/errors"
)

// Authorizer rejects requests that do not present the expected bearer token.
type Authorizer struct {
	token string
}

// NewAuthorizer returns an authorizer for the given token.
func NewAuthorizer(token string) *Authorizer {
	return &Authorizer{
		token: token,
	}
}

func (a *Authorizer) authorized(r *http.Request) bool {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

// Middleware returns the HTTP middleware.
func (a *Authorizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorized(r) {
			errors.HandleError(w, r, errors.HTTPUnauthorized())
			return
		}

		next.ServeHTTP(w, r)
	})
}
