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

package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unikorn-cloud/user-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/errors"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/handler"
)

// UsersPath is where the users collection is mounted.
const UsersPath = "/public/v2/users"

// optionalInt returns nil for absent or non-numeric query values, which
// are then defaulted.
func optionalInt(r *http.Request, name string) *int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return nil
	}

	return &value
}

// withUserID decodes the path parameter, unknown ids are simply not found.
func withUserID(next func(http.ResponseWriter, *http.Request, openapi.UserIDParameter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var userID openapi.UserIDParameter

		if err := userID.UnmarshalText([]byte(chi.URLParam(r, "userID"))); err != nil {
			errors.HandleError(w, r, errors.HTTPNotFound().WithError(err))
			return
		}

		next(w, r, userID)
	}
}

// usersRouter binds handler methods to the users routes.
func usersRouter(h *handler.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		h.GetPublicV2Users(w, r, openapi.ListUsersParams{
			Page:    optionalInt(r, "page"),
			PerPage: optionalInt(r, "per_page"),
		})
	})
	router.Post("/", h.PostPublicV2Users)
	router.Get("/{userID}", withUserID(h.GetPublicV2UsersUserID))
	router.Put("/{userID}", withUserID(h.PutPublicV2UsersUserID))
	router.Patch("/{userID}", withUserID(h.PatchPublicV2UsersUserID))
	router.Delete("/{userID}", withUserID(h.DeletePublicV2UsersUserID))

	return router
}
