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

//nolint:revive
package handler

import (
	"net/http"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/user-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/errors"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/handler/users"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/util"

	"k8s.io/utils/ptr"
)

// Options control pagination behaviour.
type Options struct {
	// DefaultPerPage is used when the client supplies no page size.
	DefaultPerPage int

	// MaxPerPage caps client supplied page sizes.
	MaxPerPage int
}

// AddFlags registers pagination flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.DefaultPerPage, "default-per-page", 10, "Page size used when a list request has none.")
	f.IntVar(&o.MaxPerPage, "max-per-page", 100, "Upper bound on list page sizes.")
}

type Handler struct {
	// users is the backing store.
	users *users.Client

	// options allows behaviour to be defined on the CLI.
	options *Options
}

func New(users *users.Client, options *Options) (*Handler, error) {
	h := &Handler{
		users:   users,
		options: options,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

// pagination resolves list parameters, falling back to defaults for values
// that are absent or out of range.
func (h *Handler) pagination(params openapi.ListUsersParams) (int, int) {
	page := ptr.Deref(params.Page, 1)
	if page < 1 {
		page = 1
	}

	perPage := ptr.Deref(params.PerPage, h.options.DefaultPerPage)
	if perPage < 1 {
		perPage = h.options.DefaultPerPage
	}

	if perPage > h.options.MaxPerPage {
		perPage = h.options.MaxPerPage
	}

	return page, perPage
}

func (h *Handler) GetPublicV2Users(w http.ResponseWriter, r *http.Request, params openapi.ListUsersParams) {
	page, perPage := h.pagination(params)

	result := h.users.List(r.Context(), page, perPage)

	w.Header().Set("X-Pagination-Total", strconv.Itoa(result.Total))
	w.Header().Set("X-Pagination-Pages", strconv.Itoa(result.Pages()))
	w.Header().Set("X-Pagination-Page", strconv.Itoa(result.Page))
	w.Header().Set("X-Pagination-Limit", strconv.Itoa(result.PerPage))

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result.Items)
}

func (h *Handler) PostPublicV2Users(w http.ResponseWriter, r *http.Request) {
	request := &openapi.UserWrite{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, errors.HTTPBadRequest("malformed request body").WithError(err))
		return
	}

	result, err := h.users.Create(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+strconv.FormatInt(result.Id, 10))

	util.WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) GetPublicV2UsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	result, err := h.users.Get(r.Context(), userID.Value)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PutPublicV2UsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	h.update(w, r, userID)
}

func (h *Handler) PatchPublicV2UsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	h.update(w, r, userID)
}

// update treats PUT as a partial update too, as the production service does.
func (h *Handler) update(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	request := &openapi.UserUpdate{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, errors.HTTPBadRequest("malformed request body").WithError(err))
		return
	}

	result, err := h.users.Update(r.Context(), userID.Value, request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeletePublicV2UsersUserID(w http.ResponseWriter, r *http.Request, userID openapi.UserIDParameter) {
	if err := h.users.Delete(r.Context(), userID.Value); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
