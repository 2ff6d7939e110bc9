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

package openapi

// Gender defines model for gender.
type Gender string

// Defines values for Gender.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Status defines model for status.
type Status string

// Defines values for Status.
const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

// UserRead defines model for userRead.
type UserRead struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender Gender `json:"gender"`
	Status Status `json:"status"`
}

// UserWrite defines model for userWrite.
type UserWrite struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Gender Gender `json:"gender" validate:"required,oneof=male female"`
	Status Status `json:"status" validate:"required,oneof=active inactive"`
}

// UserUpdate defines model for userUpdate, absent fields are left unchanged.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Gender *Gender `json:"gender,omitempty"`
	Status *Status `json:"status,omitempty"`
}

// UsersRead defines model for users.
type UsersRead = []UserRead

// Message defines model for message.
type Message struct {
	Message string `json:"message"`
}

// FieldError defines model for fieldError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors defines model for fieldErrors.
type FieldErrors = []FieldError

// ListUsersParams defines parameters for ListUsers.
type ListUsersParams struct {
	Page    *int
	PerPage *int
}
