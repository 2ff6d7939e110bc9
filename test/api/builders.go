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
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	GenderMale     = "male"
	GenderFemale   = "female"
	StatusActive   = "active"
	StatusInactive = "inactive"

	// RandomEmailDomain is the domain of every generated email address.
	RandomEmailDomain = "example.com"
)

//nolint:gochecknoglobals
var genders = []string{GenderMale, GenderFemale}

// User is the wire representation of the resource under test.
type User struct {
	ID     string `json:"-"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Status string `json:"status"`
}

// UserUpdate is the body of an update, which only carries name and email.
type UserUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// randomToken returns n lower-case hex characters taken from a fresh UUIDv4.
func randomToken(n int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	return token[:n]
}

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, randomToken(8))
}

// GenerateTestID returns a short unique identifier for naming test data.
func GenerateTestID() string {
	return generateRandomName("test")
}

// RandomEmail returns a practically unique address of the form
// <token>@example.com.
func RandomEmail() string {
	return fmt.Sprintf("user%s@%s", randomToken(12), RandomEmailDomain)
}

// RandomGender draws uniformly from male and female.
func RandomGender() string {
	return genders[rand.IntN(len(genders))] //nolint:gosec // not security sensitive
}

// NewRandomUser returns a valid, active user with random identity fields.
func NewRandomUser() User {
	return User{
		Name:   generateRandomName("User"),
		Email:  RandomEmail(),
		Gender: RandomGender(),
		Status: StatusActive,
	}
}

// UserPayloadBuilder builds user payloads for testing.
type UserPayloadBuilder struct {
	user User
}

// NewUserPayload creates a new builder seeded with a random valid user.
func NewUserPayload() *UserPayloadBuilder {
	return &UserPayloadBuilder{
		user: NewRandomUser(),
	}
}

// WithName sets the user name.
func (b *UserPayloadBuilder) WithName(name string) *UserPayloadBuilder {
	b.user.Name = name
	return b
}

// WithEmail sets the email address.
func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.user.Email = email
	return b
}

// WithGender sets the gender, which may be out of domain for negative tests.
func (b *UserPayloadBuilder) WithGender(gender string) *UserPayloadBuilder {
	b.user.Gender = gender
	return b
}

// WithStatus sets the status, which may be out of domain for negative tests.
func (b *UserPayloadBuilder) WithStatus(status string) *UserPayloadBuilder {
	b.user.Status = status
	return b
}

// Build returns the completed user payload.
func (b *UserPayloadBuilder) Build() User {
	return b.user
}
