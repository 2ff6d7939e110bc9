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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// NonExistentUserID is an identifier no deployment is expected to allocate.
const NonExistentUserID = "999999999"

// CreateUserWithCleanup creates a random user and schedules its deletion.
func CreateUserWithCleanup(client *UserClient, ctx context.Context) (*Response, string) {
	return CreateUserFromPayloadWithCleanup(client, ctx, NewRandomUser())
}

// CreateUserFromPayloadWithCleanup creates the given user, expecting success,
// and schedules its deletion whether the test passes or fails.
func CreateUserFromPayloadWithCleanup(client *UserClient, ctx context.Context, user User) (*Response, string) {
	resp, err := client.CreateWithData(ctx, user.Name, user.Email, user.Gender, user.Status)
	Expect(err).NotTo(HaveOccurred())
	ExpectStatus(resp, http.StatusCreated)

	userID, err := resp.ExtractID()
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created user with ID: %s\n", userID)

	DeferCleanup(func(ctx context.Context) {
		deleteUserQuietly(client, ctx, userID)
	})

	return resp, userID
}

// deleteUserQuietly tolerates the user already being gone, e.g. when the test
// itself deleted it.
func deleteUserQuietly(client *UserClient, ctx context.Context, userID string) {
	GinkgoWriter.Printf("Cleaning up user: %s\n", userID)

	resp, err := client.DeleteByID(ctx, userID)
	if err != nil {
		GinkgoWriter.Printf("Warning: Failed to delete user %s: %v\n", userID, err)
		return
	}

	switch resp.StatusCode {
	case http.StatusNoContent:
		GinkgoWriter.Printf("Successfully deleted user: %s\n", userID)
	case http.StatusNotFound:
		GinkgoWriter.Printf("User %s already deleted\n", userID)
	default:
		GinkgoWriter.Printf("Warning: Failed to delete user %s: status %d\n", userID, resp.StatusCode)
	}
}

// ExpectStatus asserts the status code, reporting the body on mismatch.
func ExpectStatus(resp *Response, status int) {
	GinkgoHelper()

	Expect(resp).NotTo(BeNil())
	Expect(resp.StatusCode).To(Equal(status), "%s %s returned %d: %s", resp.Method, resp.URL, resp.StatusCode, resp.Text())
}

// ExpectMessage asserts an error response with a non-empty message.
func ExpectMessage(resp *Response, status int) string {
	GinkgoHelper()

	ExpectStatus(resp, status)

	message, err := DecodeMessage(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(message).NotTo(BeEmpty())

	return message
}

// ExpectFieldErrors asserts a validation failure naming every given field.
func ExpectFieldErrors(resp *Response, fields ...string) []FieldError {
	GinkgoHelper()

	ExpectStatus(resp, http.StatusUnprocessableEntity)
	Expect(IsJSONArray(resp.Body)).To(BeTrue(), "expected a JSON array: %s", resp.Text())

	errs, err := DecodeFieldErrors(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(errs).NotTo(BeEmpty())

	named := extractFields(errs)
	for _, field := range fields {
		Expect(named).To(ContainElement(field), "Expected field %s to be reported as invalid", field)
	}

	return errs
}

// ExpectUser asserts a user body with every field populated.
func ExpectUser(resp *Response) *User {
	GinkgoHelper()

	for _, field := range []string{"id", "name", "email", "gender", "status"} {
		Expect(HasField(resp.Body, field)).To(BeTrue(), "Expected field %s in %s", field, resp.Text())
	}

	user, err := DecodeUser(resp.Body)
	Expect(err).NotTo(HaveOccurred())

	return user
}

// VerifyUserPresence verifies that users are present in the list.
func VerifyUserPresence(users []User, expectedUserIDs ...string) {
	GinkgoHelper()

	userIDs := extractUserIDs(users)
	for _, expectedID := range expectedUserIDs {
		Expect(userIDs).To(ContainElement(expectedID), "Expected user ID %s to be present in the list", expectedID)
	}
}

func extractUserIDs(users []User) []string {
	userIDs := make([]string, len(users))

	for i := range users {
		userIDs[i] = users[i].ID
	}

	return userIDs
}

func extractFields(errs []FieldError) []string {
	fields := make([]string, len(errs))

	for i := range errs {
		fields[i] = errs[i].Field
	}

	return fields
}
