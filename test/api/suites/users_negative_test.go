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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/user-api-tests/test/api"
)

var _ = Describe("User Error Handling", Label("negative"), func() {
	Context("When authentication is missing", func() {
		Describe("Given a create request without credentials", func() {
			It("should reject the request with 401 and a message", func() {
				resp, err := client.CreateWithoutAuth(ctx, "Test User", api.RandomEmail(), api.GenderMale, api.StatusActive)
				Expect(err).NotTo(HaveOccurred())

				message := api.ExpectMessage(resp, http.StatusUnauthorized)
				expectSchema(resp)

				logStep("Rejected with: %s", message)
			})
		})
	})

	Context("When creating a user with invalid data", func() {
		Describe("Given an email that is already registered", func() {
			It("should reject the second user with 422", func() {
				email := api.RandomEmail()

				api.CreateUserFromPayloadWithCleanup(client, ctx,
					api.NewUserPayload().
						WithName("First User").
						WithEmail(email).
						WithGender(api.GenderMale).
						Build())

				resp, err := client.CreateWithData(ctx, "Second User", email, api.GenderFemale, api.StatusActive)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "email")
				expectSchema(resp)
			})
		})

		Describe("Given an invalid email format", func() {
			It("should reject the user with 422", func() {
				resp, err := client.CreateWithData(ctx, "Test User", "invalid-email-format", api.GenderMale, api.StatusActive)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "email")
				expectSchema(resp)
			})
		})

		Describe("Given missing required fields", func() {
			It("should reject the user with 422", func() {
				resp, err := client.CreateWithData(ctx, "", "", api.GenderMale, api.StatusActive)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "name", "email")
				expectSchema(resp)
			})
		})

		Describe("Given an invalid gender", func() {
			It("should reject the user with 422", func() {
				resp, err := client.CreateWithData(ctx, "Test User", api.RandomEmail(), "invalid_gender", api.StatusActive)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "gender")
				expectSchema(resp)
			})
		})

		Describe("Given an invalid status", func() {
			It("should reject the user with 422", func() {
				resp, err := client.CreateWithData(ctx, "Test User", api.RandomEmail(), api.GenderMale, "invalid_status")
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "status")
				expectSchema(resp)
			})
		})
	})

	Context("When the user does not exist", func() {
		Describe("Given a retrieval request", func() {
			It("should return 404 with a message", func() {
				resp, err := client.GetByID(ctx, api.NonExistentUserID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound)
				expectSchema(resp)
			})

			It("should return 404 on every attempt", func() {
				for range 3 {
					resp, err := client.GetByID(ctx, api.NonExistentUserID)
					Expect(err).NotTo(HaveOccurred())

					api.ExpectMessage(resp, http.StatusNotFound)
				}
			})
		})

		Describe("Given an update request", func() {
			It("should return 404 with a message", func() {
				resp, err := client.Update(ctx, api.NonExistentUserID, "Updated Name", api.RandomEmail())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound)
				expectSchema(resp)
			})
		})

		Describe("Given a delete request", func() {
			It("should return 404 with a message", func() {
				resp, err := client.DeleteByID(ctx, api.NonExistentUserID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectMessage(resp, http.StatusNotFound)
				expectSchema(resp)
			})
		})
	})

	Context("When updating a user with invalid data", func() {
		Describe("Given an email registered to another user", func() {
			It("should reject the update with 422", func() {
				first, _ := api.CreateUserWithCleanup(client, ctx)

				firstUser, err := api.DecodeUser(first.Body)
				Expect(err).NotTo(HaveOccurred())

				_, secondID := api.CreateUserWithCleanup(client, ctx)

				resp, err := client.Update(ctx, secondID, "User 2 Updated", firstUser.Email)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectFieldErrors(resp, "email")
				expectSchema(resp)
			})
		})
	})
})
