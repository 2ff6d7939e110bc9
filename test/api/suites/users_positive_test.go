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

var _ = Describe("User Management", Label("positive"), func() {
	Context("When creating a new user", func() {
		Describe("Given random valid user data", func() {
			It("should create the user with every field populated", func() {
				resp, userID := api.CreateUserWithCleanup(client, ctx)

				Expect(resp.Text()).NotTo(BeEmpty())
				expectSchema(resp)

				user := api.ExpectUser(resp)
				Expect(user.ID).To(Equal(userID))
				Expect(user.Status).To(Equal(api.StatusActive))
				Expect(user.Gender).To(BeElementOf(api.GenderMale, api.GenderFemale))
				Expect(user.Email).To(HaveSuffix("@" + api.RandomEmailDomain))

				logStep("User created successfully with ID: %s", userID)
			})
		})
	})

	Context("When listing users", func() {
		Describe("Given at least one user exists", func() {
			It("should return a non-empty array of users", func() {
				_, userID := api.CreateUserWithCleanup(client, ctx)

				resp, err := client.List(ctx)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				expectSchema(resp)

				Expect(api.IsJSONArray(resp.Body)).To(BeTrue())

				users, err := api.DecodeUsers(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(users).NotTo(BeEmpty())

				logStep("Listed %d users, created user %s", len(users), userID)
			})

			It("should include a newly created user on the first page", func() {
				_, userID := api.CreateUserWithCleanup(client, ctx)

				resp, err := client.ListPaged(ctx, 1, 100)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)

				users, err := api.DecodeUsers(resp.Body)
				Expect(err).NotTo(HaveOccurred())

				api.VerifyUserPresence(users, userID)
			})
		})

		Describe("Given pagination parameters", func() {
			It("should return at most the requested page size", func() {
				resp, err := client.ListPaged(ctx, 1, 5)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				expectSchema(resp)

				users, err := api.DecodeUsers(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(len(users)).To(BeNumerically("<=", 5))

				logStep("Users on page 1: %d", len(users))
			})
		})
	})

	Context("When retrieving a user", func() {
		Describe("Given the user exists", func() {
			It("should return the same user that was created", func() {
				_, userID := api.CreateUserWithCleanup(client, ctx)

				resp, err := client.GetByID(ctx, userID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				expectSchema(resp)

				user := api.ExpectUser(resp)
				Expect(user.ID).To(Equal(userID))

				logStep("Retrieved user %s", userID)
			})
		})

		Describe("Given user data chosen by the caller", func() {
			It("should return exactly the values that were created", func() {
				user := api.NewUserPayload().
					WithName("Round Trip User").
					WithGender(api.GenderFemale).
					WithStatus(api.StatusInactive).
					Build()

				_, userID := api.CreateUserFromPayloadWithCleanup(client, ctx, user)

				resp, err := client.GetByID(ctx, userID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				expectSchema(resp)

				got := api.ExpectUser(resp)
				Expect(got.ID).To(Equal(userID))
				Expect(got.Name).To(Equal(user.Name))
				Expect(got.Email).To(Equal(user.Email))
				Expect(got.Gender).To(Equal(api.GenderFemale))
				Expect(got.Status).To(Equal(api.StatusInactive))

				logStep("Retrieved user %s with the values it was created with", userID)
			})
		})
	})

	Context("When updating a user", func() {
		Describe("Given a new name and email", func() {
			It("should return the updated values", func() {
				_, userID := api.CreateUserWithCleanup(client, ctx)

				name := "Updated User"
				email := api.RandomEmail()

				resp, err := client.Update(ctx, userID, name, email)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusOK)
				expectSchema(resp)

				user := api.ExpectUser(resp)
				Expect(user.ID).To(Equal(userID))
				Expect(user.Name).To(Equal(name))
				Expect(user.Email).To(Equal(email))

				logStep("Updated user %s", userID)
			})
		})
	})

	Context("When deleting a user", func() {
		Describe("Given the user exists", func() {
			It("should delete the user so it can no longer be retrieved", func() {
				_, userID := api.CreateUserWithCleanup(client, ctx)

				resp, err := client.DeleteByID(ctx, userID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusNoContent)
				Expect(resp.Body).To(BeEmpty())
				expectSchema(resp)

				resp, err = client.GetByID(ctx, userID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectMessage(resp, http.StatusNotFound)
				expectSchema(resp)

				logStep("Deleted user %s", userID)
			})
		})
	})
})
