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

package api_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/user-api-tests/pkg/server"
	"github.com/unikorn-cloud/user-api-tests/test/api"
)

const fakeToken = "fake-token"

// newFakeAPI starts an in-memory users API and returns a configuration
// pointing at it.
func newFakeAPI(t *testing.T) *api.TestConfig {
	t.Helper()

	s, err := server.New(server.DefaultOptions(fakeToken), logr.Discard())
	require.NoError(t, err)

	h, err := s.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return &api.TestConfig{
		BaseURL:        ts.URL + server.UsersPath,
		AuthToken:      "Bearer " + fakeToken,
		RequestTimeout: 5 * time.Second,
	}
}

// newClient creates a client against the configuration with a connection
// released at the end of the test.
func newClient(t *testing.T, config *api.TestConfig, options ...api.Option) *api.UserClient {
	t.Helper()

	conn := api.NewConnection(config)
	t.Cleanup(conn.Shutdown)

	client, err := api.NewUserClient(conn, config, options...)
	require.NoError(t, err)

	return client
}
