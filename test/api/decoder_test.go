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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/user-api-tests/test/api"
)

func TestExtractID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		id   string
	}{
		{name: "number", body: `{"id":7012345,"name":"x"}`, id: "7012345"},
		{name: "string", body: `{"id":"abc-123"}`, id: "abc-123"},
		{name: "large number", body: `{"id":12345678901234567890}`, id: "12345678901234567890"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			id, err := api.ExtractID([]byte(test.body))
			require.NoError(t, err)
			require.Equal(t, test.id, id)
		})
	}
}

func TestExtractIDErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ``},
		{name: "invalid", body: `{"id":`},
		{name: "array", body: `[{"id":1}]`},
		{name: "null", body: `null`},
		{name: "missing", body: `{"name":"x"}`},
		{name: "null id", body: `{"id":null}`},
		{name: "boolean id", body: `{"id":true}`},
		{name: "object id", body: `{"id":{"value":1}}`},
		{name: "empty string id", body: `{"id":""}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			id, err := api.ExtractID([]byte(test.body))
			require.ErrorIs(t, err, api.ErrDecode)
			require.Empty(t, id)

			var decodeError *api.DecodeError
			require.ErrorAs(t, err, &decodeError)
		})
	}
}

func TestDecodeUser(t *testing.T) {
	t.Parallel()

	user, err := api.DecodeUser([]byte(`{"id":1,"name":"Jane","email":"jane@example.com","gender":"female","status":"active"}`))
	require.NoError(t, err)
	require.Equal(t, &api.User{ID: "1", Name: "Jane", Email: "jane@example.com", Gender: "female", Status: "active"}, user)

	_, err = api.DecodeUser([]byte(`{"name":"Jane"}`))
	require.ErrorIs(t, err, api.ErrDecode)

	_, err = api.DecodeUser([]byte(`[]`))
	require.ErrorIs(t, err, api.ErrDecode)
}

func TestDecodeUsers(t *testing.T) {
	t.Parallel()

	users, err := api.DecodeUsers([]byte(`[{"id":1,"name":"a"},{"id":"2","name":"b"}]`))
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "1", users[0].ID)
	require.Equal(t, "2", users[1].ID)

	users, err = api.DecodeUsers([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, users)

	_, err = api.DecodeUsers([]byte(`{"id":1}`))
	require.ErrorIs(t, err, api.ErrDecode)

	_, err = api.DecodeUsers([]byte(`[{"name":"no id"}]`))
	require.ErrorIs(t, err, api.ErrDecode)
}

func TestDecodeFieldErrors(t *testing.T) {
	t.Parallel()

	errs, err := api.DecodeFieldErrors([]byte(`[{"field":"email","message":"is invalid"}]`))
	require.NoError(t, err)
	require.Equal(t, []api.FieldError{{Field: "email", Message: "is invalid"}}, errs)

	_, err = api.DecodeFieldErrors([]byte(`{"message":"Resource not found"}`))
	require.ErrorIs(t, err, api.ErrDecode)
}

func TestDecodeMessage(t *testing.T) {
	t.Parallel()

	message, err := api.DecodeMessage([]byte(`{"message":"Resource not found"}`))
	require.NoError(t, err)
	require.Equal(t, "Resource not found", message)

	_, err = api.DecodeMessage([]byte(`{"error":"x"}`))
	require.ErrorIs(t, err, api.ErrDecode)

	_, err = api.DecodeMessage([]byte(`{"message":1}`))
	require.ErrorIs(t, err, api.ErrDecode)
}

func TestShapeHelpers(t *testing.T) {
	t.Parallel()

	require.True(t, api.IsJSONArray([]byte(`[]`)))
	require.True(t, api.IsJSONArray([]byte(` [{"field":"email"}] `)))
	require.False(t, api.IsJSONArray([]byte(`{}`)))
	require.False(t, api.IsJSONArray([]byte(`null`)))
	require.False(t, api.IsJSONArray([]byte(`[`)))

	require.True(t, api.HasField([]byte(`{"message":""}`), "message"))
	require.False(t, api.HasField([]byte(`{"message":""}`), "id"))
	require.False(t, api.HasField([]byte(`[]`), "message"))
}
