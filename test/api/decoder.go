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
	"bytes"
	"encoding/json"
)

// FieldError is a single validation failure as returned with a 422.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ExtractID returns the id member of a JSON object body.  Both string and
// numeric identifiers are returned in their textual form.
func ExtractID(body []byte) (string, error) {
	object, err := decodeObject(body)
	if err != nil {
		return "", err
	}

	raw, ok := object["id"]
	if !ok {
		return "", &DecodeError{Field: "id", Reason: "field is missing"}
	}

	return idString(raw)
}

func idString(raw json.RawMessage) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return "", &DecodeError{Field: "id", Reason: "invalid value", Err: err}
	}

	switch t := value.(type) {
	case string:
		if t == "" {
			return "", &DecodeError{Field: "id", Reason: "value is empty"}
		}

		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &DecodeError{Field: "id", Reason: "value is neither a string nor a number"}
	}
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil {
		return nil, &DecodeError{Reason: "body is not a JSON object", Err: err}
	}

	if object == nil {
		return nil, &DecodeError{Reason: "body is not a JSON object"}
	}

	return object, nil
}

// wireUser mirrors User but tolerates numeric identifiers.
type wireUser struct {
	ID     json.RawMessage `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Gender string          `json:"gender"`
	Status string          `json:"status"`
}

func (w *wireUser) user() (User, error) {
	if len(w.ID) == 0 {
		return User{}, &DecodeError{Field: "id", Reason: "field is missing"}
	}

	id, err := idString(w.ID)
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Name: w.Name, Email: w.Email, Gender: w.Gender, Status: w.Status}, nil
}

// DecodeUser decodes a single user resource.
func DecodeUser(body []byte) (*User, error) {
	if _, err := decodeObject(body); err != nil {
		return nil, err
	}

	var w wireUser
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, &DecodeError{Reason: "body is not a user resource", Err: err}
	}

	user, err := w.user()
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// DecodeUsers decodes a list of user resources.
func DecodeUsers(body []byte) ([]User, error) {
	var ws []wireUser
	if err := json.Unmarshal(body, &ws); err != nil {
		return nil, &DecodeError{Reason: "body is not a JSON array of users", Err: err}
	}

	if ws == nil {
		return nil, &DecodeError{Reason: "body is not a JSON array of users"}
	}

	users := make([]User, len(ws))

	for i := range ws {
		user, err := ws[i].user()
		if err != nil {
			return nil, err
		}

		users[i] = user
	}

	return users, nil
}

// DecodeFieldErrors decodes a validation failure body.
func DecodeFieldErrors(body []byte) ([]FieldError, error) {
	var errs []FieldError
	if err := json.Unmarshal(body, &errs); err != nil {
		return nil, &DecodeError{Reason: "body is not a JSON array of field errors", Err: err}
	}

	if errs == nil {
		return nil, &DecodeError{Reason: "body is not a JSON array of field errors"}
	}

	return errs, nil
}

// DecodeMessage returns the message member of an error body.
func DecodeMessage(body []byte) (string, error) {
	object, err := decodeObject(body)
	if err != nil {
		return "", err
	}

	raw, ok := object["message"]
	if !ok {
		return "", &DecodeError{Field: "message", Reason: "field is missing"}
	}

	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		return "", &DecodeError{Field: "message", Reason: "value is not a string", Err: err}
	}

	return message, nil
}

// IsJSONArray reports whether the body is a well formed JSON array.
func IsJSONArray(body []byte) bool {
	var array []json.RawMessage

	return json.Unmarshal(body, &array) == nil && array != nil
}

// HasField reports whether the body is a JSON object with the named member.
func HasField(body []byte, field string) bool {
	object, err := decodeObject(body)
	if err != nil {
		return false
	}

	_, ok := object[field]

	return ok
}
