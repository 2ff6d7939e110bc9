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

import (
	"errors"
	"regexp"
	"strconv"
)

var ErrInvalidUserID = errors.New("invalid user id: must be a positive decimal integer")

var userIDValidationRegex = regexp.MustCompile("^[1-9][0-9]{0,17}$")

// UserIDParameter is the path parameter identifying a user.
type UserIDParameter struct {
	Value int64
}

func (n *UserIDParameter) UnmarshalText(text []byte) error {
	if !userIDValidationRegex.Match(text) {
		return ErrInvalidUserID
	}

	value, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return ErrInvalidUserID
	}

	*n = UserIDParameter{
		Value: value,
	}

	return nil
}
