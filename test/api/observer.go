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

//go:generate mockgen -source=observer.go -destination=mock/interfaces.go -package=mock

package api

import (
	"time"
)

// Operation names a client operation.
type Operation string

const (
	OperationCreate            Operation = "createUser"
	OperationCreateWithoutAuth Operation = "createUserWithoutAuth"
	OperationList              Operation = "listUsers"
	OperationListPaged         Operation = "listUsersPaged"
	OperationGet               Operation = "getUser"
	OperationUpdate            Operation = "updateUser"
	OperationDelete            Operation = "deleteUser"
)

// RequestEvent describes one completed round trip, or one that failed in
// transport, in which case StatusCode is zero and Err is set.
type RequestEvent struct {
	Operation  Operation
	Method     string
	URL        string
	StatusCode int
	Duration   time.Duration
	TraceID    string
	Err        error
}

// Failed reports whether the request never produced a response.
func (e RequestEvent) Failed() bool {
	return e.Err != nil
}

// Observer receives a RequestEvent for every request a client performs.
// Implementations must be safe for concurrent use.
type Observer interface {
	RequestCompleted(event RequestEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event RequestEvent)

func (f ObserverFunc) RequestCompleted(event RequestEvent) {
	f(event)
}
