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

// Package api provides integration test utilities for the User API.
//
// # Raw Responses
//
// The UserClient returns every response to the caller untouched: status
// code, headers and body. Any HTTP status, including 4xx and 5xx, is data for
// the test to assert on. The only errors returned by an operation are
// transport failures (connection refused, TLS, timeout, a connection that has
// been shut down), which are always a *TransportError, and request
// construction failures.
//
// # Shared Connection
//
// All clients in a run dispatch through a single Connection that is created
// by the owner of the run, typically in a BeforeSuite node, and released with
// Shutdown via DeferCleanup. The Connection is safe for concurrent use.
//
// # Test-Specific Features
//
//   - W3C trace context propagation for request correlation
//   - Structured request events delivered to an Observer (see the report package)
//   - Contract validation of responses against the embedded OpenAPI document
//   - Random, practically unique user payloads
package api
