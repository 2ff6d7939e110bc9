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

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Logger attaches a request scoped logger to the context and logs every
// request once complete.
func Logger(logger logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			l := logger.WithValues("method", r.Method, "path", r.URL.Path)

			if traceParent := r.Header.Get("Traceparent"); traceParent != "" {
				l = l.WithValues("traceparent", traceParent)
			}

			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r.WithContext(log.IntoContext(r.Context(), l)))

			l.V(1).Info("request complete", "status", wrapped.Status(), "bytes", wrapped.BytesWritten(), "duration", time.Since(start))
		})
	}
}
