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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for the users API.
type Metrics struct {
	// Requests counts requests by method and response code.
	Requests *prometheus.CounterVec
	// Duration observes request latency by method.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the metrics.  The registerer is explicit
// so servers in the same process, e.g. in tests, do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "user_api_requests_total",
		Help: "Total number of users API requests",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "user_api_request_duration_seconds",
		Help:    "Latency of users API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	reg.MustRegister(requests)
	reg.MustRegister(duration)

	return &Metrics{
		Requests: requests,
		Duration: duration,
	}
}

// Middleware returns the HTTP middleware.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.Requests, promhttp.InstrumentHandlerDuration(m.Duration, next))
}
