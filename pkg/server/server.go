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

package server

import (
	"context"
	goerrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/user-api-tests/pkg/server/errors"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/handler"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/handler/users"
	"github.com/unikorn-cloud/user-api-tests/pkg/server/middleware"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	ErrMissingToken = goerrors.New("an auth token is required")
)

// Options defines server behaviour.
type Options struct {
	// ListenAddress is the TCP address to serve on.
	ListenAddress string

	// AuthToken is the bearer token clients must present.
	AuthToken string

	// ReadTimeout bounds reading a request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration

	// Handler options.
	Handler handler.Options
}

// AddFlags registers server flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "listen-address", ":8080", "API listener address.")
	f.StringVar(&o.AuthToken, "auth-token", "", "Bearer token clients must present.")
	f.DurationVar(&o.ReadTimeout, "read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.WriteTimeout, "write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")

	o.Handler.AddFlags(f)
}

// DefaultOptions returns options as they are defaulted by AddFlags.
func DefaultOptions(authToken string) *Options {
	o := &Options{}

	o.AddFlags(pflag.NewFlagSet("defaults", pflag.ContinueOnError))
	o.AuthToken = authToken

	return o
}

// Server is an in-memory users API.
type Server struct {
	options  *Options
	users    *users.Client
	registry *prometheus.Registry
	logger   logr.Logger
}

// New creates a server with an empty store.
func New(options *Options, logger logr.Logger) (*Server, error) {
	if options.AuthToken == "" {
		return nil, ErrMissingToken
	}

	return &Server{
		options:  options,
		users:    users.NewClient(),
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}, nil
}

// Users exposes the backing store.
func (s *Server) Users() *users.Client {
	return s.users
}

// Handler returns the root HTTP handler.  It may only be called once per
// server as it registers metrics.
func (s *Server) Handler() (http.Handler, error) {
	h, err := handler.New(s.users, &s.options.Handler)
	if err != nil {
		return nil, err
	}

	metrics := middleware.NewMetrics(s.registry)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(s.logger))
	router.Use(metrics.Middleware)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPNotFound())
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.HandleError(w, r, errors.HTTPNotFound())
	})

	router.Get("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthorizer(s.options.AuthToken).Middleware)
		r.Mount(UsersPath, usersRouter(h))
	})

	return router, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              s.options.ListenAddress,
		ReadTimeout:       s.options.ReadTimeout,
		ReadHeaderTimeout: s.options.ReadTimeout,
		WriteTimeout:      s.options.WriteTimeout,
		Handler:           h,
		BaseContext: func(_ net.Listener) context.Context {
			return log.IntoContext(context.Background(), s.logger)
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(err, "server shutdown failed")
		}
	}()

	s.logger.Info("listening", "address", s.options.ListenAddress)

	if err := server.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving users API: %w", err)
	}

	return nil
}
