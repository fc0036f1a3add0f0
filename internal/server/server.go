package server

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/textsms-relay/internal/middleware"
	routes "github.com/oggyb/textsms-relay/internal/router"
	"github.com/rs/zerolog"
)

const (
	// minWriteTimeout is the write deadline when the gateway timeout is short.
	minWriteTimeout = 45 * time.Second
	// writeTimeoutMargin leaves room to encode the result after the gateway call ends.
	writeTimeoutMargin = 15 * time.Second
)

// WriteTimeoutFor returns a write deadline long enough for a relay call that
// waits the full gateway timeout and still writes its result.
func WriteTimeoutFor(gatewayTimeout time.Duration) time.Duration {
	return max(minWriteTimeout, gatewayTimeout+writeTimeoutMargin)
}

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New creates a new HTTP server bound to the given address and configured
// with the provided application dependencies and middleware chain.
// gatewayTimeout is the outbound timeout of the gateway client.
func New(addr string, deps routes.AppDeps, log zerolog.Logger, gatewayTimeout time.Duration) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           Handler(deps, log),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      WriteTimeoutFor(gatewayTimeout),
		},
	}
}

// Handler builds the routed, middleware-wrapped root handler.
func Handler(deps routes.AppDeps, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	routes.Register(mux, deps)

	return Chain(
		mux,
		middleware.RequestID(),
		middleware.RequestLogger(log),
	)
}

// Start runs the HTTP server and blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight
// requests to complete until the given context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
