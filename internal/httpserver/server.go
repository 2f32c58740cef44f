package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ShutdownTimeout bounds graceful shutdown, covering both in-flight requests
// and background worker drains.
const ShutdownTimeout = 10 * time.Second

// Server wraps http.Server with timeouts suited to an API that accepts large
// multipart uploads: generous body reads, bounded header reads.
type Server struct {
	srv *http.Server
}

// New constructs a server bound to the given port.
func New(port int, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Addr reports the listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Start blocks serving HTTP traffic until the server is shut down.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
