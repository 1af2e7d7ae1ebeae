package app

import (
	"context"
	"net"
	"net/http"
	"time"
)

// newHTTPServer builds the API server. Every request context derives from a
// server-scoped context that is cancelled when Shutdown begins, which ends
// long-lived handlers such as the tracking stream.
func newHTTPServer(addr string, handler http.Handler, writeTimeout time.Duration) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}
