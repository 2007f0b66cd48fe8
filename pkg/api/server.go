package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/digipet/pkg/api/handlers"
	"github.com/cbodonnell/digipet/pkg/api/middleware"
	"github.com/cbodonnell/digipet/pkg/game"
	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/repositories"
	"github.com/cbodonnell/digipet/pkg/version"
	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port        int
	TLS         *TLSConfig
	AllowOrigin string
	GameManager *game.GameManager
	Repository  repositories.Repository
	// Feed serves the live event websocket, optional
	Feed http.Handler
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter builds the API routes. JSON routes are gzip-compressed when the
// client accepts it; the feed is not, since it is hijacked for the websocket.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	compressed := func(h http.HandlerFunc) http.Handler {
		return gzhttp.GzipHandler(h)
	}

	r := mux.NewRouter()
	r.Use(
		middleware.NewRequestIDMiddleware(),
		middleware.NewLoggingMiddleware(),
		middleware.NewCORSMiddleware(opts.AllowOrigin),
	)

	r.Handle("/", compressed(handlers.HandleWelcome())).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/instructions", compressed(handlers.HandleInstructions())).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/healthz", compressed(handlers.HandleHealth(version.Get()))).Methods(http.MethodGet)
	r.Handle("/digipet", compressed(handlers.HandleGetDigipet(opts.GameManager))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/digipet/history", compressed(handlers.HandleListHistory(opts.Repository))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/digipet/history/{eventID}", compressed(handlers.HandleGetHistoryEvent(opts.Repository))).Methods(http.MethodGet, http.MethodOptions)
	if opts.Feed != nil {
		r.Handle("/digipet/events", opts.Feed).Methods(http.MethodGet)
	}
	r.Handle("/digipet/{action}", compressed(handlers.HandleAction(opts.GameManager))).Methods(http.MethodGet, http.MethodOptions)
	r.NotFoundHandler = compressed(handlers.HandleNotFound())

	return r
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
