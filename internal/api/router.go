package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Options configures the HTTP server.
type Options struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultOptions returns server options with the default timeouts.
func DefaultOptions(port string) Options {
	return Options{
		Port:           port,
		AllowedOrigins: []string{"*"},
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
	}
}

// NewRouter wires the routes, logging and panic recovery behind a CORS handler.
func NewRouter(h *Handler, log *logrus.Logger, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(recoveryMiddleware(log), loggingMiddleware(log))

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/defaults", h.Defaults).Methods(http.MethodGet)
	v1.HandleFunc("/simulations", h.RunSimulation).Methods(http.MethodPost)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// NewServer builds the HTTP server for the simulation API.
func NewServer(opts Options, log *logrus.Logger) *http.Server {
	return &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      NewRouter(NewHandler(log), log, opts.AllowedOrigins),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
}
