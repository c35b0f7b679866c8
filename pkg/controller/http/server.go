// Package http exposes the decision engine over a small JSON API. All
// handlers delegate to the use case layer; this package only does
// encoding, routing and status mapping.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/quitswarm/quitswarm/pkg/usecase"
	"github.com/quitswarm/quitswarm/pkg/utils/logging"
	"github.com/quitswarm/quitswarm/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/decide", s.decideHandler)
		r.Post("/similar", s.similarHandler)
		r.Get("/weights", s.weightsHandler)
		r.Get("/cases/{caseID}", s.caseHandler)
		r.Post("/cases/{caseID}/feedback", s.feedbackHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// statusFor maps use case errors onto HTTP status codes. Anything not
// recognized is a server-side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrEmptyProfile),
		errors.Is(err, usecase.ErrInvalidOutcome):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrCaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrAlreadyResolved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
