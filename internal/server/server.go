// Package server exposes the dashboard pipeline over HTTP for the front-end
// presenter. Every request runs one full interaction cycle: fetch, sanitize,
// filter, aggregate. Only the connection handle inside the source is cached;
// concurrent cycles share a fetch via singleflight but data is fresh per
// interaction.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/sells-group/poimap/internal/model"
	"github.com/sells-group/poimap/internal/sanitize"
	"github.com/sells-group/poimap/internal/source"
)

// Server holds the request-independent pieces of the dashboard API.
type Server struct {
	src     source.Source
	limiter *rate.Limiter
	group   singleflight.Group
}

// New creates a Server. rps/burst bound the request rate across all clients.
func New(src source.Source, rps float64, burst int) *Server {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = int(rps) * 2
	}
	return &Server{
		src:     src,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Router assembles the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	r.Use(s.throttle)
	r.Use(logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/options", s.handleOptions)
	r.Get("/api/view", s.handleView)
	r.Get("/api/export", s.handleExport)
	return r
}

// dataset performs the fetch+sanitize half of a cycle. Concurrent requests
// collapse onto one fetch; the result is never retained across cycles.
func (s *Server) dataset(r *http.Request) (model.PoiDataset, error) {
	v, err, _ := s.group.Do("poi", func() (any, error) {
		ds, err := s.src.Fetch(r.Context())
		if err != nil {
			return nil, err
		}
		return sanitize.Run(ds), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(model.PoiDataset), nil
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
