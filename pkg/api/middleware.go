// Middleware for the API server: bearer token auth, per-route rate
// limiting, and request logging with metrics.

package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ft-manu/forethought-test-api/pkg/httputil"
	"github.com/ft-manu/forethought-test-api/pkg/ratelimit"
)

// protected requires a valid bearer token before calling the handler.
// Comparison is constant time.
func (s *Server) protected(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httputil.WriteUnauthorized(w, "Missing or invalid Authorization header")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Auth.Token)) != 1 {
			httputil.WriteUnauthorized(w, "Invalid token")
			return
		}
		h(w, r)
	}
}

// limited rejects requests from clients that exhausted the class budget.
// A nil limiter disables the check.
func (s *Server) limited(l *ratelimit.PerIPLimiter, class string, h http.HandlerFunc) http.HandlerFunc {
	if l == nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ratelimit.ClientIP(r)) {
			s.rateLimited.Inc(class)
			httputil.WriteTooManyRequests(w, "Rate limit exceeded")
			return
		}
		h(w, r)
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// withRequestLogging wraps the mux with request ID assignment, structured
// request logging, and the request counter.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.requestsTotal.Inc(r.Method, r.URL.Path, strconv.Itoa(rec.status))
		s.log.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", ratelimit.ClientIP(r),
		)
	})
}
