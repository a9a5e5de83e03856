package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"littlestar/internal/security"
)

// Middleware holds dependencies for the HTTP middleware functions.
type Middleware struct {
	limiter *security.RateLimiter
	tokens  *security.TokenIssuer
}

// NewMiddleware creates a middleware instance.
func NewMiddleware(limiter *security.RateLimiter, tokens *security.TokenIssuer) *Middleware {
	return &Middleware{limiter: limiter, tokens: tokens}
}

// RateLimit rejects clients that exceed the configured request budget.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			return
		}
		next(w, r)
	}
}

// RequireAdmin validates the Bearer token on admin endpoints.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "Authentication required.", nil)
			return
		}
		if _, err := m.tokens.Verify(token); err != nil {
			respondError(w, http.StatusUnauthorized, "Authentication required.", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs every request with its duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
