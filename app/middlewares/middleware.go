package middlewares

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/utils/sessions"
	"github.com/mobstermerch/storefront/app/utils/token"
)

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("INFO: %s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// AuthMiddleware resolves the caller from a Bearer access token or,
// failing that, from the cookie session, and stores the user ID and
// role in the request context. Requests with neither get 401.
func AuthMiddleware(tokens *token.Manager, session sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, role, ok := resolveCaller(r, tokens, session)
			if !ok {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
			ctx = context.WithValue(ctx, helpers.ContextKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthMiddleware fills the context when credentials are
// present but never rejects the request.
func OptionalAuthMiddleware(tokens *token.Manager, session sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, role, ok := resolveCaller(r, tokens, session); ok {
				ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, userID)
				ctx = context.WithValue(ctx, helpers.ContextKeyRole, role)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveCaller(r *http.Request, tokens *token.Manager, session sessions.SessionStore) (string, string, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		claims, err := tokens.ParseAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Printf("WARNING: AuthMiddleware: invalid bearer token on %s: %v", r.URL.Path, err)
			return "", "", false
		}
		return claims.UserID, claims.Role, true
	}

	if userID := session.GetUserID(r); userID != "" {
		// Cookie sessions carry no role; the admin gate re-checks
		// against the database anyway.
		return userID, "", true
	}

	return "", "", false
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.visitors[ip]; exists {
		return limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors[ip] = limiter

	go func() {
		time.Sleep(10 * time.Minute)
		rl.mu.Lock()
		delete(rl.visitors, ip)
		rl.mu.Unlock()
	}()

	return limiter
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			http.Error(w, `{"error":"too many requests"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
