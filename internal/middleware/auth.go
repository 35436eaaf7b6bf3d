package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	UserContextKey contextKey = "user"
)

// AuthMiddleware authenticates requests and gates routes on the shop's
// role and permission model.
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate validates the bearer token and stores its claims in the
// request context. Login, registration, health and metrics stay open.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		claims, err := m.authService.ValidateToken(authHeader)
		if err != nil {
			log.WithFields(log.Fields{"path": r.URL.Path}).WithError(err).Debug("rejected token")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireClaims pulls authenticated claims out of the request, writing
// the 401 itself when Authenticate did not run or was skipped.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*models.Claims)
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// RequireRole gates a route on a single role. Admins pass every gate.
func (m *AuthMiddleware) RequireRole(requiredRole models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := requireClaims(w, r)
			if !ok {
				return
			}
			if claims.Role != requiredRole && claims.Role != models.RoleAdmin {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route on one fleet action regardless of
// method, e.g. view_analytics on the analytics endpoints.
func (m *AuthMiddleware) RequirePermission(requiredAction string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := requireClaims(w, r)
			if !ok {
				return
			}
			if !claims.Allows(requiredAction) {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoutePermissions maps HTTP methods to the fleet action a route needs,
// e.g. GET needs "view_vehicles" while DELETE needs "delete_vehicle".
// Methods not listed pass through; the handler rejects them itself.
type RoutePermissions map[string]string

// RequirePermissions gates a CRUD route whose required action depends on
// the request method.
func (m *AuthMiddleware) RequirePermissions(perms RoutePermissions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			action, gated := perms[r.Method]
			if !gated {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := requireClaims(w, r)
			if !ok {
				return
			}
			if !claims.Allows(action) {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok
}

// shouldSkipAuth determines if authentication should be skipped for a given path
func shouldSkipAuth(path string) bool {
	skipPaths := []string{
		"/api/auth/login",
		"/api/auth/register",
		"/health",
		"/metrics",
	}

	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// RateLimitMiddleware throttles clients by IP. It protects the open auth
// endpoints, where credential stuffing is the concern.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimitMiddleware creates a new rate limiting middleware
func NewRateLimitMiddleware() *RateLimitMiddleware {
	return &RateLimitMiddleware{
		requests: make(map[string][]time.Time),
	}
}

// RateLimit allows maxRequests per client IP within a sliding window of
// windowSeconds.
func (m *RateLimitMiddleware) RateLimit(maxRequests int, windowSeconds int) func(http.Handler) http.Handler {
	window := time.Duration(windowSeconds) * time.Second
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)
			now := time.Now()

			m.mu.Lock()
			kept := m.requests[clientIP][:0]
			for _, at := range m.requests[clientIP] {
				if now.Sub(at) < window {
					kept = append(kept, at)
				}
			}
			if len(kept) >= maxRequests {
				m.requests[clientIP] = kept
				m.mu.Unlock()
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			m.requests[clientIP] = append(kept, now)
			m.mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP, preferring proxy headers.
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.Split(ip, ",")[0]
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
