package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the HTTP hardening applied to every endpoint of
// the observability server.
type SecurityConfig struct {
	// EnableCORS enables cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists origins allowed to access the server ("*" = any).
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods allowed by CORS.
	AllowedMethods []string
	// MaxRequestBytes caps the size of accepted request bodies.
	MaxRequestBytes int64
}

// DefaultSecurityConfig returns the hardened defaults used by the server.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:      true,
		AllowedOrigins:  []string{"*"},
		AllowedMethods:  []string{"GET", "OPTIONS"},
		MaxRequestBytes: 1 << 20,
	}
}

// SecurityMiddleware wraps a handler with security headers, CORS handling,
// and preflight support.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Standard hardening headers on every response
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := matchOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
		}

		// Preflight requests are answered here, never forwarded
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if config.MaxRequestBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBytes)
		}

		next(w, r)
	}
}

// matchOrigin returns the CORS origin value to emit, or "" when the request
// origin is not allowed. A wildcard entry matches any request, including
// requests without an Origin header.
func matchOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
