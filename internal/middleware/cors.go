package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// wildcardOrigin represents an allowed-origin pattern like
// "https://*.willowhealth.app" that matches a single subdomain label.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses a pattern of the form "<scheme>://*.<domain>".
// Returns nil if the pattern is not a valid wildcard pattern.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	rest := strings.TrimPrefix(pattern, scheme)
	if !strings.HasPrefix(rest, "*.") {
		return nil
	}

	suffix := rest[1:] // keep leading dot
	domain := rest[2:]
	if domain == "" || strings.Contains(domain, "*") {
		return nil
	}
	// Require at least two labels after the wildcard (e.g. "example.com").
	if !strings.Contains(domain, ".") {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

// matches reports whether origin matches the pattern with exactly one
// subdomain label in place of the wildcard.
func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := strings.TrimPrefix(origin, w.scheme)
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := strings.TrimSuffix(host, w.suffix)
	if label == "" || strings.Contains(label, ".") || strings.Contains(label, "/") {
		return false
	}
	return true
}

// CORS middleware to handle cross-origin requests
// Reads CORS_ALLOWED_ORIGINS environment variable to restrict origins
// If not set, defaults to "*" (allow all origins)
// Entries may be exact origins or wildcard patterns like "https://*.willowhealth.app".
func CORS() gin.HandlerFunc {
	// Read allowed origins from environment variable
	allowedOriginsStr := os.Getenv("CORS_ALLOWED_ORIGINS")
	allowAll := allowedOriginsStr == ""

	// Parse comma-separated origins
	var exactOrigins []string
	var wildcards []*wildcardOrigin
	if !allowAll {
		for _, origin := range strings.Split(allowedOriginsStr, ",") {
			origin = strings.TrimSpace(origin)
			if w := parseWildcardOrigin(origin); w != nil {
				wildcards = append(wildcards, w)
				continue
			}
			exactOrigins = append(exactOrigins, origin)
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Determine if this origin is allowed
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			allowed := false
			for _, allowedOrigin := range exactOrigins {
				if origin == allowedOrigin {
					allowed = true
					break
				}
			}
			if !allowed {
				for _, w := range wildcards {
					if w.matches(origin) {
						allowed = true
						break
					}
				}
			}

			if allowed {
				c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			} else {
				// Origin not allowed, but still need to respond to preflight
				if c.Request.Method == "OPTIONS" {
					c.AbortWithStatus(403)
					return
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, Idempotency-Key, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
