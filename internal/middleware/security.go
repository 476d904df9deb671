package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the standard hardening headers on every
// response. The API serves JSON only, so the browser-oriented headers
// are locked all the way down.
func SecurityHeaders() gin.HandlerFunc {
	serverEnv := os.Getenv("WILLOW_SERVER_ENV")
	isProduction := serverEnv == "production"

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Symptom and mood responses are health data; keep them out of
		// shared caches.
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		// HSTS only where TLS terminates in front of us.
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// No HTML is ever served, so nothing may load or embed.
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		c.Next()
	}
}
