package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willowhealth/willow-api/internal/cache"
	"github.com/willowhealth/willow-api/internal/logger"
)

// IdempotencyKeyHeader is the HTTP header name for idempotency keys.
const IdempotencyKeyHeader = "Idempotency-Key"

// idempotencyTTL bounds how long a replayed response stays available.
const idempotencyTTL = 24 * time.Hour

type storedResponse struct {
	StatusCode int
	Body       []byte
}

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency provides at-most-once semantics for create operations.
// If an Idempotency-Key header is provided:
//   - If we've seen this key before for the same route and user, replay the cached response
//   - Otherwise process the request and cache the response for future replays
//
// Only mutating requests (POST, PUT, PATCH) are considered; GETs are
// naturally idempotent and DELETEs converge on repetition.
func Idempotency() gin.HandlerFunc {
	store := cache.New[storedResponse](idempotencyTTL)

	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, exists := c.Get("user_id")
		if !exists {
			log.Warn("idempotency check failed: no user_id in context")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required for idempotent requests"})
			c.Abort()
			return
		}

		userIDStr, ok := userID.(string)
		if !ok {
			log.Error("idempotency check failed: invalid user_id type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}

		// Scope replays to route and user so keys cannot collide across accounts.
		cacheKey := method + " " + c.FullPath() + " " + userIDStr + " " + key

		if existing, found := store.Get(cacheKey); found {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.Int("status_code", existing.StatusCode),
			)

			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, "application/json", existing.Body)
			c.Abort()
			return
		}

		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		// Only cache successful responses (2xx)
		statusCode := c.Writer.Status()
		if statusCode >= 200 && statusCode < 300 {
			store.Set(cacheKey, storedResponse{
				StatusCode: statusCode,
				Body:       blw.body.Bytes(),
			})
			log.Debug("stored idempotency key",
				logger.String("key", key),
				logger.Int("status_code", statusCode),
			)
		}
	}
}
