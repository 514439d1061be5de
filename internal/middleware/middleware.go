package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suz-u3n-chu/line-image-bot/internal/domain"
	"github.com/suz-u3n-chu/line-image-bot/internal/observability"
)

func AddRequestID() gin.HandlerFunc {

	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()

		}
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Set("RequestID", requestID)

		ctx := observability.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func CheckContentType() gin.HandlerFunc {

	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")

		parts := strings.Split(contentType, ";")
		if len(parts) == 0 || strings.TrimSpace(strings.ToLower(parts[0])) != "application/json" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid content type, expected application/json"})
			return
		}
		c.Next()
	}
}

// LimitBodySize caps the callback body. Signature verification reads the
// whole body, so an unbounded payload would be hashed byte by byte.
func LimitBodySize(maxsize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(maxsize))
		c.Next()
	}
}

func LoggingRequestMiddleware(logger domain.LoggingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {

		ctx := observability.WithRequestStartTime(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		logger.Info("http_request_start",
			"request_id", c.GetString("RequestID"),
			"method", c.Request.Method,
			"user-agent", c.Request.UserAgent(),
			"path", c.FullPath())

		c.Next()

		if start, ok := observability.GetRequestStartTime(c.Request.Context()); ok {
			logger.Info("http_request_end",
				"request_id", c.GetString("RequestID"),
				"status", c.Writer.Status(),
				"duration_ms", time.Since(start).Milliseconds())
		}
	}
}
