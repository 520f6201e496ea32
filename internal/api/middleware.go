package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voicerag/campus-assistant-go/internal/metrics"
	"github.com/voicerag/campus-assistant-go/internal/ratelimit"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns every request an ID, honoring one the
// client already sent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// RateLimitMiddleware throttles requests per client IP. Rejected
// requests get a 429 and never reach the handler.
func RateLimitMiddleware(limiter *ratelimit.PerKeyLimiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			if m != nil {
				m.RecordRateLimiterDrop("client")
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": "error",
				"error":  "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
