package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key carrying the request ID
const RequestIDKey = "request_id"

// RequestIDHeader is the header the ID is read from and echoed back on
const RequestIDHeader = "X-Request-ID"

// RequestID adds a unique request ID to each request, honoring an inbound
// X-Request-ID so IDs propagate across services
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID set by the RequestID middleware
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func generateRequestID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(bytes)
}
