package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestID reuses an incoming X-Request-ID or generates one, stores it in the
// gin context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs one line per request, tagged with its request id.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[HTTP %s] %s %s -> %d (%s)",
			GetRequestID(c), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		for _, e := range c.Errors {
			log.Printf("[HTTP %s] error: %v", GetRequestID(c), e.Err)
		}
	}
}
