package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request identifiers
	"github.com/sirupsen/logrus" // Logging library
)

// RequestLogger tags each request with a UUID and writes one access
// log line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()           // Fresh ID per request
		c.Set("requestID", requestID)           // Expose to handlers
		c.Header("X-Request-ID", requestID)     // Echo back to the caller
		start := time.Now()                     // Start timer
		c.Next()                                // Run the chain
		// Log method, path, status and latency
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,                // Request ID
			"method":     c.Request.Method,         // HTTP method
			"path":       c.Request.URL.Path,       // Request path
			"status":     c.Writer.Status(),        // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Latency
		}).Info("request") // One line per request
	}
}
