package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"binimg/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an ID, reusing one sent by the client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(logger.KeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			logger.KeyRequestID, c.GetString(logger.KeyRequestID),
			logger.KeyMethod, c.Request.Method,
			logger.KeyPath, c.FullPath(),
			logger.KeyStatus, c.Writer.Status(),
			logger.KeyClientIP, c.ClientIP(),
			logger.KeyDurationMs, logger.Duration(start),
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("Request completed", args...)
			return
		}
		logger.Info("Request completed", args...)
	}
}
