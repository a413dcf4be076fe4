package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestID reuses the caller's X-Request-ID when it is a UUID or generates a
// new one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, id)
		}

		c.Set(contextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// LogFormatter is a gin logger format that includes the request ID.
func LogFormatter(param gin.LogFormatterParams) string {
	return fmt.Sprintf("[GIN] %v | %s | %3d | %13v | %15s | %-7s %#v\n%s",
		param.TimeStamp.Format(time.DateTime),
		param.Request.Header.Get(RequestIDHeader),
		param.StatusCode,
		param.Latency,
		param.ClientIP,
		param.Method,
		param.Path,
		param.ErrorMessage,
	)
}
