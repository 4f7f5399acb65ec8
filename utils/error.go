package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id that ties a response to its log lines.
const RequestIDHeader = "X-Request-ID"

// panicDetails is shown when a handler crashes. Wizard progress lives in
// Redis, so the client can simply retry.
const panicDetails = "Your booking progress has been kept. Please try again, or contact us directly if this keeps happening."

// ErrorResponse is the body of every error the API returns.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// ContextLogger returns the request-scoped logger stored under "logger",
// falling back to the global logger.
func ContextLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// ErrorHandler recovers handler panics into a 500 ErrorResponse.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ContextLogger(c).Error("Unhandled panic",
					zap.Any("panic", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "Internal Server Error",
					Details:   panicDetails,
					RequestID: c.Writer.Header().Get(RequestIDHeader),
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes an ErrorResponse. Server errors are logged at error level,
// client errors at info.
func JSONError(c *gin.Context, status int, message string, details string) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("path", c.FullPath()),
	}
	if details != "" {
		fields = append(fields, zap.String("details", details))
	}

	logger := ContextLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Info(message, fields...)
	}

	c.JSON(status, ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: c.Writer.Header().Get(RequestIDHeader),
	})
}
