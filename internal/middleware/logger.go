package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger middleware provides structured logging for HTTP requests
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		traceID, spanID := "", ""
		if span := trace.SpanFromContext(param.Request.Context()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
			spanID = span.SpanContext().SpanID().String()
		}

		logger.Info("HTTP Request",
			zap.String("method", param.Method),
			zap.String("path", param.Path),
			zap.String("query", param.Request.URL.RawQuery),
			zap.Int("status", param.StatusCode),
			zap.Duration("latency", param.Latency),
			zap.String("clientIP", param.ClientIP),
			zap.String("userAgent", param.Request.UserAgent()),
			zap.String("correlationID", stringKey(param.Keys, "correlationID")),
			zap.String("traceID", traceID),
			zap.String("spanID", spanID),
			zap.String("userID", stringKey(param.Keys, "userID")),
			zap.Time("timestamp", param.TimeStamp),
		)

		return ""
	})
}

// ErrorLogger middleware logs errors with correlation, trace, and span IDs
func ErrorLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, err := range c.Errors {
			logger.Error("Request error",
				zap.Error(err.Err),
				zap.String("type", fmt.Sprintf("%d", err.Type)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("correlationID", GetCorrelationID(c)),
				zap.String("traceID", GetTraceID(c)),
				zap.String("spanID", GetSpanID(c)),
				zap.String("userID", c.GetString("userID")),
			)
		}
	}
}

func stringKey(keys map[string]interface{}, key string) string {
	if keys == nil {
		return ""
	}
	if v, ok := keys[key].(string); ok {
		return v
	}
	return ""
}
