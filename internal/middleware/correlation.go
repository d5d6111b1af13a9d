package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CorrelationIDHeader carries the correlation id across services
	CorrelationIDHeader = "X-Correlation-ID"

	correlationIDKey = "correlationID"
)

// CorrelationID reuses the caller's correlation id or issues a new one, and
// tags the active span with it
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(correlationIDKey, correlationID)
		c.Header(CorrelationIDHeader, correlationID)

		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			span.SetAttributes(attribute.String("correlation.id", correlationID))
			if draftID := c.Param("draftId"); draftID != "" {
				span.SetAttributes(attribute.String("draft.id", draftID))
			}
		}

		c.Next()
	}
}

// GetCorrelationID extracts correlation ID from Gin context
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}

// GetTraceID extracts trace ID from the current span
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}

// GetSpanID extracts span ID from the current span
func GetSpanID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
		return span.SpanContext().SpanID().String()
	}
	return ""
}
