package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"projecthub/internal/core/port"
)

// OTELProbe implements port.Telemetry on OpenTelemetry.
type OTELProbe struct {
	logger *slog.Logger
}

func NewOTELProbe(logger *slog.Logger) port.Telemetry {
	return &OTELProbe{
		logger: logger,
	}
}

type OTelSpan struct {
	span trace.Span
}

func (s *OTelSpan) End() {
	s.span.End()
}

func (s *OTelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toOTelAttributes(attrs)...)
}

func (s *OTelSpan) SetStatus(code string, message string) {
	var statusCode codes.Code

	switch code {
	case "ok":
		statusCode = codes.Ok
	case "error":
		statusCode = codes.Error
	default:
		statusCode = codes.Unset
	}

	s.span.SetStatus(statusCode, message)
}

func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toOTelAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	otelAttrs := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			otelAttrs = append(otelAttrs, attribute.String(key, v))
		case int:
			otelAttrs = append(otelAttrs, attribute.Int(key, v))
		case int64:
			otelAttrs = append(otelAttrs, attribute.Int64(key, v))
		case float64:
			otelAttrs = append(otelAttrs, attribute.Float64(key, v))
		case bool:
			otelAttrs = append(otelAttrs, attribute.Bool(key, v))
		default:
			otelAttrs = append(otelAttrs, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return otelAttrs
}

func (p *OTELProbe) tracer() trace.Tracer {
	return otel.Tracer("projecthub")
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	otelAttrs := append(toOTelAttributes(attrs),
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
	)

	ctx, span := p.tracer().Start(ctx, spanName, trace.WithAttributes(otelAttrs...))

	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	otelAttrs := append(toOTelAttributes(attrs),
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.Int("user.id", userID),
	)

	ctx, span := p.tracer().Start(ctx, spanName, trace.WithAttributes(otelAttrs...))

	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.Int64("repository.duration_ns", duration.Nanoseconds()),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		p.logger.Error("repository operation failed",
			"entity", entity,
			"operation", operation,
			"error", err)
	}
}

func (p *OTELProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	span := trace.SpanFromContext(ctx)

	span.AddEvent("db.query", trace.WithAttributes(
		attribute.String("db.statement", query),
		attribute.Int("db.args_count", len(args)),
	))
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID int, userID int) {
	span := trace.SpanFromContext(ctx)

	span.AddEvent(event, trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.Int("entity.id", entityID),
		attribute.Int("user.id", userID),
	))
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	p.logger.Error("operation failed", "operation", operation, "error", err)
}
