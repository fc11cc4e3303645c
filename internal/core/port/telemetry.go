package port

import (
	"context"
	"time"
)

// Span is a minimal tracing span so repositories and services can emit
// telemetry without depending on a concrete backend.
type Span interface {
	End()
	SetAttributes(attrs map[string]interface{})
	SetStatus(code string, message string)
	RecordError(err error)
}

type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, Span)
	StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, Span)

	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{})

	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID int, userID int)

	RecordError(ctx context.Context, operation string, err error)
}
