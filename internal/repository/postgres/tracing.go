package postgres

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/rutea-api/internal/pkg/errors"
)

const tracerName = "github.com/rutea-api/internal/repository/postgres"

// startSpan opens a client span describing one repository call.
func startSpan(ctx context.Context, name, operation, table string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	base := []attribute.KeyValue{
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", table),
	}
	return otel.Tracer(tracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(base, attrs...)...),
	)
}

// endSpan records err on the span. Not-found and validation outcomes are
// expected results and keep the span status unset.
func endSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	if appErr, ok := errors.As(err); ok && appErr.Code < 500 {
		span.SetAttributes(attribute.String("app.error.reason", appErr.Reason))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
