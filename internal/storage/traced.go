package storage

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"example.com/registro/internal/domain"
)

// SpanAppend is the span name recorded around every append.
const SpanAppend = "store.append"

type tracedAppender struct {
	next   Appender
	tracer trace.Tracer
}

// Traced wraps next so that each Append runs inside a span.
// A nil tracer returns next unchanged.
func Traced(next Appender, tracer trace.Tracer) Appender {
	if tracer == nil {
		return next
	}
	return &tracedAppender{next: next, tracer: tracer}
}

func (t *tracedAppender) Append(ctx context.Context, rec domain.Record) error {
	ctx, span := t.tracer.Start(ctx, SpanAppend, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.Int("store.fields", len(rec.Fields())))

	err := t.next.Append(ctx, rec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Ready forwards to the wrapped store when it supports readiness checks.
func (t *tracedAppender) Ready(ctx context.Context) error {
	if r, ok := t.next.(Readier); ok {
		return r.Ready(ctx)
	}
	return nil
}
