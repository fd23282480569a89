package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"example.com/registro/internal/domain"
	"example.com/registro/internal/storage"
	"example.com/registro/internal/storage/memstore"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func TestTraced_NilTracerPassesThrough(t *testing.T) {
	mem := memstore.New()
	require.Same(t, mem, storage.Traced(mem, nil))
}

func TestTraced_RecordsSpan(t *testing.T) {
	sr, tp := newRecorder(t)
	mem := memstore.New()
	app := storage.Traced(mem, tp.Tracer("test"))

	rec := domain.NewRecord(domain.Form{Name: "Ana"}, time.Now())
	require.NoError(t, app.Append(context.Background(), rec))
	require.Len(t, mem.Records(), 1)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, storage.SpanAppend, spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestTraced_RecordsFailure(t *testing.T) {
	sr, tp := newRecorder(t)
	mem := memstore.New()
	fault := &storage.StoreError{Kind: storage.ErrUnavailable, Path: "registros.csv", Err: errors.New("permission denied")}
	mem.Fail(fault)
	app := storage.Traced(mem, tp.Tracer("test"))

	err := app.Append(context.Background(), domain.Record{})
	require.ErrorIs(t, err, storage.ErrUnavailable)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events(), "error should be recorded as a span event")

	r, ok := app.(storage.Readier)
	require.True(t, ok)
	require.ErrorIs(t, r.Ready(context.Background()), storage.ErrUnavailable)
}

func TestStoreError_Message(t *testing.T) {
	err := &storage.StoreError{Kind: storage.ErrWrite, Path: "registros.csv", Err: errors.New("disk full")}
	require.Equal(t, "store write failed: registros.csv: disk full", err.Error())
	require.ErrorIs(t, err, storage.ErrWrite)
	require.NotErrorIs(t, err, storage.ErrUnavailable)
}
