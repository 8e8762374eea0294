package telemetry

import (
	"context"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// InstrumentationName names the tracer kiln spans are created with.
const InstrumentationName = "go.trai.ch/kiln"

var _ ports.Telemetry = (*Tracer)(nil)

// Tracer implements ports.Telemetry with OpenTelemetry spans.
// Output written to a vertex becomes span events, one per flushed chunk.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewTracer creates an SDK tracer provider from opts, registers it as the
// global provider and returns a Tracer owning it. Close shuts it down.
func NewTracer(opts ...sdktrace.TracerProviderOption) *Tracer {
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	t := NewTracerFromProvider(tp)
	t.provider = tp
	return t
}

// NewTracerFromProvider creates a Tracer using tp. The caller owns tp.
func NewTracerFromProvider(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(InstrumentationName)}
}

// Record starts a span for the named command.
func (t *Tracer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("kiln.command", name),
		attribute.String("kiln.tool", firstField(name)),
	))
	s := &Span{span: span}
	s.stdout = newLineBuffer(0, s.event("stdout"))
	s.stderr = newLineBuffer(0, s.event("stderr"))
	return ports.ContextWithVertex(ctx, s), s
}

// Close shuts down the provider created by NewTracer, flushing its span
// processors. It does nothing for a Tracer built from a foreign provider.
func (t *Tracer) Close() error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(context.Background())
}

// Span implements ports.Vertex for an OpenTelemetry span.
type Span struct {
	span   trace.Span
	stdout *lineBuffer
	stderr *lineBuffer
}

func (s *Span) event(stream string) func([]byte) {
	return func(data []byte) {
		s.span.AddEvent("output", trace.WithAttributes(
			attribute.String("stream", stream),
			attribute.String("data", string(data)),
		))
	}
}

// Stdout returns a writer turning standard output into span events.
func (s *Span) Stdout() io.Writer {
	return s.stdout
}

// Stderr returns a writer turning standard error into span events.
func (s *Span) Stderr() io.Writer {
	return s.stderr
}

// Complete ends the span, recording err when non-nil.
func (s *Span) Complete(err error) {
	s.flush()
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

// Cached ends the span marked as up to date.
func (s *Span) Cached() {
	s.flush()
	s.span.SetAttributes(attribute.Bool("kiln.cached", true))
	s.span.End()
}

func (s *Span) flush() {
	_ = s.stdout.Close()
	_ = s.stderr.Close()
}

func firstField(cmd string) string {
	if fields := strings.Fields(cmd); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
