package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "fieldpro-relay"

// Span is a started OTel span together with the context that carries it.
type Span struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan opens a child span of whatever trace ctx already carries.
//
//	sp := logger.StartSpan(ctx, "gateway.authenticate")
//	defer sp.End()
//	ctx = sp.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *Span {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	return &Span{ctx: ctx, span: span}
}

// StartLinkedSpan opens a span continuing a trace that crossed a process boundary,
// such as a webhook delivery message read back from Redis. An empty or malformed
// traceID starts a fresh root span instead.
func StartLinkedSpan(ctx context.Context, traceID string, name string, opts ...trace.SpanStartOption) *Span {
	parsed, err := trace.TraceIDFromHex(traceID)
	if traceID == "" || err != nil {
		return StartSpan(ctx, name, opts...)
	}

	remote := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    parsed,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})

	opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
	return StartSpan(trace.ContextWithRemoteSpanContext(ctx, remote), name, opts...)
}

// TraceID returns the hex trace id carried by ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

func (s *Span) Context() context.Context {
	return s.ctx
}

// Fail records err on the span and marks it errored. nil is ignored.
func (s *Span) Fail(err error) {
	if s.span == nil || err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End is safe to call more than once.
func (s *Span) End() {
	if s.span != nil {
		s.span.End()
	}
}
