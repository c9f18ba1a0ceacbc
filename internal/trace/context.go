package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer returns ctx carrying t. A nil t stores Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer on ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithSpan makes span the parent of spans begun from the returned context.
// Filtered spans (ID 0) leave ctx unchanged.
func WithSpan(ctx context.Context, span *Span) context.Context {
	if id := span.ID(); id != 0 {
		return context.WithValue(ctx, spanKey{}, id)
	}
	return ctx
}

// CurrentSpan returns the ID stored by WithSpan, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}
