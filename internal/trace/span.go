package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next process-wide event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh non-zero span ID.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open Begin/End pair. A span filtered out by the tracer level
// has ID 0 and all its methods are no-ops.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	fields  []Field
}

var disabledSpan = Span{}

func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, scope) {
		s := disabledSpan
		return &s
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// Point emits a standalone event. It returns immediately when scope is
// filtered, so hot loops may call it unconditionally.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !emits(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.ID() != 0 {
		s.fields = append(s.fields, Field{Key: key, Value: value})
	}
	return s
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s.ID() == 0 {
		return 0
	}
	now := time.Now()
	elapsed := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  elapsed,
		Fields:   s.fields,
	})
	return elapsed
}

// ID returns the span ID; 0 for nil or filtered spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
