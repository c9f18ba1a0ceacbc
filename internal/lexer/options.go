package lexer

import (
	"ember/internal/diag"
	"ember/internal/trace"
)

// Options configures a lexer run. The zero value is valid: no tracing and
// no reporter.
type Options struct {
	// Tracer receives one node-scope event per scanned and per validated
	// token. Nil means trace.Nop.
	Tracer trace.Tracer
	// Parent is the span ID the token events are attached to.
	Parent uint64
	// Reporter, if set, also receives the diagnostic Validate fails with.
	Reporter diag.Reporter
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

func (o Options) tracing() bool {
	t := o.tracer()
	return t.Enabled() && t.Level().ShouldEmit(trace.ScopeNode)
}

func (o Options) fail(err *diag.Error) *diag.Error {
	err.Report(o.Reporter)
	return err
}
