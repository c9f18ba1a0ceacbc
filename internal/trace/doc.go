// Package trace provides the structured event log of the Ember toolchain.
//
// A Tracer is passed explicitly to every stage that logs (lexer.Options,
// parser.Options, driver options) or carried on a context.Context. There is
// no package-level logger: a stage that receives no tracer uses Nop.
//
// # Usage
//
//	ember run --trace=- --trace-level=debug main.em
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including one event per token and AST item
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: pipeline phases (lex, parse, sema, eval)
//   - ScopeModule: per-file processing
//   - ScopeNode: tokens and AST items
//
// # Spans and points
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
//
//	trace.Point(t, trace.ScopeNode, "token", tok.String(), span.ID())
package trace
