package trace

import "time"

// Kind says whether an event opens a span, closes it, or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	// ScopeDriver covers one CLI operation over all files.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one stage (lex, parse, analyze, run) of one file.
	ScopePass
	// ScopeModule covers per-file bookkeeping: the file span, cache, sema.
	ScopeModule
	// ScopeNode is one token, AST item or value.
	ScopeNode
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeModule: "module",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Field is one key/value attached to a span end. Order is preserved.
type Field struct {
	Key   string
	Value string
}

// Event is one record of the trace log.
type Event struct {
	Time     time.Time
	Seq      uint64 // stamped by the sink when zero
	Session  string // stamped by the sink when empty
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "lex", "parse", "file:main.em", "token"
	Detail   string
	// Elapsed is set on KindSpanEnd only.
	Elapsed time.Duration
	Fields  []Field
}
