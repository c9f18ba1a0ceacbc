package trace

import (
	"fmt"
	"strings"
)

// Level is the verbosity of a tracer.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // nothing streamed; the ring keeps phases for dumps
	LevelPhase        // driver and pass spans
	LevelDetail       // plus per-file events
	LevelDebug        // plus one event per token, item and value
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by Level.String, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil // #nosec G115 -- index of a five-element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// finest returns the finest scope streamed at l, or 0 when nothing is.
func (l Level) finest() Scope {
	switch l {
	case LevelPhase:
		return ScopePass
	case LevelDetail:
		return ScopeModule
	case LevelDebug:
		return ScopeNode
	default:
		return 0
	}
}

// ShouldEmit reports whether events of scope are streamed at l.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope != 0 && scope <= l.finest()
}
