package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. At LevelError it
// streams nothing but still records driver and pass spans, so Dump can show
// where a crashed run was.
type RingTracer struct {
	mu      sync.Mutex
	events  []Event
	written uint64 // total events ever stored
	level   Level
}

// NewRingTracer keeps up to capacity events; capacity <= 0 means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) records(scope Scope) bool {
	if t.level == LevelError {
		return scope != 0 && scope <= ScopePass
	}
	return t.level.ShouldEmit(scope)
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.records(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.events[t.written%uint64(len(t.events))] = stored
	t.written++
}

// Snapshot returns the retained events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.events))
	n := min(t.written, size)
	out := make([]Event, 0, n)
	for i := t.written - n; i < t.written; i++ {
		out = append(out, t.events[i%size])
	}
	return out
}

// Dump writes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
