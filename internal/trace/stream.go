package trace

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
)

// StreamTracer writes each event to w as soon as it is emitted.
type StreamTracer struct {
	mu      sync.Mutex
	w       io.Writer
	buf     []byte
	level   Level
	format  Format
	session string
}

// NewStreamTracer is NewStreamTracerSession with a random session ID.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return NewStreamTracerSession(w, level, format, uuid.NewString())
}

// NewStreamTracerSession stamps every event with session.
func NewStreamTracerSession(w io.Writer, level Level, format Format, session string) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format, session: session}
}

// Session returns the ID stamped on events.
func (t *StreamTracer) Session() string { return t.session }

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Session == "" {
		ev.Session = t.session
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// seq под мьютексом: порядок строк совпадает с порядком номеров
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	if t.format == FormatNDJSON {
		t.buf = appendNDJSON(t.buf[:0], ev)
	} else {
		t.buf = appendText(t.buf[:0], ev)
	}
	// ошибка записи трассы не прерывает конвейер
	_, _ = t.w.Write(t.buf)
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Sync() error }); ok && !isStdStream(t.w) {
		return f.Sync()
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok && !isStdStream(t.w) {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

func isStdStream(w io.Writer) bool {
	return w == os.Stdout || w == os.Stderr
}
