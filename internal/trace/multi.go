package trace

import "errors"

// MultiTracer sends every event to each of its tracers.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer drops nil tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, tr := range tracers {
		if tr != nil {
			m.tracers = append(m.tracers, tr)
		}
	}
	return m
}

// Emit hands each tracer its own copy: sinks stamp Seq and Session in place.
func (m *MultiTracer) Emit(ev *Event) {
	for _, tr := range m.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range m.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, tr := range m.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }

// Ring returns the first RingTracer among the targets, if any.
func (m *MultiTracer) Ring() *RingTracer {
	for _, tr := range m.tracers {
		if r, ok := tr.(*RingTracer); ok {
			return r
		}
	}
	return nil
}
