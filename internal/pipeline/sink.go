package pipeline

import "time"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a plain function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Emit sends one event for the file at position index, if sink is set.
func Emit(sink ProgressSink, index int, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Index: index, File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// EmitQueued marks every file as queued. A path listed twice gets two events.
func EmitQueued(sink ProgressSink, files []string) {
	for i, f := range files {
		Emit(sink, i, f, "", StatusQueued, nil, 0)
	}
}
