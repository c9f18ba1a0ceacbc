package pipeline

import "time"

// Stage is one step of the per-file pipeline. The zero value means "no
// stage yet" and is used by queued events.
type Stage string

const (
	StageLex     Stage = "lex"     // scan + validate
	StageParse   Stage = "parse"   // tokens to AST
	StageAnalyze Stage = "analyze" // sema pass
	StageRun     Stage = "run"     // evaluation
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageLex, StageParse, StageAnalyze, StageRun}

type stageInfo struct {
	verb   string  // "lexing"
	past   string  // "lexed"
	weight float64 // share of a file's progress reached once the stage starts
}

var stageTable = map[Stage]stageInfo{
	StageLex:     {"lexing", "lexed", 0.1},
	StageParse:   {"parsing", "parsed", 0.3},
	StageAnalyze: {"analyzing", "analyzed", 0.5},
	StageRun:     {"running", "ran", 0.8},
}

// Index returns the position of s in Stages, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Verb is the progressive form shown while the stage runs.
func (s Stage) Verb() string { return stageTable[s].verb }

// Past is the form used in timing summaries.
func (s Stage) Past() string { return stageTable[s].past }

// Weight is the progress fraction credited to a file working in s.
func (s Stage) Weight() float64 { return stageTable[s].weight }

// Status is the state of a file within its current stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Final reports whether no further events follow for the file.
func (s Status) Final() bool {
	return s == StatusDone || s == StatusError
}

// Event reports progress of one file. On final events Elapsed is the time
// the file spent in all stages.
type Event struct {
	Index   int // position of File in the driver's file list
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Drivers call OnEvent from worker
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums stage durations over files. The zero value is ready to use.
type Timings struct {
	dur [4]time.Duration
	set uint8 // bit i: Stages[i] recorded
}

// Add accumulates dur into stage. Unknown stages are ignored.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	i := stage.Index()
	if t == nil || i < 0 {
		return
	}
	t.dur[i] += dur
	t.set |= 1 << i
}

// Has reports whether stage was recorded at least once.
func (t Timings) Has(stage Stage) bool {
	i := stage.Index()
	return i >= 0 && t.set&(1<<i) != 0
}

// Duration returns the accumulated time of stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if i := stage.Index(); i >= 0 {
		return t.dur[i]
	}
	return 0
}

// Sum adds up the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, st := range stages {
		total += t.Duration(st)
	}
	return total
}
