package main

import (
	"fmt"
	"io"
	"time"

	"ember/internal/pipeline"
)

// printTimings prints per-stage durations summed over all files.
func printTimings(out io.Writer, timings pipeline.Timings, s *settings) {
	if out == nil || s == nil || !s.timings || s.quiet {
		return
	}
	for _, stage := range pipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", stage.Past(), toMillis(timings.Duration(stage)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
