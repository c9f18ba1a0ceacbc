package driver

import (
	"encoding/json"
	"fmt"

	"ember/internal/diag"
	"ember/internal/observ"
	"ember/internal/pipeline"
	"ember/internal/source"
)

// timingNote is the JSON carried by the note of an OBS6001 diagnostic.
type timingNote struct {
	Upto string `json:"upto"`
	Path string `json:"path,omitempty"`
	observ.Report
}

// timingDiagnostic summarises report as an info diagnostic anchored at the
// start of file. The phase breakdown goes into the note as JSON.
func timingDiagnostic(file source.FileID, path string, upto pipeline.Stage, report observ.Report) (*diag.Diagnostic, error) {
	data, err := json.Marshal(timingNote{Upto: string(upto), Path: path, Report: report})
	if err != nil {
		return nil, fmt.Errorf("encode timings: %w", err)
	}
	at := source.At(file, 0)
	msg := fmt.Sprintf("timings (%s): total %.2f ms", upto, report.TotalMS)
	if path != "" {
		msg += ": " + path
	}
	return diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data)), nil
}

// addPastCap stores d even when bag is already full.
func addPastCap(bag *diag.Bag, d *diag.Diagnostic) {
	if bag == nil || d == nil || bag.Add(d) {
		return
	}
	extra := diag.NewBag(1)
	extra.Add(d)
	bag.Merge(extra)
}
