package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format is the encoding of streamed and dumped events.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// ParseFormat parses auto, text, ndjson or json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent renders ev as one newline-terminated record.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type jsonEvent struct {
	Time      string      `json:"time"`
	Seq       uint64      `json:"seq"`
	Session   string      `json:"session,omitempty"`
	Kind      string      `json:"kind"`
	Scope     string      `json:"scope"`
	SpanID    uint64      `json:"span_id,omitempty"`
	ParentID  uint64      `json:"parent_id,omitempty"`
	Name      string      `json:"name"`
	Detail    string      `json:"detail,omitempty"`
	ElapsedUS int64       `json:"elapsed_us,omitempty"`
	Fields    []jsonField `json:"fields,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	j := jsonEvent{
		Time:      ev.Time.UTC().Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Session:   ev.Session,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		ElapsedUS: ev.Elapsed.Microseconds(),
	}
	for _, f := range ev.Fields {
		j.Fields = append(j.Fields, jsonField(f))
	}
	data, err := json.Marshal(j)
	if err != nil {
		return dst
	}
	return append(append(dst, data...), '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "\u2192",
	KindSpanEnd:   "\u2190",
	KindPoint:     "\u2022",
}

// appendText renders
//
//	[    12] pass     ← parse (ok) 1.204ms items=3
//
// Children of a span are indented by two spaces.
func appendText(dst []byte, ev *Event) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%6d] %-8s", ev.Seq, ev.Scope)
	if ev.ParentID != 0 {
		sb.WriteString("  ")
	}
	sb.WriteString(kindMarks[ev.Kind])
	sb.WriteByte(' ')
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %s", ev.Elapsed.Round(time.Microsecond))
	}
	for _, f := range ev.Fields {
		fmt.Fprintf(&sb, " %s=%s", f.Key, f.Value)
	}
	sb.WriteByte('\n')
	return append(dst, sb.String()...)
}
