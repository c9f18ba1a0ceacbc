package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside a single File.
type Span struct {
	File  FileID
	Start uint32 // включительно
	End   uint32 // не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Merge returns the span running from the start of s to the end of other.
// Spans from different files are not merged; s is returned unchanged.
func (s Span) Merge(other Span) Span {
	if s.File != other.File {
		return s
	}
	end := other.End
	if end < s.Start {
		end = s.Start
	}
	return Span{File: s.File, Start: s.Start, End: end}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

// At returns a zero-width span at off.
func At(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}
