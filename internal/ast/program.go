package ast

import (
	"ember/internal/source"
)

// Program is the root: the ordered top-level items of one file. Its span
// runs from the first item's start to the last item's end; an empty
// program has a zero-width span at offset 0.
type Program struct {
	Span  source.Span
	Items []ItemID
}

type Programs struct {
	Arena *Arena[Program]
}

func NewPrograms(capHint uint) *Programs {
	return &Programs{
		Arena: NewArena[Program](capHint),
	}
}

func (p *Programs) New(sp source.Span) ProgramID {
	return ProgramID(p.Arena.Allocate(Program{
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (p *Programs) Get(id ProgramID) *Program {
	return p.Arena.Get(uint32(id))
}
