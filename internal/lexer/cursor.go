package lexer

import (
	"fmt"
	"unicode/utf8"

	"ember/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek декодирует текущую руну, не сдвигая курсор.
// На EOF возвращает (utf8.RuneError, 0). Невалидный байт UTF-8
// возвращается как (utf8.RuneError, 1).
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	r, sz := c.Peek()
	if sz == 0 {
		return utf8.RuneError
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bump overflow: %w", err))
	}
	c.Off += usz
	return r
}

// BumpWhile consumes runes while pred holds and reports how many it took.
func (c *Cursor) BumpWhile(pred func(rune) bool) int {
	n := 0
	for !c.EOF() {
		r, _ := c.Peek()
		if !pred(r) {
			break
		}
		c.Bump()
		n++
	}
	return n
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// TextFrom returns the bytes consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[uint32(m):c.Off])
}
