package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Bag collects diagnostics up to a fixed cap. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит достигнут.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic has SevError.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

// Merge appends everything from other, growing the cap if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	items := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	if total := len(b.items) + len(items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, items...)
}

// Sort orders diagnostics by file, start, end, severity (desc) and code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+Primary pairs.
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]bool)
	items := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}
