package source

import "sync"

// StringID identifies an interned string. NoStringID maps to "".
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier text so AST nodes can carry a small ID
// instead of a string. It is safe for concurrent use.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // byID[0] = "" для NoStringID
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, inserting it if needed.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	// собственная копия, чтобы не держать исходный буфер
	cpy := string([]byte(s))
	id = StringID(len(i.byID)) // #nosec G115 -- interner never holds 2^32 strings
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id and whether id is valid.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Len counts interned strings including the reserved "".
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}
