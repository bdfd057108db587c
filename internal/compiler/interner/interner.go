package interner

import "sync"

// Interner deduplicates identifier spellings so repeated names share one
// backing string. Safe for concurrent use: one Interner may be shared by
// parsers running in parallel.
type Interner struct {
	mu    sync.Mutex
	table map[string]string
}

func New() *Interner {
	return &Interner{table: make(map[string]string)}
}

// Intern returns the canonical instance of s.
func (i *Interner) Intern(s string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if canonical, ok := i.table[s]; ok {
		return canonical
	}
	i.table[s] = s
	return s
}

// Len reports how many distinct strings have been interned.
func (i *Interner) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.table)
}
