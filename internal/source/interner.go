package source

import (
	"slices"
)

// StringID is an index into an Interner.
type StringID uint32

// NoStringID is the id of the empty string; used for absent names.
const NoStringID StringID = 0

// Interner deduplicates identifier-like strings (command names, qualifiers)
// so the AST can refer to them by a small stable index.
type Interner struct {
	byID  []string            // byID[0] = "" для NoStringID
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, inserting it when new.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// своя копия, чтобы не держать весь исходный буфер
	cpy := string([]byte(s))
	id := StringID(mustU32(len(i.byID)))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id; false for unknown ids.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on unknown ids.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id was issued by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings including the empty one.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all strings by id.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
