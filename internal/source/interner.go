package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// NameID identifies an interned identifier.
type NameID uint32

// NoNameID is reserved for the empty name.
const NoNameID NameID = 0

// Interner maps identifier text to stable ids. Names are compared after NFC
// normalisation, so visually identical spellings share an id.
type Interner struct {
	byID  []string          // id -> name (byID[0] = "")
	index map[string]NameID // name -> id
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]NameID{"": NoNameID},
	}
}

// Intern returns the id for s, inserting it if needed.
func (i *Interner) Intern(s string) NameID {
	s = norm.NFC.String(s)
	if id, ok := i.index[s]; ok {
		return id
	}
	// свою копию, чтобы не держать буфер резолвера
	cpy := string([]byte(s))
	id := NameID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the id of s without inserting it.
func (i *Interner) Find(s string) (NameID, bool) {
	id, ok := i.index[norm.NFC.String(s)]
	return id, ok
}

// Lookup returns the name for id.
func (i *Interner) Lookup(id NameID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Len counts interned names, NoNameID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all names in id order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
