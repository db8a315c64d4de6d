package nametable

import (
	"github.com/cespare/xxhash/v2"
)

// Name is a display name that can be looked up later in the NameTable.
//
// Each Name should be unique among live entities. Duplicates are tolerated but
// make lookups ambiguous.
type Name struct {
	s string
}

func NewName(s string) Name {
	return Name{s}
}

func (n Name) String() string {
	return n.s
}

// Bytes returns an owned copy of the text.
func (n Name) Bytes() []byte {
	return []byte(n.s)
}

func (n Name) IsEmpty() bool {
	return n.s == ""
}

func (n Name) Hash() uint64 {
	return xxhash.Sum64String(n.s)
}
