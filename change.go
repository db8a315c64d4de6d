package nametable

import (
	"fmt"
)

type (
	// ChangeEvent records a single change of the NameStore.
	ChangeEvent struct {
		Op    Op
		Index uint32

		// Prev is the name displaced by an OpModified change.
		Prev Name
	}

	Op int
)

const (
	OpNone     Op = 0
	OpInserted Op = 1
	OpRemoved  Op = 2
	OpModified Op = 3
)

func (chg ChangeEvent) String() string {
	if chg.Op == OpModified {
		return fmt.Sprintf("%v(%d, was %q)", chg.Op, chg.Index, chg.Prev.String())
	}
	return fmt.Sprintf("%v(%d)", chg.Op, chg.Index)
}

func (v Op) String() string {
	switch v {
	case OpNone:
		return "none"
	case OpInserted:
		return "inserted"
	case OpRemoved:
		return "removed"
	case OpModified:
		return "modified"
	default:
		return fmt.Sprintf("invalid op %d", int(v))
	}
}
