package nametable

import "testing"

func TestOp_String(t *testing.T) {
	if OpInserted.String() != "inserted" || OpRemoved.String() != "removed" || OpModified.String() != "modified" || OpNone.String() != "none" {
		t.Fatalf("unexpected Op.String values")
	}
	if got := Op(999).String(); got != "invalid op 999" {
		t.Fatalf("Op(999).String() = %q, wanted %q", got, "invalid op 999")
	}
}

func TestChangeEvent_String(t *testing.T) {
	if got := (ChangeEvent{Op: OpRemoved, Index: 3}).String(); got != "removed(3)" {
		t.Fatalf("String() = %q, wanted %q", got, "removed(3)")
	}
	if got := (ChangeEvent{Op: OpModified, Index: 3, Prev: NewName("a")}).String(); got != `modified(3, was "a")` {
		t.Fatalf("String() = %q, wanted %q", got, `modified(3, was "a")`)
	}
}
