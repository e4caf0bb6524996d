package dedup

import (
	"testing"

	"tapesynth/internal/machine"
)

func TestSeenOrInsert(t *testing.T) {
	f := New(0)
	s1 := machine.State{Head: 1, OutCursor: 2}
	s2 := machine.State{Head: 1, OutCursor: 3}

	if f.SeenOrInsert(Key(s1)) {
		t.Fatal("first insert should report not-seen")
	}
	if !f.SeenOrInsert(Key(s1)) {
		t.Fatal("second insert of the same key should report seen")
	}
	if f.SeenOrInsert(Key(s2)) {
		t.Fatal("a distinct output cursor should be a distinct key")
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
}

func TestKeyIgnoresProgramCounter(t *testing.T) {
	s1 := machine.State{PC: 1}
	s2 := machine.State{PC: 99}
	if Key(s1) != Key(s2) {
		t.Fatal("Key must not depend on PC — only (tape, head, output cursor) define search-equivalence")
	}
}
