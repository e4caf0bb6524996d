// Package machine holds the fixed-width tape and cursors the interpreter
// steps over. The tape width is a compile-time constant: on-disk frontier
// files are only compatible within the width they were written with (the
// file name encodes it — see internal/frontier).
package machine

// Width is the tape width W. The search's minimality claim is only within
// this configured width; spec.md's Non-goals rule out any proof across
// widths. 5 is chosen as a midpoint of the 4–5 range spec.md calls out —
// wide enough for interesting multi-cell accumulator programs, narrow
// enough to keep per-PC visited-state sets (internal/interp) small.
const Width = 5

// State is the tape, head position, program counter, and output cursor at
// a point in execution — a full resume point (§3's "resume machine
// state") or a live snapshot mid-step.
type State struct {
	Tape      [Width]byte
	Head      int
	PC        int
	OutCursor int
}

// Equal reports whether two states have identical tape contents and head
// position. PC and OutCursor are deliberately excluded: the cycle
// detector (internal/interp) partitions by PC separately, and the dedup
// filter (internal/dedup) keys on OutCursor separately — callers compare
// exactly the fields each needs, never the whole struct by accident.
func (s State) Equal(other State) bool {
	return s.Tape == other.Tape && s.Head == other.Head
}

// Cell returns the current tape cell value.
func (s *State) Cell() byte {
	return s.Tape[s.Head]
}

// Inc increments the current cell, wrapping modulo 256.
func (s *State) Inc() {
	s.Tape[s.Head]++
}

// Dec decrements the current cell, wrapping modulo 256.
func (s *State) Dec() {
	s.Tape[s.Head]--
}

// AtLeftBoundary reports whether the head is at cell 0 — moving Left from
// here is a TapeHeadBound classification, not an OOM one.
func (s *State) AtLeftBoundary() bool {
	return s.Head == 0
}

// AtRightBoundary reports whether the head is at the last cell — moving
// Right from here is an OOM classification (spec.md §9: the far edge is
// OOM, distinguishing it from the near-edge TapeHeadBound so pruning can
// tell them apart).
func (s *State) AtRightBoundary() bool {
	return s.Head == Width-1
}

// MoveLeft decrements the head. Callers must check AtLeftBoundary first.
func (s *State) MoveLeft() {
	s.Head--
}

// MoveRight increments the head. Callers must check AtRightBoundary first.
func (s *State) MoveRight() {
	s.Head++
}
