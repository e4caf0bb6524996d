// Package seed defines the suspendable unit the BFS driver (internal/search)
// carries between program lengths: a partial program plus the machine
// state it must resume from.
package seed

import (
	"tapesynth/internal/code"
	"tapesynth/internal/machine"
)

// Seed is a tuple (packed code, jump table, outstanding-open-bracket
// count, resume machine state). A seed is created once by a successful
// extension attempt, written to the frontier, read back exactly once when
// it becomes a parent, and then discarded — it is never mutated after
// being emitted.
type Seed struct {
	Code    *code.Packed
	Jumps   *code.JumpTable
	Opens   int
	Resume  machine.State
}

// New builds a seed from its parts, computing Opens from the jump table so
// callers never have to keep the two in sync by hand.
func New(c *code.Packed, jt *code.JumpTable, resume machine.State) *Seed {
	return &Seed{Code: c, Jumps: jt, Opens: jt.OpenCount(), Resume: resume}
}

// Clone deep-copies a seed, preserving the underlying Packed/JumpTable
// capacity so the BFS driver's single-instruction extension never forces a
// reallocation the parent already paid for.
func (s *Seed) Clone() *Seed {
	return &Seed{
		Code:   s.Code.Clone(),
		Jumps:  s.Jumps.Clone(),
		Opens:  s.Opens,
		Resume: s.Resume,
	}
}

// Viable reports whether the seed's resume state is a legal suspension
// point: the program compiles (no Unmatched failure already surfaced when
// the jump table was built) and Opens agrees with the jump table's own
// count.
func (s *Seed) Viable() bool {
	return s.Opens == s.Jumps.OpenCount()
}
