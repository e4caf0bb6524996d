package code

// Unmatched is returned by NewJumpTable when a LoopEnd has no outstanding
// opener.
type Unmatched struct {
	Index int
}

func (e *Unmatched) Error() string {
	return "unmatched close bracket"
}

const (
	// NoJump marks a non-bracket instruction.
	NoJump = -1
	// OpenPending marks a LoopStart awaiting its LoopEnd.
	OpenPending = -2
)

// JumpTable is a parallel array over a program: entry i is the index to
// jump to (past the partner bracket) for LoopStart/LoopEnd at i, NoJump for
// any other instruction, or OpenPending for a LoopStart whose match hasn't
// been seen yet.
type JumpTable struct {
	entries []int64
}

// NewJumpTable builds a JumpTable over a closed or partial program by
// single-pass compilation, the empty-push variant: entries start empty and
// are pushed one per instruction, never pre-filled with zeros. (spec.md §9
// flags the pre-fill-then-append variant as the buggy source behaviour;
// this is the form that passes tests S2–S4.)
func NewJumpTable(p *Packed) (*JumpTable, error) {
	jt := &JumpTable{entries: make([]int64, 0, p.Size())}
	openers := make([]int, 0, p.Size())
	for i := 0; i < p.Size(); i++ {
		switch p.Get(i) {
		case LoopStart:
			jt.entries = append(jt.entries, OpenPending)
			openers = append(openers, i)
		case LoopEnd:
			if len(openers) == 0 {
				return nil, &Unmatched{Index: i}
			}
			opener := openers[len(openers)-1]
			openers = openers[:len(openers)-1]
			jt.entries[opener] = int64(i) + 1
			jt.entries = append(jt.entries, int64(opener)+1)
		default:
			jt.entries = append(jt.entries, NoJump)
		}
	}
	return jt, nil
}

// Len reports the number of entries (equal to the underlying program's size).
func (jt *JumpTable) Len() int {
	return len(jt.entries)
}

// Target returns the jump-table entry at i.
func (jt *JumpTable) Target(i int) int64 {
	return jt.entries[i]
}

// OpenCount reports how many entries remain OpenPending — the outstanding
// open-bracket count carried in a Seed.
func (jt *JumpTable) OpenCount() int {
	n := 0
	for _, e := range jt.entries {
		if e == OpenPending {
			n++
		}
	}
	return n
}

// Closed reports whether the program is fully bracket-matched (no
// OpenPending entries remain).
func (jt *JumpTable) Closed() bool {
	return jt.OpenCount() == 0
}

// Clone copies the table, preserving capacity the same way Packed.Clone
// does, so extension never pays for a reallocation the parent already did.
func (jt *JumpTable) Clone() *JumpTable {
	e := make([]int64, len(jt.entries), cap(jt.entries))
	copy(e, jt.entries)
	return &JumpTable{entries: e}
}

// AppendNonBracket records a NoJump entry for a freshly appended
// non-bracket instruction.
func (jt *JumpTable) AppendNonBracket() {
	jt.entries = append(jt.entries, NoJump)
}

// AppendLoopStart records an OpenPending entry for a freshly appended
// LoopStart.
func (jt *JumpTable) AppendLoopStart() {
	jt.entries = append(jt.entries, OpenPending)
}

// RestoreJumpTable rebuilds a JumpTable from raw entries read off disk
// (internal/frontier), bypassing the compilation pass since the entries
// were already validated when the seed was first written.
func RestoreJumpTable(entries []int64) *JumpTable {
	e := make([]int64, len(entries))
	copy(e, entries)
	return &JumpTable{entries: e}
}

// AppendLoopEnd closes the most recently opened (rightmost OpenPending)
// LoopStart against the LoopEnd at the new end of the program. newIndex is
// the index the LoopEnd now occupies. It is a programmer error to call this
// when no opener is outstanding — callers must check OpenCount() > 0 first,
// as the BFS driver's extension table does.
func (jt *JumpTable) AppendLoopEnd(newIndex int) {
	opener := -1
	for i := len(jt.entries) - 1; i >= 0; i-- {
		if jt.entries[i] == OpenPending {
			opener = i
			break
		}
	}
	if opener < 0 {
		panic("code.JumpTable.AppendLoopEnd: no outstanding opener")
	}
	jt.entries[opener] = int64(newIndex) + 1
	jt.entries = append(jt.entries, int64(opener)+1)
}
