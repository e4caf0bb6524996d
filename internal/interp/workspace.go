package interp

import "tapesynth/internal/machine"

// tapeHead is the cycle detector's state key: tape contents plus head
// position, at a single program counter. Output cursor is deliberately
// excluded — a revisited (PC, tape, head) triple is sufficient proof of
// non-termination regardless of how much output has been emitted along
// the way (spec.md §4.4).
type tapeHead struct {
	tape [machine.Width]byte
	head int
}

func keyOf(s machine.State) tapeHead {
	return tapeHead{tape: s.Tape, head: s.Head}
}

// shrinkThreshold bounds how large a visited-state set is allowed to grow
// before Workspace.Reset reclaims it outright rather than just clearing
// it. Below this, clearing (not reallocating) keeps allocator churn low
// across the many interpreter calls a BFS length performs.
const shrinkThreshold = 1 << 16

// initialSetCapacity is the starting size hint for a freshly grown visited
// set, chosen so the common case (a handful of loop iterations before
// termination or InfiniteLoop) never reallocates.
const initialSetCapacity = 1024

// Workspace is the per-worker scratch the tracking-mode interpreter uses
// for cycle detection: one visited-state set per program counter. It is
// owned by exactly one worker (see internal/search's sharding) and reused
// across many interpreter calls — allocating fresh sets on every call is
// the allocator churn spec.md §4.4 and §9 call out as dominating runtime
// otherwise. Tape width is fixed at compile time, so unlike the source
// system's global table keyed by (width, worker), a Workspace simply
// travels through the call stack as an explicit argument.
type Workspace struct {
	sets []map[tapeHead]struct{}
}

// NewWorkspace allocates an empty Workspace. Sets are created lazily as
// ensure grows the table to cover longer programs.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// ensure grows the table (never shrinks the table itself) so index pc is
// valid, allocating any newly needed sets.
func (w *Workspace) ensure(codeLen int) {
	for len(w.sets) < codeLen {
		w.sets = append(w.sets, make(map[tapeHead]struct{}, initialSetCapacity))
	}
}

// visit returns true if (pc, state) was already seen, else records it.
func (w *Workspace) visit(pc int, s machine.State) (seen bool) {
	set := w.sets[pc]
	k := keyOf(s)
	if _, ok := set[k]; ok {
		return true
	}
	set[k] = struct{}{}
	return false
}

// Reset clears every visited set for reuse by the next interpreter call,
// retaining capacity below shrinkThreshold and reallocating sets that grew
// past it — trading peak RSS for allocation stability, per spec.md §9.
func (w *Workspace) Reset() {
	for i, set := range w.sets {
		if len(set) > shrinkThreshold {
			w.sets[i] = make(map[tapeHead]struct{}, initialSetCapacity)
			continue
		}
		for k := range set {
			delete(set, k)
		}
	}
}
