// Package dedup implements the BFS driver's dedup filter: a set over
// (tape, head, output-cursor) that suppresses seeds reaching an
// already-seen configuration. It is a RAM structure, populated only by
// IncompleteOutputSuccess classifications (spec.md §4.7) and never written
// to the frontier files. The BFS driver (internal/search) creates a fresh
// Filter for each worker shard at each program length, so a configuration
// is suppressed only when it repeats within one shard of one length;
// repeats across lengths or across shards are not filtered.
package dedup

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"tapesynth/internal/machine"
)

// Filter is the dedup set, expected to hold on the order of millions of
// keys — xxhash is the teacher pack's grounded choice for a high-quality
// non-cryptographic hash at that scale (see DESIGN.md).
type Filter struct {
	seen map[uint64]struct{}
}

// New allocates a Filter with capacity room for capacityHint entries.
func New(capacityHint int) *Filter {
	return &Filter{seen: make(map[uint64]struct{}, capacityHint)}
}

// Key hashes (tape, head, output cursor) into the filter's internal
// representation. Exported so callers can hash once and reuse the value
// (e.g. logging how many distinct keys a length produced) without
// re-hashing.
func Key(s machine.State) uint64 {
	var buf [machine.Width + 8 + 8]byte
	copy(buf[:machine.Width], s.Tape[:])
	binary.LittleEndian.PutUint64(buf[machine.Width:], uint64(s.Head))
	binary.LittleEndian.PutUint64(buf[machine.Width+8:], uint64(s.OutCursor))
	return xxhash.Sum64(buf[:])
}

// SeenOrInsert reports whether key was already present; if not, it is
// inserted and false is returned. This matches the driver's
// consult-then-insert-if-new usage for IncompleteOutputSuccess children.
func (f *Filter) SeenOrInsert(key uint64) bool {
	if _, ok := f.seen[key]; ok {
		return true
	}
	f.seen[key] = struct{}{}
	return false
}

// Len reports the number of distinct keys recorded so far.
func (f *Filter) Len() int {
	return len(f.seen)
}
