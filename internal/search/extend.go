package search

import (
	"tapesynth/internal/code"
	"tapesynth/internal/seed"
)

// candidates lists the extensions allowed at parent under the canonical-form
// prunes (spec.md §4.5): `,` is never offered (search does not support
// input), and the five cancelling/dead-code pairs are skipped outright rather
// than generated and later discarded, since any pruned extension has an
// equivalent shorter program and so costs nothing toward minimality.
func candidates(parent *seed.Seed) []code.Instruction {
	last, hasLast := lastInstruction(parent)
	out := make([]code.Instruction, 0, 7)

	if parent.Opens > 0 && (!hasLast || last != code.LoopStart) {
		out = append(out, code.LoopEnd)
	}
	out = append(out, code.LoopStart, code.Output)
	if !hasLast || last != code.Right {
		out = append(out, code.Left)
	}
	if !hasLast || last != code.Left {
		out = append(out, code.Right)
	}
	if !hasLast || last != code.Dec {
		out = append(out, code.Inc)
	}
	if !hasLast || last != code.Inc {
		out = append(out, code.Dec)
	}
	return out
}

func lastInstruction(s *seed.Seed) (code.Instruction, bool) {
	if s.Code.Size() == 0 {
		return 0, false
	}
	return s.Code.Get(s.Code.Size() - 1), true
}

// extend clones parent and appends ins, updating the jump table and
// outstanding-open count the same way the parent's own compilation would
// have, without re-walking the prefix (spec.md §4.5).
func extend(parent *seed.Seed, ins code.Instruction) *seed.Seed {
	child := parent.Clone()
	child.Code.Append(ins)
	newIndex := child.Code.Size() - 1

	switch ins {
	case code.LoopStart:
		child.Jumps.AppendLoopStart()
	case code.LoopEnd:
		child.Jumps.AppendLoopEnd(newIndex)
	default:
		child.Jumps.AppendNonBracket()
	}
	child.Opens = child.Jumps.OpenCount()
	return child
}
