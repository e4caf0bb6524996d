package search

import (
	"tapesynth/internal/code"
	"tapesynth/internal/errcode"
	"tapesynth/internal/machine"
	"tapesynth/internal/seed"
)

// Preprocess parses a user-supplied starting program into the initial
// frontier seed. The starting program must be well-parenthesised — an
// unmatched close is a compilation error from the jump table, an unmatched
// open is a structural check here, since a partial jump table alone can't
// distinguish "legitimately partial" from "the user's program is broken"
// (spec.md §4.5: "which must itself be well-parenthesised").
func Preprocess(program string) (*seed.Seed, error) {
	insns := make([]code.Instruction, 0, len(program))
	for i := 0; i < len(program); i++ {
		ins, ok := code.ParseInstruction(program[i])
		if !ok {
			return nil, errcode.Newf("search: unrecognised instruction %q at position %d", program[i], i)
		}
		insns = append(insns, ins)
	}

	p := code.Pack(insns)
	jt, err := code.NewJumpTable(p)
	if err != nil {
		if u, ok := err.(*code.Unmatched); ok {
			return nil, errcode.NewUnmatchedClose(u.Index)
		}
		return nil, errcode.Wrap(err, "compiling starting program")
	}

	for i := 0; i < jt.Len(); i++ {
		if jt.Target(i) == code.OpenPending {
			return nil, errcode.NewUnmatchedOpen(i)
		}
	}

	return seed.New(p, jt, machine.State{}), nil
}
