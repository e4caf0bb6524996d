package interp

import (
	"bufio"
	"io"

	"tapesynth/internal/code"
	"tapesynth/internal/errcode"
	"tapesynth/internal/machine"
)

// RunLive executes a full, well-parenthesised program against a live tape,
// reading ',' one byte at a time from in and writing '.' to out — the
// "plain interpreter mode" external interface named in spec.md §1/§6. It
// shares no state with search mode's Run: there is no target to compare
// against, and ',' is a normal instruction rather than an immediate
// InputToken classification. A read past EOF yields the byte 0, the
// common tape-machine convention.
func RunLive(c *code.Packed, jt *code.JumpTable, in io.Reader, out io.Writer) error {
	if !jt.Closed() {
		return errcode.Newf("program has unclosed loops")
	}

	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	var st machine.State
	codeLen := c.Size()

	for st.PC < codeLen {
		ins := c.Get(st.PC)
		switch ins {
		case code.Inc:
			st.Inc()
			st.PC++
		case code.Dec:
			st.Dec()
			st.PC++
		case code.Left:
			if st.AtLeftBoundary() {
				return errcode.Newf("tape head moved left of cell 0")
			}
			st.MoveLeft()
			st.PC++
		case code.Right:
			if st.AtRightBoundary() {
				return errcode.Newf("tape head moved right of cell %d", machine.Width-1)
			}
			st.MoveRight()
			st.PC++
		case code.LoopStart:
			if st.Cell() == 0 {
				st.PC = int(jt.Target(st.PC))
			} else {
				st.PC++
			}
		case code.LoopEnd:
			if st.Cell() != 0 {
				st.PC = int(jt.Target(st.PC))
			} else {
				st.PC++
			}
		case code.Input:
			b, err := r.ReadByte()
			if err == io.EOF {
				b = 0
			} else if err != nil {
				return errcode.Wrap(err, "reading input")
			}
			st.Tape[st.Head] = b
			st.PC++
		case code.Output:
			if err := w.WriteByte(st.Cell()); err != nil {
				return errcode.Wrap(err, "writing output")
			}
			st.OutCursor++
			st.PC++
		}
	}

	return nil
}
