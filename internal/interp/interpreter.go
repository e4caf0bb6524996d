// Package interp is the resumable interpreter: the component that makes
// BFS extension tractable (a child only ever executes the single appended
// instruction against the parent's saved machine state) and makes
// unbounded program loops safe to execute speculatively (the tracking-mode
// cycle detector).
package interp

import (
	"tapesynth/internal/code"
	"tapesynth/internal/machine"
	"tapesynth/internal/seed"
)

// StepCap bounds fast-mode execution. Crossing it does not classify the
// program as non-terminating — it only means fast mode gives up and
// tracking mode is run instead, from the same original resume state.
const StepCap = 131_000

// Run executes s from its resume point against target until a terminal
// outcome. It tries fast mode (no history, bounded by StepCap) first; if
// fast mode exhausts its step budget without reaching a terminal state,
// execution restarts from s.Resume in tracking mode, which has no step cap
// and runs until a terminal outcome (InfiniteLoop included). ws is the caller's reusable cycle
// detection scratch (internal/interp.Workspace); it is only touched when
// tracking mode actually runs.
func Run(s *seed.Seed, target []byte, ws *Workspace) Result {
	if r, ok := run(s.Resume, s.Code, s.Jumps, target, StepCap, nil); ok {
		return r
	}
	ws.Reset()
	ws.ensure(s.Code.Size())
	r, _ := run(s.Resume, s.Code, s.Jumps, target, -1, ws)
	return r
}

// run is the shared stepping loop for both modes. stepCap < 0 means
// unbounded (tracking mode); ws == nil means fast mode (no cycle checks).
// The second return value is false only when fast mode hits its step cap
// without terminating.
func run(start machine.State, c *code.Packed, jt *code.JumpTable, target []byte, stepCap int, ws *Workspace) (Result, bool) {
	st := start
	codeLen := c.Size()

	for steps := 0; stepCap < 0 || steps < stepCap; steps++ {
		if st.PC >= codeLen {
			return terminalAtEndOfCode(st, jt, len(target)), true
		}

		if ws != nil {
			if ws.visit(st.PC, st) {
				return Result{Outcome: InfiniteLoop}, true
			}
		}

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
				return Result{Outcome: TapeHeadBound}, true
			}
			st.MoveLeft()
			st.PC++
		case code.Right:
			if st.AtRightBoundary() {
				return Result{Outcome: OOM}, true
			}
			st.MoveRight()
			st.PC++
		case code.LoopStart:
			target64 := jt.Target(st.PC)
			if target64 == code.OpenPending {
				if st.Cell() == 0 {
					return Result{Outcome: NOOP}, true
				}
				st.PC++
			} else if st.Cell() == 0 {
				st.PC = int(target64)
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
			return Result{Outcome: InputToken}, true
		case code.Output:
			b := st.Cell()
			if st.OutCursor >= len(target) || target[st.OutCursor] != b {
				return Result{Outcome: TargetMismatch}, true
			}
			st.OutCursor++
			st.PC++
		}
	}

	return Result{}, false
}

// terminalAtEndOfCode classifies reaching the end of the program: Success
// if every open bracket closed and every target byte was emitted,
// IncompleteLoopSuccess if brackets remain open, else
// IncompleteOutputSuccess.
func terminalAtEndOfCode(st machine.State, jt *code.JumpTable, targetLen int) Result {
	if !jt.Closed() {
		return Result{Outcome: IncompleteLoopSuccess, Resume: st}
	}
	if st.OutCursor == targetLen {
		return Result{Outcome: Success}
	}
	return Result{Outcome: IncompleteOutputSuccess, Resume: st}
}
