package interp

import "tapesynth/internal/machine"

// Outcome is the interpreter's classification of a terminated execution.
// These are data the BFS driver consumes to decide what to do next — they
// are never wrapped as Go errors (see internal/errcode's package doc).
type Outcome int

const (
	// Success: PC reached end of code, no outstanding opens, output
	// cursor equals len(target).
	Success Outcome = iota
	// IncompleteOutputSuccess: end of code, no outstanding opens, but
	// output cursor < len(target). Carries a resume state.
	IncompleteOutputSuccess
	// IncompleteLoopSuccess: end of code with outstanding opens > 0.
	// Carries a resume state.
	IncompleteLoopSuccess
	// TargetMismatch: an Output instruction emitted a byte that
	// disagrees with target, or output cursor was already at the end.
	TargetMismatch
	// TapeHeadBound: Left executed with the head at cell 0.
	TapeHeadBound
	// OOM: Right executed with the head at the last cell.
	OOM
	// NOOP: LoopStart whose match is still unresolved (OpenPending) and
	// whose cell is zero — the loop body is unreachable in this partial
	// program.
	NOOP
	// InputToken: a ',' was executed; search does not support input.
	InputToken
	// InfiniteLoop: tracking mode detected a (PC, tape, head) recurrence.
	InfiniteLoop
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case IncompleteOutputSuccess:
		return "IncompleteOutputSuccess"
	case IncompleteLoopSuccess:
		return "IncompleteLoopSuccess"
	case TargetMismatch:
		return "TargetMismatch"
	case TapeHeadBound:
		return "TapeHeadBound"
	case OOM:
		return "OOM"
	case NOOP:
		return "NOOP"
	case InputToken:
		return "InputToken"
	case InfiniteLoop:
		return "InfiniteLoop"
	default:
		return "Unknown"
	}
}

// Result is what Run returns: a classification, and — for the two
// Incomplete* outcomes — the resume state the BFS driver adopts for the
// child seed.
type Result struct {
	Outcome Outcome
	Resume  machine.State
}

// HasResume reports whether Resume is meaningful for this result.
func (r Result) HasResume() bool {
	return r.Outcome == IncompleteOutputSuccess || r.Outcome == IncompleteLoopSuccess
}
