package search

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tapesynth/internal/code"
	"tapesynth/internal/errcode"
	"tapesynth/internal/interp"
)

func TestPreprocessUnmatchedClose(t *testing.T) {
	_, err := Preprocess("+]")
	ue, ok := err.(*errcode.UserError)
	if !ok {
		t.Fatalf("err = %v (%T), want *errcode.UserError", err, err)
	}
	if ue.Kind != errcode.UnmatchedClose {
		t.Errorf("Kind = %v, want UnmatchedClose", ue.Kind)
	}
}

func TestPreprocessUnmatchedOpen(t *testing.T) {
	_, err := Preprocess("+[-")
	ue, ok := err.(*errcode.UserError)
	if !ok {
		t.Fatalf("err = %v (%T), want *errcode.UserError", err, err)
	}
	if ue.Kind != errcode.UnmatchedOpen {
		t.Errorf("Kind = %v, want UnmatchedOpen", ue.Kind)
	}
}

func TestPreprocessEmptyProgramIsViable(t *testing.T) {
	s, err := Preprocess("")
	if err != nil {
		t.Fatalf("Preprocess(\"\"): %v", err)
	}
	if s.Code.Size() != 0 {
		t.Errorf("Code.Size() = %d, want 0", s.Code.Size())
	}
	if !s.Viable() {
		t.Error("empty seed should be viable")
	}
}

func runSearch(t *testing.T, target []byte, maxLength int) string {
	t.Helper()
	initial, err := Preprocess("")
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	sol, err := Search(context.Background(), initial, Options{
		Target:    target,
		MaxLength: maxLength,
		Dir:       t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Search(%v): %v", target, err)
	}
	return sol.Display()
}

// executeReference re-runs program through the reference interpreter with
// no target, the independent oracle spec.md §8 prescribes for scenarios
// whose expected program isn't pinned to one exact string: it makes the
// check depend only on what the program actually emits, not on which of
// several equally-minimal programs the search happened to return.
func executeReference(t *testing.T, program string) []byte {
	t.Helper()
	insns := make([]code.Instruction, len(program))
	for i := 0; i < len(program); i++ {
		ins, ok := code.ParseInstruction(program[i])
		if !ok {
			t.Fatalf("executeReference: unrecognised instruction %q in %q", program[i], program)
		}
		insns[i] = ins
	}
	p := code.Pack(insns)
	jt, err := code.NewJumpTable(p)
	if err != nil {
		t.Fatalf("executeReference: %v", err)
	}
	var out bytes.Buffer
	if err := interp.RunLive(p, jt, strings.NewReader(""), &out); err != nil {
		t.Fatalf("executeReference(%q): %v", program, err)
	}
	return out.Bytes()
}

func TestSearchEmptyTarget(t *testing.T) {
	got := runSearch(t, nil, 20)
	if got != "" {
		t.Errorf("Search(nil) = %q, want empty program", got)
	}
}

func TestSearchSingleZeroByte(t *testing.T) {
	got := runSearch(t, []byte{0x00}, 20)
	if got != "." {
		t.Errorf("Search([0x00]) = %q, want %q", got, ".")
	}
}

func TestSearchSingleOneByte(t *testing.T) {
	got := runSearch(t, []byte{0x01}, 20)
	if got != "+." {
		t.Errorf("Search([0x01]) = %q, want %q", got, "+.")
	}
}

func TestSearchThreeByte(t *testing.T) {
	got := runSearch(t, []byte{0x03}, 20)
	if got != "+++." {
		t.Errorf("Search([0x03]) = %q, want %q", got, "+++.")
	}
}

// TestSearchFifteenByte is scenario S5: a target that's cheaper to reach
// with a loop than with fifteen bare increments. The oracle is the
// re-execution spec.md §8 calls for, not a pinned expected string — the
// search is free to return any minimal-length program, as long as it
// actually emits 0x0F.
func TestSearchFifteenByte(t *testing.T) {
	got := runSearch(t, []byte{0x0F}, 24)
	out := executeReference(t, got)
	if !bytes.Equal(out, []byte{0x0F}) {
		t.Fatalf("program %q executed to %v, want [0x0F]", got, out)
	}
}

// TestSearchNoAdjacentForbiddenPairs is scenario S6, combining both of its
// prescribed checks: the canonical-form pruning invariant (no forbidden
// adjacency ever appears) and the independent-oracle re-execution check
// (the returned program actually emits two bytes of value 2).
func TestSearchNoAdjacentForbiddenPairs(t *testing.T) {
	forbidden := []string{"+-", "-+", "<>", "><", "[]"}
	got := runSearch(t, []byte{0x02, 0x02}, 20)
	for _, pair := range forbidden {
		for i := 0; i+len(pair) <= len(got); i++ {
			if got[i:i+len(pair)] == pair {
				t.Errorf("program %q contains forbidden adjacency %q at %d", got, pair, i)
			}
		}
	}

	out := executeReference(t, got)
	if !bytes.Equal(out, []byte{0x02, 0x02}) {
		t.Fatalf("program %q executed to %v, want [0x02 0x02]", got, out)
	}
}
