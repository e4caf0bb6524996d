package frontier

import (
	"io"
	"testing"

	"tapesynth/internal/code"
	"tapesynth/internal/machine"
	"tapesynth/internal/seed"
)

func mustSeed(t *testing.T, prog string, resume machine.State) *seed.Seed {
	t.Helper()
	insns := make([]code.Instruction, 0, len(prog))
	for i := 0; i < len(prog); i++ {
		ins, ok := code.ParseInstruction(prog[i])
		if !ok {
			t.Fatalf("bad fixture %q", prog)
		}
		insns = append(insns, ins)
	}
	p := code.Pack(insns)
	jt, err := code.NewJumpTable(p)
	if err != nil {
		t.Fatalf("NewJumpTable(%q): %v", prog, err)
	}
	return seed.New(p, jt, resume)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	const width, length = machine.Width, 3

	seeds := []*seed.Seed{
		mustSeed(t, "+++", machine.State{Head: 1, PC: 3, OutCursor: 0}),
		mustSeed(t, "+[-", machine.State{Head: 0, PC: 3, OutCursor: 0}),
		mustSeed(t, "+>+", machine.State{Head: 1, PC: 3, OutCursor: 1}),
	}

	w, err := NewWriter(dir, width, length, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, s := range seeds {
		w.Append(s)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r, err := OpenReader(dir, width, length)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()

	var got []*seed.Seed
	for {
		s, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, s)
	}

	if len(got) != len(seeds) {
		t.Fatalf("got %d seeds, want %d", len(got), len(seeds))
	}
	for i, want := range seeds {
		g := got[i]
		if g.Code.Display() != want.Code.Display() {
			t.Errorf("seed %d: code = %q, want %q", i, g.Code.Display(), want.Code.Display())
		}
		if g.Resume != want.Resume {
			t.Errorf("seed %d: resume = %+v, want %+v", i, g.Resume, want.Resume)
		}
		if g.Opens != want.Opens {
			t.Errorf("seed %d: opens = %d, want %d", i, g.Opens, want.Opens)
		}
		if g.Jumps.Len() != want.Jumps.Len() {
			t.Errorf("seed %d: jump table length = %d, want %d", i, g.Jumps.Len(), want.Jumps.Len())
		}
		for j := 0; j < want.Jumps.Len(); j++ {
			if g.Jumps.Target(j) != want.Jumps.Target(j) {
				t.Errorf("seed %d entry %d: jump = %d, want %d", i, j, g.Jumps.Target(j), want.Jumps.Target(j))
			}
		}
	}
}

func TestWriterRejectsWrongLength(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, machine.Width, 2, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer w.Flush()

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on length mismatch")
		}
	}()
	w.Append(mustSeed(t, "+++", machine.State{}))
}

func TestReaderRejectsWrongWidthOrLength(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, machine.Width, 1, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Append(mustSeed(t, "+", machine.State{}))
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if _, err := OpenReader(dir, machine.Width, 2); err == nil {
		t.Fatal("expected an error opening a mismatched length")
	}
	if _, err := OpenReader(dir, machine.Width+1, 1); err == nil {
		t.Fatal("expected an error opening a mismatched width (different file name)")
	}
}
