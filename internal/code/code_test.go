package code

import "testing"

func seq(s string) []Instruction {
	out := make([]Instruction, 0, len(s))
	for i := 0; i < len(s); i++ {
		ins, ok := ParseInstruction(s[i])
		if !ok {
			panic("bad test fixture: " + s)
		}
		out = append(out, ins)
	}
	return out
}

func TestPackRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		prog string
	}{
		{"empty", ""},
		{"single", "+"},
		{"odd length", "+++"},
		{"even length", "++--"},
		{"all symbols", "+-<>[],."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seq(tt.prog)
			p := Pack(s)

			if got := p.Size(); got != len(s) {
				t.Fatalf("Size() = %d, want %d", got, len(s))
			}
			for i, want := range s {
				if got := p.Get(i); got != want {
					t.Errorf("Get(%d) = %v, want %v", i, got, want)
				}
			}
			if got := p.Display(); got != tt.prog {
				t.Errorf("Display() = %q, want %q", got, tt.prog)
			}
		})
	}
}

func TestPackedCloneIndependence(t *testing.T) {
	p := Pack(seq("++"))
	clone := p.Clone()
	clone.Append(Dec)

	if p.Size() != 2 {
		t.Fatalf("original mutated: size = %d, want 2", p.Size())
	}
	if clone.Size() != 3 || clone.Display() != "++-" {
		t.Fatalf("clone = %q, want %q", clone.Display(), "++-")
	}
}

func TestPackedSetOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds Set")
		}
	}()
	p := Pack(seq("+"))
	p.Set(5, Dec)
}

func TestJumpTableSymmetry(t *testing.T) {
	// [+[-]>]  -- nested brackets at 0/6, 2/4
	p := Pack(seq("[+[-]>]"))
	jt, err := NewJumpTable(p)
	if err != nil {
		t.Fatalf("NewJumpTable: %v", err)
	}
	if !jt.Closed() {
		t.Fatal("expected a fully closed program")
	}

	pairs := [][2]int{{0, 6}, {2, 4}}
	for _, pr := range pairs {
		i, j := pr[0], pr[1]
		if got := jt.Target(i); got != int64(j)+1 {
			t.Errorf("jt[%d] = %d, want %d", i, got, j+1)
		}
		if got := jt.Target(j); got != int64(i)+1 {
			t.Errorf("jt[%d] = %d, want %d", j, got, i+1)
		}
	}
	for _, i := range []int{1, 3, 5} {
		if got := jt.Target(i); got != NoJump {
			t.Errorf("jt[%d] = %d, want NoJump", i, got)
		}
	}
}

func TestJumpTableUnmatchedClose(t *testing.T) {
	p := Pack(seq("]"))
	if _, err := NewJumpTable(p); err == nil {
		t.Fatal("expected unmatched-close error")
	} else if u, ok := err.(*Unmatched); !ok || u.Index != 0 {
		t.Fatalf("err = %v, want *Unmatched{Index: 0}", err)
	}
}

func TestJumpTablePartialLeavesOpenPending(t *testing.T) {
	p := Pack(seq("+["))
	jt, err := NewJumpTable(p)
	if err != nil {
		t.Fatalf("NewJumpTable: %v", err)
	}
	if jt.Closed() {
		t.Fatal("expected an open loop to remain pending")
	}
	if jt.OpenCount() != 1 {
		t.Fatalf("OpenCount() = %d, want 1", jt.OpenCount())
	}
	if got := jt.Target(1); got != OpenPending {
		t.Errorf("jt[1] = %d, want OpenPending", got)
	}
}

func TestJumpTableIncrementalAppendMatchesBatch(t *testing.T) {
	batch, err := NewJumpTable(Pack(seq("+[-]")))
	if err != nil {
		t.Fatalf("NewJumpTable: %v", err)
	}

	incr, err := NewJumpTable(Pack(seq("+")))
	if err != nil {
		t.Fatalf("NewJumpTable: %v", err)
	}
	incr.AppendLoopStart()
	incr.AppendNonBracket()
	incr.AppendLoopEnd(3)

	if incr.Len() != batch.Len() {
		t.Fatalf("Len() = %d, want %d", incr.Len(), batch.Len())
	}
	for i := 0; i < batch.Len(); i++ {
		if incr.Target(i) != batch.Target(i) {
			t.Errorf("entry %d: incr=%d batch=%d", i, incr.Target(i), batch.Target(i))
		}
	}
}
