package code

import "fmt"

// Packed is a 4-bit-per-instruction program buffer: two instructions per
// byte, low nibble at even index, high nibble at odd index. size tracks the
// number of instructions actually stored; bytes may hold unused capacity
// for growth amortised the way append() amortises []byte growth.
type Packed struct {
	bytes []byte
	size  int
}

// New allocates a Packed with size instructions (zero-valued, all Inc) and
// capacity for at least capacity instructions.
func New(size, capacity int) *Packed {
	if capacity < size {
		capacity = size
	}
	return &Packed{
		bytes: make([]byte, (capacity+1)/2),
		size:  size,
	}
}

// Size returns the number of instructions stored.
func (p *Packed) Size() int {
	return p.size
}

// Get returns the instruction at i. i must be < Size(); callers that
// violate this invariant get a panic (programmer error, not a search
// outcome — see internal/errcode).
func (p *Packed) Get(i int) Instruction {
	if i < 0 || i >= p.size {
		panic(fmt.Sprintf("code.Packed.Get: index %d out of bounds (size %d)", i, p.size))
	}
	b := p.bytes[i/2]
	if i%2 == 0 {
		return Instruction(b & 0x0F)
	}
	return Instruction(b >> 4)
}

// Set overwrites the instruction at i. i must be < Size().
func (p *Packed) Set(i int, ins Instruction) {
	if i < 0 || i >= p.size {
		panic(fmt.Sprintf("code.Packed.Set: index %d out of bounds (size %d)", i, p.size))
	}
	idx := i / 2
	if i%2 == 0 {
		p.bytes[idx] = (p.bytes[idx] & 0xF0) | byte(ins&0x0F)
	} else {
		p.bytes[idx] = (p.bytes[idx] & 0x0F) | (byte(ins&0x0F) << 4)
	}
}

// Append grows the program by one instruction, growing the backing store
// geometrically when an extra byte is needed.
func (p *Packed) Append(ins Instruction) {
	i := p.size
	needed := i/2 + 1
	if needed > len(p.bytes) {
		grown := make([]byte, needed*2)
		copy(grown, p.bytes)
		p.bytes = grown
	}
	p.size++
	p.Set(i, ins)
}

// Clone copies the program, preserving backing-store capacity so the BFS
// driver's seed extension never forces a reallocation the parent already
// paid for.
func (p *Packed) Clone() *Packed {
	b := make([]byte, len(p.bytes))
	copy(b, p.bytes)
	return &Packed{bytes: b, size: p.size}
}

// Iter yields instructions in order.
func (p *Packed) Iter(fn func(i int, ins Instruction)) {
	for i := 0; i < p.size; i++ {
		fn(i, p.Get(i))
	}
}

// Display renders the program as its canonical symbol string.
func (p *Packed) Display() string {
	buf := make([]byte, p.size)
	for i := 0; i < p.size; i++ {
		buf[i] = p.Get(i).Symbol()
	}
	return string(buf)
}

// Pack builds a Packed from a sequence of instructions, e.g. a
// user-supplied starting program.
func Pack(seq []Instruction) *Packed {
	p := New(0, len(seq))
	for _, ins := range seq {
		p.Append(ins)
	}
	return p
}
