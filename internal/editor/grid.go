// Package editor is the byte-grid editor's data contract: the model a
// terminal front-end would render and mutate while building up a target
// byte sequence for search. spec.md scopes the terminal UI itself out as an
// external collaborator; what lives here is the state it would drive and a
// thin line-oriented command loop exercising that state, grounded on the
// teacher's internal/repl structure (a bufio.Scanner read loop, one command
// per line).
package editor

import "fmt"

// Grid holds the byte sequence under edit and a cursor into it. The name
// keeps faith with "byte-grid editor": a future renderer lays these bytes
// out as a grid, but the contract here only needs a flat, cursor-addressed
// sequence.
type Grid struct {
	bytes  []byte
	cursor int
}

// NewGrid builds a Grid seeded with initial's bytes (copied, never aliased).
func NewGrid(initial []byte) *Grid {
	b := make([]byte, len(initial))
	copy(b, initial)
	return &Grid{bytes: b}
}

// Bytes returns the current target sequence. Callers must not mutate the
// returned slice.
func (g *Grid) Bytes() []byte {
	return g.bytes
}

// Len reports the number of bytes in the grid.
func (g *Grid) Len() int {
	return len(g.bytes)
}

// Cursor returns the current cursor position, always in [0, Len()].
func (g *Grid) Cursor() int {
	return g.cursor
}

// MoveTo clamps pos into [0, Len()] and sets the cursor there.
func (g *Grid) MoveTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(g.bytes) {
		pos = len(g.bytes)
	}
	g.cursor = pos
}

// MoveLeft moves the cursor back one position, clamped at 0.
func (g *Grid) MoveLeft() {
	g.MoveTo(g.cursor - 1)
}

// MoveRight moves the cursor forward one position, clamped at Len().
func (g *Grid) MoveRight() {
	g.MoveTo(g.cursor + 1)
}

// SetAt overwrites the byte at i. i must be < Len().
func (g *Grid) SetAt(i int, v byte) error {
	if i < 0 || i >= len(g.bytes) {
		return fmt.Errorf("editor: index %d out of bounds (len %d)", i, len(g.bytes))
	}
	g.bytes[i] = v
	return nil
}

// InsertAt inserts v at i, shifting everything at or after i one position
// right. i == Len() appends.
func (g *Grid) InsertAt(i int, v byte) error {
	if i < 0 || i > len(g.bytes) {
		return fmt.Errorf("editor: index %d out of bounds (len %d)", i, len(g.bytes))
	}
	g.bytes = append(g.bytes, 0)
	copy(g.bytes[i+1:], g.bytes[i:])
	g.bytes[i] = v
	if g.cursor >= i {
		g.cursor++
	}
	return nil
}

// DeleteAt removes the byte at i, shifting everything after it left.
func (g *Grid) DeleteAt(i int) error {
	if i < 0 || i >= len(g.bytes) {
		return fmt.Errorf("editor: index %d out of bounds (len %d)", i, len(g.bytes))
	}
	g.bytes = append(g.bytes[:i], g.bytes[i+1:]...)
	if g.cursor > i {
		g.cursor--
	}
	return nil
}

// Render renders the grid as a row of two-digit hex byte values, each
// followed by a space; the cursor is not marked (the command loop's show
// prints it on its own line). This is the closest this data contract comes
// to a "grid": a terminal front-end would lay this out with real cell
// graphics, this is its headless equivalent for the command loop and for
// tests.
func (g *Grid) Render() string {
	out := make([]byte, 0, len(g.bytes)*3+1)
	for _, b := range g.bytes {
		out = append(out, []byte(fmt.Sprintf("%02X ", b))...)
	}
	return string(out)
}
