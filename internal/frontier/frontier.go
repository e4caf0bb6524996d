// Package frontier is the out-of-core persistence layer that lets the BFS
// search exceed RAM: one file per program length, written append-only by
// a background serialiser goroutine and read back sequentially once that
// length becomes the parent generation.
//
// File name: program_<W>_seeds_<n>.bin — the width is encoded in the name
// so two different tape widths never collide on disk (spec.md §9 flags a
// source variant that dropped W from the name as the buggy behaviour).
//
// Record layout, concatenated with no delimiter (length is implicit from
// n and W): n bytes of code (one ordinal byte per instruction), n jump
// table entries (signed 64-bit native-endian), W bytes of tape, 1 byte of
// head, then three 64-bit native-endian "machine words": PC, output
// cursor, outstanding-open count. All native-endian — this is a private
// on-disk cache, not an interchange format (spec.md §4.6/§6).
package frontier

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tapesynth/internal/code"
	"tapesynth/internal/errcode"
	"tapesynth/internal/machine"
	"tapesynth/internal/seed"
)

// FileName builds the on-disk name for length n at tape width w.
func FileName(w, n int) string {
	return fmt.Sprintf("program_%d_seeds_%d.bin", w, n)
}

// DefaultBufferSize (1 MiB) sizes the Writer's buffered output when
// NewWriter is given bufSize <= 0, and the Reader's buffered input. It is
// far below a production-scale gigabyte buffer so tests and typical
// interactive runs don't pay for a gigabyte allocation just to write a
// handful of seeds; NewWriter takes a larger size through its bufSize
// argument.
const DefaultBufferSize = 1 << 20

func recordSize(n int) int {
	return n + n*8 + machine.Width + 1 + 8*3
}

func encodeSeed(buf []byte, s *seed.Seed) []byte {
	n := s.Code.Size()
	buf = buf[:0]
	for i := 0; i < n; i++ {
		buf = append(buf, byte(s.Code.Get(i)))
	}
	var word [8]byte
	for i := 0; i < n; i++ {
		binary.NativeEndian.PutUint64(word[:], uint64(s.Jumps.Target(i)))
		buf = append(buf, word[:]...)
	}
	buf = append(buf, s.Resume.Tape[:]...)
	buf = append(buf, byte(s.Resume.Head))
	binary.NativeEndian.PutUint64(word[:], uint64(s.Resume.PC))
	buf = append(buf, word[:]...)
	binary.NativeEndian.PutUint64(word[:], uint64(s.Resume.OutCursor))
	buf = append(buf, word[:]...)
	binary.NativeEndian.PutUint64(word[:], uint64(s.Opens))
	buf = append(buf, word[:]...)
	return buf
}

func decodeSeed(buf []byte, n int) (*seed.Seed, error) {
	if len(buf) != recordSize(n) {
		return nil, errcode.Newf("frontier: short record: got %d bytes, want %d", len(buf), recordSize(n))
	}
	insns := make([]code.Instruction, n)
	for i := 0; i < n; i++ {
		insns[i] = code.Instruction(buf[i])
	}
	p := code.Pack(insns)

	jt := make([]int64, n)
	off := n
	for i := 0; i < n; i++ {
		jt[i] = int64(binary.NativeEndian.Uint64(buf[off : off+8]))
		off += 8
	}
	table := code.RestoreJumpTable(jt)

	var st machine.State
	copy(st.Tape[:], buf[off:off+machine.Width])
	off += machine.Width
	st.Head = int(buf[off])
	off++
	st.PC = int(binary.NativeEndian.Uint64(buf[off : off+8]))
	off += 8
	st.OutCursor = int(binary.NativeEndian.Uint64(buf[off : off+8]))
	off += 8
	opens := int(binary.NativeEndian.Uint64(buf[off : off+8]))

	s := seed.New(p, table, st)
	s.Opens = opens
	return s, nil
}

// Writer serialises the current length's frontier to disk. It owns one
// background goroutine draining an unbounded queue so Append never blocks
// on I/O (spec.md §5: "the only blocking operation in the driver is the
// Writer's flush").
type Writer struct {
	n       int
	w       int
	file    *os.File
	buf     *bufio.Writer
	queue   *unboundedQueue
	done    chan error
	bufSize int
}

// NewWriter opens program_<w>_seeds_<n>.bin for truncate-write, writes the
// header, and starts the background serialiser.
func NewWriter(dir string, w, n int, bufSize int) (*Writer, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	path := filepath.Join(dir, FileName(w, n))
	f, err := os.Create(path)
	if err != nil {
		return nil, errcode.Wrap(err, "creating frontier file "+path)
	}

	wr := &Writer{
		n:       n,
		w:       w,
		file:    f,
		buf:     bufio.NewWriterSize(f, bufSize),
		queue:   newUnboundedQueue(),
		done:    make(chan error, 1),
		bufSize: bufSize,
	}

	var header [8]byte
	binary.NativeEndian.PutUint64(header[:], uint64(n))
	if _, err := wr.buf.Write(header[:]); err != nil {
		f.Close()
		return nil, errcode.Wrap(err, "writing frontier header")
	}

	go wr.serialise()
	return wr, nil
}

func (w *Writer) serialise() {
	for {
		b, ok := w.queue.pop()
		if !ok {
			w.done <- nil
			return
		}
		if _, err := w.buf.Write(b); err != nil {
			w.done <- errcode.Wrap(err, "writing frontier record")
			return
		}
	}
}

// Append enqueues s for serialisation. s.Code.Size() must equal the
// Writer's declared length n — a mismatch is a programmer error (a seed
// was routed to the wrong length's file) and panics rather than silently
// corrupting the file.
func (w *Writer) Append(s *seed.Seed) {
	if s.Code.Size() != w.n {
		panic(fmt.Sprintf("frontier.Writer.Append: seed length %d does not match declared length %d", s.Code.Size(), w.n))
	}
	w.queue.push(encodeSeed(nil, s))
}

// Flush closes the queue, joins the serialiser, flushes the buffered
// writer, and closes the file. This is the BFS driver's length barrier
// (spec.md §5): nothing past this call may append to the same Writer.
func (w *Writer) Flush() error {
	w.queue.closeQueue()
	if err := <-w.done; err != nil {
		w.file.Close()
		return err
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return errcode.Wrap(err, "flushing frontier file")
	}
	if err := w.file.Close(); err != nil {
		return errcode.Wrap(err, "closing frontier file")
	}
	return nil
}

// Reader streams a prior length's frontier back in write order.
type Reader struct {
	n int
	r *bufio.Reader
	f *os.File
}

// OpenReader opens program_<w>_seeds_<n>.bin read-only and validates its
// header against the expected length n.
func OpenReader(dir string, w, n int) (*Reader, error) {
	path := filepath.Join(dir, FileName(w, n))
	f, err := os.Open(path)
	if err != nil {
		return nil, errcode.Wrap(err, "opening frontier file "+path)
	}
	r := bufio.NewReaderSize(f, DefaultBufferSize)

	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		f.Close()
		return nil, errcode.Wrap(err, "reading frontier header")
	}
	got := int(binary.NativeEndian.Uint64(header[:]))
	if got != n {
		f.Close()
		return nil, errcode.Newf("frontier: header declares length %d, expected %d", got, n)
	}

	return &Reader{n: n, r: r, f: f}, nil
}

// Next returns the next seed, or io.EOF once the file is exhausted.
func (r *Reader) Next() (*seed.Seed, error) {
	size := recordSize(r.n)
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, errcode.Wrap(err, "reading frontier record")
	}
	return decodeSeed(buf, r.n)
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// Exists reports whether a frontier file for (w, n) is already on disk —
// used by search --resume to skip straight to extending a cached length.
func Exists(dir string, w, n int) bool {
	_, err := os.Stat(filepath.Join(dir, FileName(w, n)))
	return err == nil
}
