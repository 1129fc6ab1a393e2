// Package fasta provides a forward, one-character-at-a-time cursor over
// FASTA files. It reads a chunk at a time and classifies each chunk in
// bulk with internal/simd before walking it byte by byte.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ptdtan/vertexenum/internal/simd"
)

const chunkSize = 64 * 1024

// Reader is a forward cursor over the concatenated records of a FASTA
// file. A "record" as exposed by ReadRecord/NextBase is a maximal run of
// ACGT bases: both a '>' header line and a run of ambiguous (non-ACGT)
// characters end the current record, per the spec's mandate that
// ambiguous bases behave as record separators so no k-mer spans them.
type Reader struct {
	f    *os.File
	r    *bufio.Reader
	path string

	buf     [chunkSize]byte
	header  [chunkSize/64 + 1]uint64
	nonACGT [chunkSize/64 + 1]uint64
	n       int // valid bytes in buf
	pos     int // next unread index in buf

	eof      bool
	atRecord bool // currently inside a yieldable base run
}

// Open opens path for reading as a FASTA stream.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: open %s: %w", path, err)
	}
	return &Reader{f: f, r: bufio.NewReaderSize(f, chunkSize), path: path}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

func (r *Reader) fill() error {
	if r.eof {
		return io.EOF
	}
	n, err := io.ReadFull(r.r, r.buf[:])
	if n > 0 {
		r.n = n
		r.pos = 0
		for i := range r.header {
			r.header[i] = 0
			r.nonACGT[i] = 0
		}
		simd.ClassifyBases(r.buf[:n], r.header[:], r.nonACGT[:])
	}
	if err != nil {
		r.eof = true
		if n == 0 {
			return io.EOF
		}
	}
	return nil
}

func (r *Reader) peek() (byte, bool, bool, error) {
	if r.pos >= r.n {
		if err := r.fill(); err != nil {
			return 0, false, false, err
		}
	}
	b := r.buf[r.pos]
	word, bit := r.pos/64, uint(r.pos%64)
	isHeader := r.header[word]&(1<<bit) != 0
	isNonACGT := r.nonACGT[word]&(1<<bit) != 0
	return b, isHeader, isNonACGT, nil
}

func (r *Reader) advance() { r.pos++ }

// ReadRecord advances the cursor to the start of the next record and
// returns true, or returns false once the input is exhausted.
func (r *Reader) ReadRecord() bool {
	r.atRecord = false
	for {
		b, isHeader, isNonACGT, err := r.peek()
		if err != nil {
			return false
		}
		switch {
		case isHeader:
			r.skipHeaderLine()
			r.atRecord = true
			return true
		case isNonACGT:
			// Skip ambiguous/garbage bytes between records (including
			// whitespace before the first header) until real content.
			r.advance()
		default:
			// Bare sequence content with no header (e.g. resuming after
			// an ambiguous-base run mid-record): this position starts a
			// new logical record per the spec's separator rule.
			_ = b
			r.atRecord = true
			return true
		}
	}
}

func (r *Reader) skipHeaderLine() {
	for {
		b, _, _, err := r.peek()
		if err != nil {
			return
		}
		r.advance()
		if b == '\n' {
			return
		}
	}
}

// NextBase returns the next base of the current record, uppercased, and
// true. It returns false once the current record ends: at a header, at
// EOF, or at an ambiguous (non-ACGT) character (which is itself
// consumed, acting as a separator before the next ReadRecord/NextBase
// call exposes what follows).
func (r *Reader) NextBase() (byte, bool) {
	if !r.atRecord {
		return 0, false
	}
	for {
		b, isHeader, isNonACGT, err := r.peek()
		if err != nil {
			r.atRecord = false
			return 0, false
		}
		if isHeader {
			r.atRecord = false
			return 0, false
		}
		if isNonACGT {
			if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
				r.advance()
				continue
			}
			// Ambiguous base: ends this record, consume it.
			r.advance()
			r.atRecord = false
			return 0, false
		}
		r.advance()
		if b >= 'a' {
			b -= 'a' - 'A'
		}
		return b, true
	}
}
