// Package bloom implements the streaming Bloom filter over (k+1)-mers
// and the rolling hash bank that feeds it. It answers "is this edge
// possibly present?" with no false negatives, the probabilistic core
// the enumerator's degree test relies on.
package bloom

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
)

// Filter is a bit array of m bits queried/set by q hash values at a
// time. No deletions; once a bit transitions false->true during
// construction it is never cleared.
type Filter struct {
	bits []uint64 // m bits packed 64 to a word
	m    uint64
	q    int
}

// NewFilter allocates a filter of m bits for q hash functions per item.
func NewFilter(m uint64, q int) (*Filter, error) {
	if m == 0 {
		return nil, fmt.Errorf("bloom: filter size m must be > 0")
	}
	if q < 1 {
		return nil, fmt.Errorf("bloom: hash count q must be >= 1")
	}
	words := (m + 63) / 64
	return &Filter{bits: make([]uint64, words), m: m, q: q}, nil
}

// Size returns the configured number of bits.
func (f *Filter) Size() uint64 { return f.m }

// HashCount returns q, the number of hash values consulted per item.
func (f *Filter) HashCount() int { return f.q }

func (f *Filter) setBit(pos uint64) {
	word, bit := pos/64, pos%64
	f.bits[word] |= 1 << bit
}

func (f *Filter) getBit(pos uint64) bool {
	word, bit := pos/64, pos%64
	return f.bits[word]&(1<<bit) != 0
}

// Insert sets the q bits addressed by values (each reduced mod m).
// values must have length == f.q (one per rolling hasher in the bank
// that produced them).
func (f *Filter) Insert(values []uint64) {
	for _, v := range values {
		f.setBit(v % f.m)
	}
}

// Contains reports whether every bit addressed by values is set. A
// false here is a guaranteed absence; a true may be a false positive.
func (f *Filter) Contains(values []uint64) bool {
	for _, v := range values {
		if !f.getBit(v % f.m) {
			return false
		}
	}
	return true
}

// binary format: 8 bytes m, 4 bytes q, then the packed bit words
// (little-endian uint64 each), all lz4-compressed on disk.

// Save writes the filter to path, lz4-compressed.
func (f *Filter) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bloom: create %s: %w", path, err)
	}
	defer file.Close()

	zw := lz4.NewWriter(file)
	defer zw.Close()

	var header [12]byte
	binary.LittleEndian.PutUint64(header[0:8], f.m)
	binary.LittleEndian.PutUint32(header[8:12], uint32(f.q))
	if _, err := zw.Write(header[:]); err != nil {
		return err
	}

	buf := make([]byte, 8*len(f.bits))
	for i, w := range f.bits {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	if _, err := zw.Write(buf); err != nil {
		return err
	}
	return zw.Close()
}

// Load reads a filter previously written by Save.
func Load(path string) (*Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bloom: open %s: %w", path, err)
	}
	defer file.Close()

	zr := lz4.NewReader(file)

	var header [12]byte
	if _, err := io.ReadFull(zr, header[:]); err != nil {
		return nil, fmt.Errorf("bloom: read header: %w", err)
	}
	m := binary.LittleEndian.Uint64(header[0:8])
	q := int(binary.LittleEndian.Uint32(header[8:12]))

	words := (m + 63) / 64
	buf := make([]byte, 8*words)
	if _, err := io.ReadFull(zr, buf); err != nil {
		return nil, fmt.Errorf("bloom: read bits: %w", err)
	}

	bits := make([]uint64, words)
	for i := range bits {
		bits[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return &Filter{bits: bits, m: m, q: q}, nil
}
