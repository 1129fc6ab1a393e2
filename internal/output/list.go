// Package output assembles the final sorted, deduplicated list of
// canonical bifurcation k-mers and exposes the binary-search identity
// lookup downstream graph consumers query by.
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pierrec/lz4/v4"

	"github.com/ptdtan/vertexenum/internal/dna"
)

// InvalidVertex is returned by IDOf when the k-mer is not a known
// bifurcation.
const InvalidVertex = -1

// List is the ordered, deduplicated set of canonical bifurcation k-mer
// bodies, plus the k-mer length needed to interpret them.
type List struct {
	k      int
	bodies []uint64
	sorted bool
}

// New creates an empty list for k-mers of length k.
func New(k int) *List {
	return &List{k: k}
}

// Append adds a round's confirmed bifurcations. Call Finalize once all
// rounds have appended before querying.
func (l *List) Append(bodies []uint64) {
	l.bodies = append(l.bodies, bodies...)
	l.sorted = false
}

// Finalize sorts the accumulated bodies and removes duplicates. A
// k-mer can only be confirmed in one round by construction (rounds
// partition the hash space), but dedup is cheap insurance.
func (l *List) Finalize() {
	sort.Slice(l.bodies, func(i, j int) bool { return l.bodies[i] < l.bodies[j] })
	if len(l.bodies) == 0 {
		l.sorted = true
		return
	}
	out := l.bodies[:1]
	for _, b := range l.bodies[1:] {
		if b != out[len(out)-1] {
			out = append(out, b)
		}
	}
	l.bodies = out
	l.sorted = true
}

// Count returns the number of distinct canonical bifurcation k-mers.
func (l *List) Count() int { return len(l.bodies) }

// IDOf returns the stable 0-based sort-order index of kmer (checking
// both orientations), or InvalidVertex if it is not a bifurcation.
func (l *List) IDOf(kmer dna.Kmer) int {
	if !l.sorted {
		l.Finalize()
	}
	for _, candidate := range [2]uint64{kmer.Body(), kmer.ReverseComplement().Body()} {
		i := sort.Search(len(l.bodies), func(i int) bool { return l.bodies[i] >= candidate })
		if i < len(l.bodies) && l.bodies[i] == candidate {
			return i
		}
	}
	return InvalidVertex
}

// BodyAt returns the canonical k-mer at sort-order index id.
func (l *List) BodyAt(id int) (dna.Kmer, bool) {
	if id < 0 || id >= len(l.bodies) {
		return dna.Kmer{}, false
	}
	return dna.FromBody(l.bodies[id], l.k), true
}

// binary format: 4 bytes k, 8 bytes count, then count*8 bytes of
// ascending uint64 bodies, all lz4-compressed.

// Save writes the finalized list to path, lz4-compressed.
func (l *List) Save(path string) error {
	if !l.sorted {
		l.Finalize()
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer file.Close()

	zw := lz4.NewWriter(file)
	defer zw.Close()

	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(l.k))
	binary.LittleEndian.PutUint64(header[4:12], uint64(len(l.bodies)))
	if _, err := zw.Write(header[:]); err != nil {
		return err
	}

	buf := make([]byte, 8*len(l.bodies))
	for i, b := range l.bodies {
		binary.LittleEndian.PutUint64(buf[i*8:], b)
	}
	if _, err := zw.Write(buf); err != nil {
		return err
	}
	return zw.Close()
}

// Load reads a list previously written by Save.
func Load(path string) (*List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("output: open %s: %w", path, err)
	}
	defer file.Close()

	zr := lz4.NewReader(file)

	var header [12]byte
	if _, err := io.ReadFull(zr, header[:]); err != nil {
		return nil, fmt.Errorf("output: read header: %w", err)
	}
	k := int(binary.LittleEndian.Uint32(header[0:4]))
	count := binary.LittleEndian.Uint64(header[4:12])

	buf := make([]byte, 8*count)
	if _, err := io.ReadFull(zr, buf); err != nil {
		return nil, fmt.Errorf("output: read bodies: %w", err)
	}

	bodies := make([]uint64, count)
	for i := range bodies {
		bodies[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return &List{k: k, bodies: bodies, sorted: true}, nil
}
