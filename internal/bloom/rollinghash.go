package bloom

import "fmt"

// baseCode maps an uppercase ACGT byte to its 2-bit code, matching
// internal/dna's encoding (A=0, C=1, G=2, T=3).
func baseCode(ch byte) (uint64, error) {
	switch ch {
	case 'A':
		return 0, nil
	case 'C':
		return 1, nil
	case 'G':
		return 2, nil
	case 'T':
		return 3, nil
	default:
		return 0, fmt.Errorf("bloom: invalid base %q", ch)
	}
}

func roL(v uint64, n uint) uint64 {
	n &= 63
	if n == 0 {
		return v
	}
	return (v << n) | (v >> (64 - n))
}

func roR(v uint64, n uint) uint64 {
	n &= 63
	if n == 0 {
		return v
	}
	return (v >> n) | (v << (64 - n))
}

// cyclicHasher is one seeded cyclic-polynomial (ntHash-style) rolling
// hash: it tracks both the forward hash of the window and the hash of
// its reverse complement, so the value it reports is already canonical
// (the smaller of the two) without ever materializing the
// reverse-complement characters. Four random per-base values stand in
// for ntHash's fixed table, reseeded per hasher so a bank of q of these
// behaves like q independent hash functions.
type cyclicHasher struct {
	table [4]uint64 // forward per-base values, indexed by base code
	width uint
	fh    uint64
	rh    uint64
}

func newCyclicHasher(width int, seed uint64) *cyclicHasher {
	h := &cyclicHasher{width: uint(width)}
	rng := newSplitMix64(seed)
	for i := range h.table {
		h.table[i] = rng.next()
	}
	return h
}

// rcValue returns the table entry for the complement of code c, i.e.
// the value ntHash's rcHash would use: the complement of a base under
// A=0,C=1,G=2,T=3 is 3-c.
func (h *cyclicHasher) rcValue(code uint64) uint64 {
	return h.table[3-code]
}

// init seeds fh/rh from a full window of base codes (len(codes) ==
// h.width), matching ntf64/ntr64.
func (h *cyclicHasher) init(codes []uint64) {
	var fh, rh uint64
	n := len(codes)
	for _, c := range codes {
		fh = roL(fh, 1) ^ h.table[c]
	}
	for i := 0; i < n; i++ {
		c := codes[n-1-i]
		rh = roL(rh, 1) ^ h.rcValue(c)
	}
	h.fh, h.rh = fh, rh
}

// roll advances the window by one base: oldCode leaves the front,
// newCode enters the back. O(1), independent of width.
func (h *cyclicHasher) roll(oldCode, newCode uint64) {
	w := h.width
	h.fh = roL(h.fh, 1)
	h.fh ^= roL(h.table[oldCode], w)
	h.fh ^= h.table[newCode]

	h.rh = roR(h.rh, 1)
	h.rh ^= roR(h.rcValue(oldCode), 1)
	h.rh ^= roL(h.rcValue(newCode), w-1)
}

// value returns the canonical hash of the current window.
func (h *cyclicHasher) value() uint64 {
	if h.rh < h.fh {
		return h.rh
	}
	return h.fh
}

// valueOf computes the canonical hash of an arbitrary window of base
// codes without touching the hasher's streaming state. Used by the
// degree test to probe synthetic (k+1)-mers that aren't a rolling
// continuation of the current position.
func (h *cyclicHasher) valueOf(codes []uint64) uint64 {
	saveF, saveR := h.fh, h.rh
	h.init(codes)
	v := h.value()
	h.fh, h.rh = saveF, saveR
	return v
}

// splitMix64 is a small deterministic PRNG used to derive each
// cyclicHasher's per-base table from a single 64-bit seed, so the whole
// bank of q hashers is reproducible from one Config.Seed.
type splitMix64 struct{ state uint64 }

func newSplitMix64(seed uint64) *splitMix64 { return &splitMix64{state: seed} }

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Bank is a set of q independent cyclic rolling hashers sharing one
// window width. Feed builds up the initial window and then rolls it one
// base at a time, each call costing O(1) regardless of width.
type Bank struct {
	width   int
	seeds   []uint64
	hashers []*cyclicHasher
	window  []uint64 // circular buffer of width codes
	head    int
	filled  int
}

// NewBank creates a bank of len(seeds) independent hashers, each over a
// sliding window of `width` bases.
func NewBank(width int, seeds []uint64) *Bank {
	hs := make([]*cyclicHasher, len(seeds))
	for i, s := range seeds {
		hs[i] = newCyclicHasher(width, s)
	}
	return &Bank{
		width:   width,
		seeds:   seeds,
		hashers: hs,
		window:  make([]uint64, width),
	}
}

// Reset clears the current window, e.g. at the start of a new FASTA
// record.
func (b *Bank) Reset() {
	b.head = 0
	b.filled = 0
}

// Feed advances the window by one base. It returns true once the window
// has been full at least once (i.e. Values() is meaningful).
func (b *Bank) Feed(ch byte) (bool, error) {
	code, err := baseCode(ch)
	if err != nil {
		return false, err
	}
	if b.filled < b.width {
		b.window[b.filled] = code
		b.filled++
		if b.filled == b.width {
			for _, h := range b.hashers {
				h.init(b.window)
			}
			return true, nil
		}
		return false, nil
	}

	old := b.window[b.head]
	b.window[b.head] = code
	b.head = (b.head + 1) % b.width
	for _, h := range b.hashers {
		h.roll(old, code)
	}
	return true, nil
}

// Values returns the current canonical hash value for each of the q
// hashers, suitable as Bloom filter bit positions (mod m).
func (b *Bank) Values() []uint64 {
	out := make([]uint64, len(b.hashers))
	for i, h := range b.hashers {
		out[i] = h.value()
	}
	return out
}

// ValuesOf computes the canonical hash values of an arbitrary
// width-length ACGT byte slice without disturbing the bank's streaming
// state, for one-shot membership probes (the degree test's 8 synthetic
// edges).
func (b *Bank) ValuesOf(bases []byte) ([]uint64, error) {
	codes := make([]uint64, len(bases))
	for i, ch := range bases {
		c, err := baseCode(ch)
		if err != nil {
			return nil, err
		}
		codes[i] = c
	}
	out := make([]uint64, len(b.hashers))
	for i, h := range b.hashers {
		out[i] = h.valueOf(codes)
	}
	return out, nil
}

// Width reports the configured window width (k+1, the edge length).
func (b *Bank) Width() int { return b.width }
