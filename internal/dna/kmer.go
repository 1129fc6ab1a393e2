// Package dna implements the packed DNA k-mer value type: a fixed-length
// string over {A,C,G,T} stored two bits per base in a single 64-bit word.
package dna

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLength is the largest k-mer (or edge) length that fits in one 64-bit
// word at two bits per base.
const MaxLength = 32

// ErrCapacity is returned when an append would exceed MaxLength bases.
var ErrCapacity = errors.New("dna: k-mer at capacity")

// ErrInvalidBase is returned when a byte outside {A,C,G,T,a,c,g,t} is given
// to an append or decode operation.
var ErrInvalidBase = errors.New("dna: invalid base")

// base codes: A=0, C=1, G=2, T=3
const literal = "ACGT"

func encode(ch byte) (uint64, error) {
	switch ch {
	case 'A', 'a':
		return 0, nil
	case 'C', 'c':
		return 1, nil
	case 'G', 'g':
		return 2, nil
	case 'T', 't':
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBase, ch)
	}
}

// Complement returns the complementary base character of ch (A<->T, C<->G).
func Complement(ch byte) (byte, error) {
	code, err := encode(ch)
	if err != nil {
		return 0, err
	}
	return literal[code^3], nil
}

// Kmer is an immutable-by-copy packed DNA string of up to MaxLength bases.
// Bases are packed MSB-first within the low 2*length bits of body: the
// first base of the string occupies the most significant occupied field,
// so two k-mers of equal length compare lexicographically by comparing
// their bodies as plain uint64 values.
type Kmer struct {
	body   uint64
	length uint8
}

// New builds a Kmer from a string of ACGT characters. It fails if s is
// longer than MaxLength or contains a non-base character.
func New(s string) (Kmer, error) {
	var k Kmer
	for i := 0; i < len(s); i++ {
		if err := k.AppendBack(s[i]); err != nil {
			return Kmer{}, err
		}
	}
	return k, nil
}

// Len returns the number of bases held.
func (k Kmer) Len() int { return int(k.length) }

// Body returns the raw packed 64-bit representation.
func (k Kmer) Body() uint64 { return k.body }

// FromBody reconstructs a Kmer of the given length from a raw packed body.
// The caller is responsible for the body having no set bits above
// 2*length; this is how stored/serialized k-mers are restored.
func FromBody(body uint64, length int) Kmer {
	return Kmer{body: body, length: uint8(length)}
}

// AppendBack appends a base to the end of the k-mer.
func (k *Kmer) AppendBack(ch byte) error {
	if int(k.length) >= MaxLength {
		return ErrCapacity
	}
	code, err := encode(ch)
	if err != nil {
		return err
	}
	k.body = (k.body << 2) | code
	k.length++
	return nil
}

// AppendFront prepends a base to the start of the k-mer.
func (k *Kmer) AppendFront(ch byte) error {
	if int(k.length) >= MaxLength {
		return ErrCapacity
	}
	code, err := encode(ch)
	if err != nil {
		return err
	}
	k.body |= code << (2 * k.length)
	k.length++
	return nil
}

// PopBack removes and returns the last base.
func (k *Kmer) PopBack() (byte, error) {
	if k.length == 0 {
		return 0, errors.New("dna: pop from empty k-mer")
	}
	code := k.body & 3
	k.body >>= 2
	k.length--
	return literal[code], nil
}

// PopFront removes and returns the first base.
func (k *Kmer) PopFront() (byte, error) {
	if k.length == 0 {
		return 0, errors.New("dna: pop from empty k-mer")
	}
	shift := 2 * (k.length - 1)
	code := (k.body >> shift) & 3
	k.body &^= uint64(3) << shift
	k.length--
	return literal[code], nil
}

// Char returns the base at position i (0-indexed from the start).
func (k Kmer) Char(i int) byte {
	shift := 2 * (int(k.length) - 1 - i)
	code := (k.body >> uint(shift)) & 3
	return literal[code]
}

// Equal reports whether two k-mers have identical length and body.
func (k Kmer) Equal(other Kmer) bool {
	return k.length == other.length && k.body == other.body
}

// Reverse returns the k-mer with its base order reversed (no complement).
func (k Kmer) Reverse() Kmer {
	var out Kmer
	out.length = k.length
	for i := 0; i < int(k.length); i++ {
		code := (k.body >> uint(2*i)) & 3
		out.body |= code << uint(2*(int(k.length)-1-i))
	}
	return out
}

// Complement returns the k-mer with every base complemented in place
// (order preserved).
func (k Kmer) Complement() Kmer {
	mask := uint64(1)<<(2*k.length) - 1
	return Kmer{body: (^k.body) & mask, length: k.length}
}

// ReverseComplement returns the reverse complement of the k-mer: the
// standard other-strand reading of the same DNA.
func (k Kmer) ReverseComplement() Kmer {
	return k.Reverse().Complement()
}

// Canonical returns the lexicographically smaller of k and its reverse
// complement, identifying both strands with a single representative.
func (k Kmer) Canonical() Kmer {
	rc := k.ReverseComplement()
	if rc.body < k.body {
		return rc
	}
	return k
}

// IsPalindrome reports whether the k-mer equals its own reverse complement.
func (k Kmer) IsPalindrome() bool {
	return k.Equal(k.ReverseComplement())
}

// String renders the k-mer as an uppercase ACGT string.
func (k Kmer) String() string {
	var sb strings.Builder
	sb.Grow(int(k.length))
	for i := 0; i < int(k.length); i++ {
		sb.WriteByte(k.Char(i))
	}
	return sb.String()
}
