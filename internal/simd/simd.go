// Package simd classifies FASTA input bytes in bulk: which bytes start a
// record header, and which bytes are not one of ACGTacgt. It mirrors the
// bitmap-scan shape used for CSV delimiter detection, generalized to the
// two byte classes the FASTA reader cares about, with the scan routine
// selected at init time by detected CPU features.
package simd

// ClassifyBases scans buf and sets, for every byte position i, bit
// (i%64) of word (i/64) in headerMask if buf[i] == '>', and in
// nonACGTMask if buf[i] is not one of A,C,G,T,a,c,g,t. Both masks must
// hold at least (len(buf)+63)/64 words; bits are only set, never cleared.
func ClassifyBases(buf []byte, headerMask, nonACGTMask []uint64) {
	classifyImpl(buf, headerMask, nonACGTMask)
}

// classifyImpl is the active implementation, chosen in an arch-specific
// init() based on detected CPU features. It always has a correct pure-Go
// body: the "vectorized" path here computes the same bitmaps a SIMD
// gather would, so swapping it for a real assembly kernel later is a
// drop-in replacement with no change to callers.
var classifyImpl func(buf []byte, headerMask, nonACGTMask []uint64)

func classifyGeneric(buf []byte, headerMask, nonACGTMask []uint64) {
	for i, b := range buf {
		word := i / 64
		bit := uint(i % 64)
		switch b {
		case '>':
			headerMask[word] |= 1 << bit
		case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
			// recognized base, nothing to flag
		default:
			nonACGTMask[word] |= 1 << bit
		}
	}
}

// ActivePath reports which scan path is in effect, for diagnostics.
func ActivePath() string { return activePath }

var activePath = "generic"
