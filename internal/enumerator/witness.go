package enumerator

import "github.com/ptdtan/vertexenum/internal/dna"

// witness is the (prev, ext) pair observed the first time a candidate
// vertex was seen, stored in canonical orientation so a later visit on
// either strand compares correctly. A zero byte marks an undefined
// side, which never happens for a stored witness: undefined prev/ext
// only occurs at record boundaries, and those go straight to TrueSet.
type witness struct {
	prev byte
	ext  byte
}

// canonicalize folds a (V, prev, ext) observation into the
// corresponding canonical k-mer and the witness pair expressed in that
// k-mer's orientation. When V is already canonical the pair is used
// as-is; otherwise V's canonical form is its reverse complement, and
// the equivalent flanking bases on that strand are the complements of
// ext and prev, swapped (the reverse complement of "prev V ext" is
// "comp(ext) RC(V) comp(prev)"). A palindromic V reads the same on both
// strands, so (prev, ext) and (comp(ext), comp(prev)) describe the same
// edge context; the smaller of the two pairs is stored.
func canonicalize(V dna.Kmer, prev, ext byte) (canon dna.Kmer, w witness, err error) {
	canon = V.Canonical()
	if canon.Equal(V) {
		w = witness{prev: prev, ext: ext}
		if V.IsPalindrome() {
			cp, err := dna.Complement(ext)
			if err != nil {
				return canon, witness{}, err
			}
			ce, err := dna.Complement(prev)
			if err != nil {
				return canon, witness{}, err
			}
			if cp < w.prev || (cp == w.prev && ce < w.ext) {
				w = witness{prev: cp, ext: ce}
			}
		}
		return canon, w, nil
	}
	cp, err := dna.Complement(ext)
	if err != nil {
		return canon, witness{}, err
	}
	ce, err := dna.Complement(prev)
	if err != nil {
		return canon, witness{}, err
	}
	return canon, witness{prev: cp, ext: ce}, nil
}
