package simd

import "testing"

func TestClassifyBasesMatchesScalar(t *testing.T) {
	buf := []byte(">seq1\nACGTNacgtn\n>seq2\nACGT")
	words := (len(buf) + 63) / 64
	header := make([]uint64, words)
	nonACGT := make([]uint64, words)

	ClassifyBases(buf, header, nonACGT)

	for i, b := range buf {
		word, bit := i/64, uint(i%64)
		isHeader := header[word]&(1<<bit) != 0
		if (b == '>') != isHeader {
			t.Fatalf("byte %d (%q): header bit = %v", i, b, isHeader)
		}
		isNonACGT := nonACGT[word]&(1<<bit) != 0
		switch b {
		case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
			if isNonACGT {
				t.Fatalf("byte %d (%q): should not be flagged nonACGT", i, b)
			}
		default:
			if !isNonACGT {
				t.Fatalf("byte %d (%q): should be flagged nonACGT", i, b)
			}
		}
	}
}

func TestActivePathIsSet(t *testing.T) {
	if ActivePath() == "" {
		t.Fatal("expected a non-empty active path")
	}
}
