package bloom

import (
	"path/filepath"
	"testing"
)

func TestFilterNoFalseNegative(t *testing.T) {
	f, err := NewFilter(4096, 4)
	if err != nil {
		t.Fatal(err)
	}
	bank := NewBank(5, []uint64{1, 2, 3, 4})

	edges := [][]byte{
		[]byte("ACGTA"),
		[]byte("CGTAC"),
		[]byte("TTTTT"),
		[]byte("GGGGG"),
	}
	for _, e := range edges {
		vals, err := bank.ValuesOf(e)
		if err != nil {
			t.Fatal(err)
		}
		f.Insert(vals)
	}
	for _, e := range edges {
		vals, err := bank.ValuesOf(e)
		if err != nil {
			t.Fatal(err)
		}
		if !f.Contains(vals) {
			t.Fatalf("inserted edge %s reported absent", e)
		}
	}
}

func TestBankRollMatchesReinit(t *testing.T) {
	seeds := []uint64{7, 11, 13}
	width := 6
	seq := []byte("ACGTACGTTTGCA")

	rolled := NewBank(width, seeds)
	var got [][]uint64
	for _, ch := range seq {
		ready, err := rolled.Feed(ch)
		if err != nil {
			t.Fatal(err)
		}
		if ready {
			got = append(got, append([]uint64(nil), rolled.Values()...))
		}
	}

	fresh := NewBank(width, seeds)
	var want [][]uint64
	for i := 0; i+width <= len(seq); i++ {
		vals, err := fresh.ValuesOf(seq[i : i+width])
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, vals)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d windows, want %d", len(got), len(want))
	}
	for i := range got {
		for j := range got[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("window %d hasher %d: rolled=%d reinit=%d", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestFilterSaveLoadRoundTrip(t *testing.T) {
	f, err := NewFilter(2048, 3)
	if err != nil {
		t.Fatal(err)
	}
	bank := NewBank(4, []uint64{1, 2, 3})
	vals, err := bank.ValuesOf([]byte("ACGT"))
	if err != nil {
		t.Fatal(err)
	}
	f.Insert(vals)

	path := filepath.Join(t.TempDir(), "filter.bloom")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Size() != f.Size() || loaded.HashCount() != f.HashCount() {
		t.Fatalf("loaded filter metadata mismatch")
	}
	if !loaded.Contains(vals) {
		t.Fatal("loaded filter lost inserted edge")
	}
}

func TestConfigErrors(t *testing.T) {
	if _, err := NewFilter(0, 2); err == nil {
		t.Fatal("expected error for m=0")
	}
	if _, err := NewFilter(1024, 0); err == nil {
		t.Fatal("expected error for q=0")
	}
}
