package fasta

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.fa")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) [][]byte {
	t.Helper()
	var records [][]byte
	for r.ReadRecord() {
		var seq []byte
		for {
			b, ok := r.NextBase()
			if !ok {
				break
			}
			seq = append(seq, b)
		}
		records = append(records, seq)
	}
	return records
}

func TestSingleRecord(t *testing.T) {
	path := writeTemp(t, ">s\nACGT\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	records := readAll(t, r)
	if len(records) != 1 || string(records[0]) != "ACGT" {
		t.Fatalf("records = %v, want [ACGT]", records)
	}
}

func TestMultiLineAndLowercase(t *testing.T) {
	path := writeTemp(t, ">s\nacgt\nACGT\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	records := readAll(t, r)
	if len(records) != 1 || string(records[0]) != "ACGTACGT" {
		t.Fatalf("records = %v, want [ACGTACGT]", records)
	}
}

func TestMultipleRecords(t *testing.T) {
	path := writeTemp(t, ">a\nACGT\n>b\nACGA\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	records := readAll(t, r)
	if len(records) != 2 || string(records[0]) != "ACGT" || string(records[1]) != "ACGA" {
		t.Fatalf("records = %v", records)
	}
}

func TestAmbiguousBaseSplitsRecord(t *testing.T) {
	path := writeTemp(t, ">s\nACGTNNNACGT\n")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	records := readAll(t, r)
	if len(records) != 2 {
		t.Fatalf("records = %v, want 2 segments split at N-run", records)
	}
	if string(records[0]) != "ACGT" || string(records[1]) != "ACGT" {
		t.Fatalf("records = %v", records)
	}
}

func TestEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if r.ReadRecord() {
		t.Fatal("expected no records from an empty file")
	}
}
