package dna

import "testing"

func TestAppendPopRoundTrip(t *testing.T) {
	k, err := New("ACGTACGT")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if k.Len() != 8 {
		t.Fatalf("Len = %d, want 8", k.Len())
	}
	if got := k.String(); got != "ACGTACGT" {
		t.Fatalf("String = %q, want ACGTACGT", got)
	}

	ch, err := k.PopBack()
	if err != nil {
		t.Fatal(err)
	}
	if ch != 'T' {
		t.Fatalf("PopBack = %c, want T", ch)
	}
	if err := k.AppendBack('A'); err != nil {
		t.Fatal(err)
	}
	if got := k.String(); got != "ACGTACGA" {
		t.Fatalf("after pop/append String = %q", got)
	}

	ch, err = k.PopFront()
	if err != nil {
		t.Fatal(err)
	}
	if ch != 'A' {
		t.Fatalf("PopFront = %c, want A", ch)
	}
	if err := k.AppendFront('T'); err != nil {
		t.Fatal(err)
	}
	if got := k.String(); got != "TCGTACGA" {
		t.Fatalf("after popfront/appendfront String = %q", got)
	}
}

func TestReverseComplement(t *testing.T) {
	k, err := New("ACGT")
	if err != nil {
		t.Fatal(err)
	}
	rc := k.ReverseComplement()
	if got := rc.String(); got != "ACGT" {
		t.Fatalf("revcomp(ACGT) = %q, want ACGT (palindrome)", got)
	}
	if !k.IsPalindrome() {
		t.Fatal("ACGT should be its own reverse complement")
	}

	k2, _ := New("AACG")
	rc2 := k2.ReverseComplement()
	if got := rc2.String(); got != "CGTT" {
		t.Fatalf("revcomp(AACG) = %q, want CGTT", got)
	}
}

func TestCanonicalIsStrandInvariant(t *testing.T) {
	k, _ := New("GGAT")
	rc := k.ReverseComplement()
	if !k.Canonical().Equal(rc.Canonical()) {
		t.Fatal("canonical(x) must equal canonical(revComp(x))")
	}
}

func TestAppendCapacity(t *testing.T) {
	s := make([]byte, MaxLength)
	for i := range s {
		s[i] = 'A'
	}
	k, err := New(string(s))
	if err != nil {
		t.Fatalf("New at capacity: %v", err)
	}
	if err := k.AppendBack('A'); err != ErrCapacity {
		t.Fatalf("AppendBack past capacity = %v, want ErrCapacity", err)
	}
}

func TestInvalidBase(t *testing.T) {
	if _, err := New("ACGN"); err == nil {
		t.Fatal("expected error for non-ACGT base")
	}
}

func TestEqualAndFromBody(t *testing.T) {
	k, _ := New("ACGT")
	k2 := FromBody(k.Body(), k.Len())
	if !k.Equal(k2) {
		t.Fatal("FromBody roundtrip should be equal")
	}
}
