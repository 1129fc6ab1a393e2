package enumerator

import (
	"fmt"
	"time"

	"github.com/ptdtan/vertexenum/internal/bloom"
	"github.com/ptdtan/vertexenum/internal/dna"
	"github.com/ptdtan/vertexenum/internal/fasta"
	"github.com/ptdtan/vertexenum/internal/output"
)

var acgt = [4]byte{'A', 'C', 'G', 'T'}

// Enumerator owns the Bloom filter and rolling hash bank for one
// build, and drives the round loop that decides bifurcation status.
type Enumerator struct {
	cfg    Config
	filter *bloom.Filter
	bank   *bloom.Bank // width k+1, shared by Phase B inserts and the degree test's stateless probes
}

// New validates cfg and allocates the filter and hash bank.
func New(cfg Config) (*Enumerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	filter, err := bloom.NewFilter(cfg.M, cfg.Q)
	if err != nil {
		return nil, err
	}
	bank := bloom.NewBank(cfg.K+1, cfg.seeds())
	return &Enumerator{cfg: cfg, filter: filter, bank: bank}, nil
}

// Filter exposes the built Bloom filter, e.g. for Save after BuildFilter.
func (e *Enumerator) Filter() *bloom.Filter { return e.filter }

// BuildFilter is Phase B: one streaming pass over every input, feeding
// every observed (k+1)-mer's rolling-hash values into the Bloom
// filter. Canonicalization is implicit: the bank's cyclicHasher always
// reports min(forward, reverse-complement), so inserting the forward
// value alone also covers the reverse complement.
func (e *Enumerator) BuildFilter() error {
	start := time.Now()
	var edges int64
	for _, path := range e.cfg.Inputs {
		r, err := fasta.Open(path)
		if err != nil {
			return fmt.Errorf("enumerator: build filter: %w", err)
		}
		for r.ReadRecord() {
			e.bank.Reset()
			for {
				ch, ok := r.NextBase()
				if !ok {
					break
				}
				ready, err := e.bank.Feed(ch)
				if err != nil {
					r.Close()
					return fmt.Errorf("enumerator: build filter: %s: %w", path, err)
				}
				if ready {
					e.filter.Insert(e.bank.Values())
					edges++
				}
			}
		}
		r.Close()
	}
	if e.cfg.Verbose {
		fmt.Printf("phase B: filter size=%d bits, q=%d, edges fed=%d, elapsed=%s\n",
			e.filter.Size(), e.filter.HashCount(), edges, time.Since(start))
	}
	return nil
}

// Result is the outcome of a full Run: the assembled output list plus
// a per-round summary for diagnostics.
type Result struct {
	List   *output.List
	Rounds []RoundStats
}

// RoundStats reports what one round of the enumeration pass found.
type RoundStats struct {
	Round      int
	Low, High  uint64
	Confirmed  int
	Candidates int // live at round end, discarded (never promoted)
	Elapsed    time.Duration
}

// Run performs the enumeration pass: Config.Rounds rounds, each
// restricted to a contiguous shard of the 64-bit canonical-hash space,
// each streaming every input again and running the candidate/
// confirmation state machine.
func (e *Enumerator) Run() (*Result, error) {
	list := output.New(e.cfg.K)
	shards := e.cfg.shards()
	res := &Result{List: list, Rounds: make([]RoundStats, 0, len(shards))}

	for r, shard := range shards {
		lo, hi := shard[0], shard[1]
		if e.cfg.Verbose {
			fmt.Printf("round %d, [%d:%d]\n", r, lo, hi)
		}
		start := time.Now()

		candidates := make(map[uint64]witness)
		trueSet := make(map[uint64]struct{})

		for _, path := range e.cfg.Inputs {
			if err := e.enumerateFile(path, lo, hi, candidates, trueSet); err != nil {
				return nil, err
			}
		}

		bodies := make([]uint64, 0, len(trueSet))
		for body := range trueSet {
			bodies = append(bodies, body)
		}
		list.Append(bodies)

		res.Rounds = append(res.Rounds, RoundStats{
			Round: r, Low: lo, High: hi,
			Confirmed: len(trueSet), Candidates: len(candidates),
			Elapsed: time.Since(start),
		})
		if e.cfg.Verbose {
			fmt.Printf("round %d: confirmed=%d unresolved-candidates=%d elapsed=%s\n",
				r, len(trueSet), len(candidates), time.Since(start))
		}
	}

	list.Finalize()
	return res, nil
}

// enumerateFile streams one FASTA file through the round's state
// machine, maintaining the current k-mer window, its preceding base
// and its lookahead extension base.
func (e *Enumerator) enumerateFile(path string, lo, hi uint64, candidates map[uint64]witness, trueSet map[uint64]struct{}) error {
	r, err := fasta.Open(path)
	if err != nil {
		return fmt.Errorf("enumerator: run: %w", err)
	}
	defer r.Close()

	k := e.cfg.K
	for r.ReadRecord() {
		window, havePrev, haveExt, prev, ext, err := e.primeWindow(r, k)
		if err != nil {
			return fmt.Errorf("enumerator: run: %s: %w", path, err)
		}
		if !havePrev && !haveExt && window.Len() == 0 {
			continue // record shorter than k: no windows at all
		}
		for {
			e.visit(window, havePrev, prev, haveExt, ext, lo, hi, candidates, trueSet)
			if !haveExt {
				break
			}
			newPrev := window.Char(0)
			if _, err := window.PopFront(); err != nil {
				return fmt.Errorf("enumerator: run: %s: %w", path, err)
			}
			if err := window.AppendBack(ext); err != nil {
				return fmt.Errorf("enumerator: run: %s: %w", path, err)
			}
			prev, havePrev = newPrev, true
			ext, haveExt = r.NextBase()
		}
	}
	return nil
}

// primeWindow fills the first k-length window of a record (if the
// record is at least k bases long) and reads one base ahead as the
// initial lookahead extension.
func (e *Enumerator) primeWindow(r *fasta.Reader, k int) (window dna.Kmer, havePrev, haveExt bool, prev, ext byte, err error) {
	for i := 0; i < k; i++ {
		ch, ok := r.NextBase()
		if !ok {
			return dna.Kmer{}, false, false, 0, 0, nil
		}
		if err := window.AppendBack(ch); err != nil {
			return dna.Kmer{}, false, false, 0, 0, err
		}
	}
	ext, haveExt = r.NextBase()
	return window, false, haveExt, 0, ext, nil
}

// visit applies the per-position rules to one k-mer window observation.
func (e *Enumerator) visit(V dna.Kmer, havePrev bool, prev byte, haveExt bool, ext byte, lo, hi uint64, candidates map[uint64]witness, trueSet map[uint64]struct{}) {
	canon := V.Canonical()
	h := referenceHash(canon.Body())
	if !inShard(h, lo, hi) {
		return
	}

	if !havePrev || !haveExt {
		// Boundary rule: first or last full window of the record.
		trueSet[canon.Body()] = struct{}{}
		delete(candidates, canon.Body())
		return
	}

	if _, ok := trueSet[canon.Body()]; ok {
		return // already-true short-circuit
	}

	canon2, w, err := canonicalize(V, prev, ext)
	if err != nil {
		return // malformed prev/ext byte; cannot happen on a validated ACGT stream
	}

	existing, found := candidates[canon2.Body()]
	if !found {
		inCount, outCount := e.degreeTest(V)
		if inCount > 1 || outCount > 1 {
			candidates[canon2.Body()] = w
		}
		return
	}

	if existing != w {
		trueSet[canon2.Body()] = struct{}{}
		delete(candidates, canon2.Body())
	}
}

// degreeTest performs the 8 Bloom probes (4 bases x {incoming,
// outgoing}) that decide whether V is a putative bifurcation.
func (e *Enumerator) degreeTest(V dna.Kmer) (inCount, outCount int) {
	k := V.Len()
	edge := make([]byte, k+1)
	body := V.String()
	copy(edge[1:], body)
	for _, c := range acgt {
		edge[0] = c
		vals, err := e.bank.ValuesOf(edge)
		if err == nil && e.filter.Contains(vals) {
			inCount++
		}
	}
	copy(edge[:k], body)
	for _, c := range acgt {
		edge[k] = c
		vals, err := e.bank.ValuesOf(edge)
		if err == nil && e.filter.Contains(vals) {
			outCount++
		}
	}
	return
}
