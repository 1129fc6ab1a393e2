// Package enumerator drives the two-phase bifurcation-vertex pipeline:
// a single streaming pass builds the Bloom filter over (k+1)-mers
// (Phase B), then one or more rounds stream the input again, each
// restricted to a shard of the 64-bit canonical-hash space, running
// the candidate/confirmation state machine that decides which k-mers
// are bifurcations.
package enumerator

import (
	"fmt"
	"math/rand"

	"github.com/ptdtan/vertexenum/internal/dna"
)

// Config holds every parameter needed to run a build.
type Config struct {
	Inputs  []string // FASTA file paths
	K       int      // vertex k-mer length, 1 <= K <= dna.MaxLength
	M       uint64   // Bloom filter size in bits
	Q       int      // number of independent hash functions
	Rounds  int      // number of hash-space shards; 0 or 1 disables sharding
	Seed    int64    // seeds the q rolling-hash tables deterministically
	Verbose bool     // print the phase B summary and per-round progress lines
}

// Validate checks for the configuration errors that must be fatal and
// reported before any I/O is attempted.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("enumerator: no input files given")
	}
	if c.K <= 0 || c.K > dna.MaxLength {
		return fmt.Errorf("enumerator: k=%d out of range (1..%d)", c.K, dna.MaxLength)
	}
	if c.M == 0 {
		return fmt.Errorf("enumerator: bloom filter size m must be > 0")
	}
	if c.Q < 1 {
		return fmt.Errorf("enumerator: hash count q must be >= 1")
	}
	if c.Rounds < 0 {
		return fmt.Errorf("enumerator: rounds must be >= 0")
	}
	if c.Rounds == 0 {
		c.Rounds = 1
	}
	return nil
}

// seeds derives c.Q deterministic 64-bit seeds for the rolling hash
// bank from Config.Seed, so the whole run is reproducible: same seed,
// same inputs, same output list.
func (c *Config) seeds() []uint64 {
	rng := rand.New(rand.NewSource(c.Seed))
	out := make([]uint64, c.Q)
	for i := range out {
		out[i] = rng.Uint64()
	}
	return out
}

// shards partitions the full 64-bit hash space into c.Rounds
// contiguous, non-overlapping [low, high] ranges.
func (c *Config) shards() [][2]uint64 {
	rounds := uint64(c.Rounds)
	width := (^uint64(0)) / rounds
	out := make([][2]uint64, c.Rounds)
	var low uint64
	for r := uint64(0); r < rounds; r++ {
		high := low + width
		if r == rounds-1 {
			high = ^uint64(0)
		}
		out[r] = [2]uint64{low, high}
		low = high + 1
	}
	return out
}
