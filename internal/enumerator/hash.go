package enumerator

// referenceHash is the fixed (unseeded) avalanche mix used to place a
// canonical k-mer body into a hash-range shard. It uses the same
// multiply-xorshift shape as the splitmix64 finalizer in
// internal/bloom, but with fixed constants and no seed: shard
// assignment must not depend on Config.Seed, or varying the round
// count and the hash seed together would confound the
// round-count-independence guarantee the sharded loop relies on.
func referenceHash(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// inShard reports whether h falls within the inclusive range [lo, hi].
func inShard(h, lo, hi uint64) bool {
	return h >= lo && h <= hi
}
