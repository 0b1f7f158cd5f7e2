package design

// Deterministic seed derivation shared by the generator (per-candidate
// streams) and the ensemble evaluator (per-fold streams). Same inputs always
// yield the same seed, so concurrent and repeated runs reproduce bit-for-bit.

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed using the SplitMix64 finalizer. The constants give strong bit
// diffusion, so adjacent stream ids produce uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// identityHash hashes a candidate key (FNV-1a 64) so fold seeds depend on
// the mutation set itself, not on generation order.
func identityHash(key string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= prime64
	}
	return h
}
