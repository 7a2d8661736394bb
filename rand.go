package komihash

import "math/bits"

// Rand returns the next komirand pseudo-random value, updating both state
// words in place. Any initial state is valid, including (0, 0): the
// additive 0xAAAA... constant (a replication of the "10" bit-pair, not an
// arbitrary value) makes the generator self-start within 4 calls, whose
// outputs should be discarded if uniformity is required immediately. The
// period is 2^64 per independent stream. Best initialized with seed1 and
// seed2 set to the same value.
func Rand(seed1, seed2 *uint64) uint64 {
	hi, lo := bits.Mul64(*seed1, *seed2)
	s2 := *seed2 + hi + 0xAAAAAAAAAAAAAAAA
	s1 := lo ^ s2

	*seed1 = s1
	*seed2 = s2

	return s1
}
