// Package komihash provides the komihash high-performance 64-bit hash
// function and the komirand PRNG.
//
// komihash passes all SMHasher quality tests and is designed for hash-table
// and hash-map key digests. It is not cryptographically secure. Digests are
// identical on big- and little-endian hosts for the same byte sequence and
// seed. komirand passes PractRand.
package komihash

import (
	"encoding/binary"
	"math/bits"
)

// Primary seed constants, the first mantissa bits of PI.
const (
	initSeed1 uint64 = 0x243F6A8885A308D3
	initSeed5 uint64 = 0x452821E638D01377
)

// Seed expansion constants for the bulk loop, further mantissa bits of PI.
const (
	initSeed2 uint64 = 0x13198A2E03707344
	initSeed3 uint64 = 0xA4093822299F31D0
	initSeed4 uint64 = 0x082EFA98EC4E6C89
	initSeed6 uint64 = 0xBE5466CF34E90C6C
	initSeed7 uint64 = 0xC0AC29B7C97C50DD
	initSeed8 uint64 = 0x3F84D5B5B5470917
)

// seedWords is the eight-word hashing state used by the bulk loop.
// Words 0-3 are the low lanes (Seed1-4), words 4-7 the high lanes (Seed5-8).
type seedWords [8]uint64

// mix performs one folded hashing round: a 128-bit multiply of the two
// operand words, with the high product half accumulated into s5 and then
// XORed into the low half. Accumulating rather than overwriting s5 carries
// entropy from the high product word into later rounds. Backs the
// input-less self-starting round (w1 = w2 = 0) and the 16-byte epilogue
// rounds; the bulk loop uses the unfused mixLane instead.
func mix(s1, s5, w1, w2 uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(s1^w1, s5^w2)
	s5 += hi
	s1 = lo ^ s5
	return s1, s5
}

// mixLane performs one unfused bulk-loop round: the low lane word is
// replaced by the low product half while the high lane accumulates the
// high half, with no fold between them. Cross-lane mixing happens only
// through the shifting XORs in bulkLoop.
func mixLane(s1, s5, w1, w2 uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(s1^w1, s5^w2)
	return lo, s5 + hi
}

// hashRound performs one input-less hashing round. Applied once before any
// message bytes are consumed, required for statistical self-starting.
func hashRound(s1, s5 uint64) (uint64, uint64) {
	return mix(s1, s5, 0, 0)
}

// hash16 performs one hashing round over 16 message bytes.
func hash16(s1, s5 uint64, m []byte) (uint64, uint64) {
	return mix(s1, s5, read64(m), read64(m[8:]))
}

// hashFin performs the common finalization: one round over the pending
// input words r1 and r2, then one input-less round. Seed1 is the digest.
func hashFin(s1, s5, r1, r2 uint64) uint64 {
	hi, lo := bits.Mul64(r1, r2)
	s5 += hi
	s1 = lo ^ s5
	s1, _ = hashRound(s1, s5)
	return s1
}

// read64 reads a little-endian uint64 from a byte slice.
func read64(p []byte) uint64 {
	return binary.LittleEndian.Uint64(p)
}

// read32 reads a little-endian uint32 from a byte slice.
func read32(p []byte) uint32 {
	return binary.LittleEndian.Uint32(p)
}

// loadTail builds a 64-bit word from the remaining 0..7 message bytes,
// padded with a sentinel bit set one position past the last byte. The
// sentinel guarantees that messages differing only in length or in
// trailing zero bytes never produce the same word. Never reads outside m.
func loadTail(m []byte) uint64 {
	ml8 := uint(len(m)) * 8
	if len(m) < 4 {
		v := uint64(1) << ml8
		for i, b := range m {
			v |= uint64(b) << (8 * uint(i))
		}
		return v
	}
	ml := uint64(read32(m))
	mh := uint64(read32(m[len(m)-4:]))
	return uint64(1)<<ml8 | ml | mh>>(64-ml8)<<32
}

// initSeeds derives the two primary seed words from the caller seed and
// runs the self-starting round.
func initSeeds(seed uint64) (uint64, uint64) {
	s1 := initSeed1 ^ (seed & 0x5555555555555555)
	s5 := initSeed5 ^ (seed & 0xAAAAAAAAAAAAAAAA)
	return hashRound(s1, s5)
}

// expandSeeds derives the six auxiliary seed words used by the bulk loop.
func expandSeeds(s1, s5 uint64) seedWords {
	return seedWords{
		s1, initSeed2 ^ s1, initSeed3 ^ s1, initSeed4 ^ s1,
		s5, initSeed6 ^ s5, initSeed7 ^ s5, initSeed8 ^ s5,
	}
}

// foldSeeds collapses the eight-word state back into the two primary words
// used by the epilogue.
func foldSeeds(w seedWords) (uint64, uint64) {
	return w[0] ^ w[1] ^ w[2] ^ w[3], w[4] ^ w[5] ^ w[6] ^ w[7]
}

// bulkLoop consumes 64 message bytes per iteration until at most 63
// remain, returning the unconsumed tail and the updated state. Callers
// must pass at least 64 bytes. The shifting arrangement of the lane XORs
// fuses the four lanes into a single 256-bit state, avoiding occasional
// synchronization between their individual periods.
func bulkLoop(m []byte, w seedWords) ([]byte, seedWords) {
	for {
		w[0], w[4] = mixLane(w[0], w[4], read64(m), read64(m[32:]))
		w[1], w[5] = mixLane(w[1], w[5], read64(m[8:]), read64(m[40:]))
		w[2], w[6] = mixLane(w[2], w[6], read64(m[16:]), read64(m[48:]))
		w[3], w[7] = mixLane(w[3], w[7], read64(m[24:]), read64(m[56:]))
		m = m[64:]

		w[1] ^= w[4]
		w[2] ^= w[5]
		w[3] ^= w[6]
		w[0] ^= w[7]

		if len(m) < 64 {
			return m, w
		}
	}
}

// epilogue hashes the remaining at most 63 bytes and finalizes. Shared by
// the 32..63-byte tier, the bulk-loop remainder and streamed finalization.
func epilogue(m []byte, s1, s5 uint64) uint64 {
	if len(m) > 31 {
		s1, s5 = hash16(s1, s5, m)
		s1, s5 = hash16(s1, s5, m[16:])
		m = m[32:]
	}
	if len(m) > 15 {
		s1, s5 = hash16(s1, s5, m)
		m = m[16:]
	}

	var r1, r2 uint64
	if len(m) > 7 {
		r2 = s5 ^ loadTail(m[8:])
		r1 = s1 ^ read64(m)
	} else {
		r1 = s1 ^ loadTail(m)
		r2 = s5
	}
	return hashFin(s1, s5, r1, r2)
}

// Hash computes the komihash of the given data with the default seed.
func Hash(data []byte) uint64 {
	return HashSeeded(data, 0)
}

// HashSeeded computes the komihash of the given data. The seed can have
// any bit length and statistical quality; it is used only as an additional
// entropy source, and zero selects the defaults.
func HashSeeded(data []byte, seed uint64) uint64 {
	s1, s5 := initSeeds(seed)

	if len(data) < 16 {
		r1, r2 := s1, s5
		if len(data) > 7 {
			// XORing the message into the seed halves is equivalent to
			// mixing with a one-time-pad; the message's statistics and
			// distribution are unimportant.
			r2 ^= loadTail(data[8:])
			r1 ^= read64(data)
		} else if len(data) != 0 {
			r1 ^= loadTail(data)
		}
		return hashFin(s1, s5, r1, r2)
	}

	if len(data) < 32 {
		s1, s5 = hash16(s1, s5, data)
		var r1, r2 uint64
		if len(data) > 23 {
			r2 = s5 ^ loadTail(data[24:])
			r1 = s1 ^ read64(data[16:])
		} else {
			r1 = s1 ^ loadTail(data[16:])
			r2 = s5
		}
		return hashFin(s1, s5, r1, r2)
	}

	m := data
	if len(m) > 63 {
		var w seedWords
		m, w = bulkLoop(m, expandSeeds(s1, s5))
		s1, s5 = foldSeeds(w)
	}
	return epilogue(m, s1, s5)
}
