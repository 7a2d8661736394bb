package komihash

import "hash"

// bufSize is the streamed hashing buffer size, in bytes. Must be a
// multiple of 64 and not less than 128. Changing it affects performance
// only, never the produced digests.
const bufSize = 768

// Stream computes a komihash digest incrementally, producing the same
// value as Hash/HashSeeded over the concatenation of all written data,
// regardless of how the data was split across Write calls.
//
// Stream implements hash.Hash and hash.Hash64. Sum64 is non-destructive:
// it can be called to obtain intermediate digests of a growing stream,
// and writing can then be resumed. The buffer is held inline, so a Stream
// performs no allocations after construction and may be placed on the
// stack by escape analysis. A Stream must not be used from multiple
// goroutines concurrently; independent Streams need no coordination.
type Stream struct {
	buf     [bufSize]byte
	seeds   seedWords
	seed    uint64
	fill    int
	hashing bool
}

var _ hash.Hash64 = (*Stream)(nil)

// New returns a Stream hashing with the default seed.
func New() *Stream {
	return NewSeeded(0)
}

// NewSeeded returns a Stream hashing with the given seed. The seed is
// interpreted exactly as in HashSeeded.
func NewSeeded(seed uint64) *Stream {
	return &Stream{seed: seed}
}

// Reset discards all written data, returning the Stream to its initial
// state with the seed it was created with.
func (s *Stream) Reset() {
	s.fill = 0
	s.hashing = false
}

// Write absorbs p into the stream. It always returns len(p), nil.
//
// Bytes are buffered until a full buffer can be drained through the bulk
// loop; while the buffer is empty and more than 127 unconsumed bytes are
// available, the bulk loop runs directly over the caller's slice. The
// fast path stops at 127 rather than 63 remaining bytes so that the final
// partial 64-byte block is always left in the buffer, which keeps Sum64
// non-destructive.
func (s *Stream) Write(p []byte) (int, error) {
	n := len(p)
	var sw []byte
	fill := s.fill

	if fill+len(p) >= bufSize && fill != 0 {
		c := copy(s.buf[fill:], p)
		fill = 0
		sw = p[c:]
		p = s.buf[:]
	}

	if fill == 0 {
		for len(p) > 127 {
			if !s.hashing {
				s.hashing = true
				s1, s5 := initSeeds(s.seed)
				s.seeds = expandSeeds(s1, s5)
			}
			p, s.seeds = bulkLoop(p, s.seeds)

			if len(sw) == 0 {
				if len(p) != 0 {
					break
				}
				s.fill = 0
				return n, nil
			}
			p = sw
			sw = nil
		}
	}

	s.fill = fill + copy(s.buf[fill:], p)
	return n, nil
}

// Sum64 returns the digest of all data written so far. It does not alter
// the stream: further writes followed by another Sum64 yield the digest
// of the full concatenated input.
func (s *Stream) Sum64() uint64 {
	m := s.buf[:s.fill]
	if !s.hashing {
		// No bulk drain ever happened; the whole input is still
		// buffered, so the one-shot function covers it directly.
		return HashSeeded(m, s.seed)
	}

	w := s.seeds
	if len(m) > 63 {
		m, w = bulkLoop(m, w)
	}
	s1, s5 := foldSeeds(w)
	return epilogue(m, s1, s5)
}

// Sum appends the current digest, in big-endian order, to b.
func (s *Stream) Sum(b []byte) []byte {
	v := s.Sum64()
	return append(b,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Size returns the digest size in bytes.
func (s *Stream) Size() int { return 8 }

// BlockSize returns the bulk loop's block size in bytes.
func (s *Stream) BlockSize() int { return 64 }
