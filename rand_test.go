package komihash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Initial outputs of the generator for the reference seed pairs, as
// published by the reference implementation.
func TestRandSequences(t *testing.T) {
	sequences := []struct {
		seed uint64
		want [12]uint64
	}{
		{0, [12]uint64{
			0xaaaaaaaaaaaaaaaa, 0xfffffffffffffffe, 0x4924924924924910,
			0xbaebaebaebaeba00, 0x400c62cc4727496b, 0x35a969173e8f925b,
			0xdb47f6bae9a247ad, 0x98e0f6cece6711fe, 0x97ffa2397fda534b,
			0x11834262360df918, 0x34e53df5399f2252, 0xecaeb74a81d648ed,
		}},
		{0x0123456789ABCDEF, [12]uint64{
			0x776ad9718078ca64, 0x737aa5d5221633d0, 0x685046cca30f6f44,
			0xfb725cb01b30c1ba, 0xc501cc999ede619f, 0x8427298e525db507,
			0xd9baf3c54781f75e, 0x7f5a4e5b97b37c7b, 0xde8a0afe8e03b8c1,
			0xb6ed3e72b69fc3d6, 0xa68727902f7628d0, 0x44162b63af484587,
		}},
		{256, [12]uint64{
			0xaaaaaaaaaaababaa, 0xfffffffff8fcf8fe, 0xdb6dba1e4dbb1134,
			0xf5b7d3aec37f4cb1, 0x66a571da7ded7051, 0x2d59ec9245bf03d9,
			0x5c06a41bd510aed8, 0xea5e7ea9d2bd07a2, 0xe395015ddce7756f,
			0xc07981aaeaae3b38, 0x2e120ebfee59a5a2, 0x9001eee495244dba,
		}},
	}

	for _, seq := range sequences {
		s1, s2 := seq.seed, seq.seed
		for i, want := range seq.want {
			got := Rand(&s1, &s2)
			require.Equalf(t, want, got,
				"seed 0x%016x output %d: got 0x%016x", seq.seed, i, got)
		}
	}
}

func TestRandDistinct(t *testing.T) {
	s1, s2 := uint64(42), uint64(42)

	r1 := Rand(&s1, &s2)
	r2 := Rand(&s1, &s2)
	r3 := Rand(&s1, &s2)

	if r1 == r2 || r2 == r3 || r1 == r3 {
		t.Error("PRNG produced duplicate values")
	}
}

// Statistical sanity: no collisions among the first 2^16 outputs.
func TestRandNoEarlyCollisions(t *testing.T) {
	s1, s2 := uint64(0), uint64(0)

	seen := make(map[uint64]int, 1<<16)
	for i := 0; i < 1<<16; i++ {
		v := Rand(&s1, &s2)
		if prev, ok := seen[v]; ok {
			t.Fatalf("outputs %d and %d collide on 0x%016x", prev, i, v)
		}
		seen[v] = i
	}
}

// The generator self-starts from the all-zero state within 4 calls.
func TestRandSelfStart(t *testing.T) {
	s1, s2 := uint64(0), uint64(0)
	for i := 0; i < 4; i++ {
		Rand(&s1, &s2)
	}
	assert.NotZero(t, s1)
	assert.NotZero(t, s2)
}

func BenchmarkRand(b *testing.B) {
	s1, s2 := uint64(12345), uint64(12345)
	for i := 0; i < b.N; i++ {
		Rand(&s1, &s2)
	}
}
