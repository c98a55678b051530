package keccak

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestF1600ZeroState(t *testing.T) {
	assert := assert.New(t)

	var s State
	s.Permute()
	assert.Equal(uint64(0xF1258F7940E1DDE7), s[0])
	assert.Equal(uint64(0x84D5CCF933C0478A), s[1])
}

// shakeState builds the state SHAKE128 permutes first when msg is shorter
// than one block.
func shakeState(msg []byte) State {
	var s State
	s.XorBytes(msg)
	s.XorByte(len(msg), 0x1f)
	s.XorByte(shakeRate-1, 0x80)
	return s
}

const shakeRate = 168

// TestF1600AgainstShake iterates the permutation and compares every step with
// the SHAKE128 squeeze stream, which outputs the rate part of F^k(state). The
// capacity lanes are only checked indirectly, through the next iterate;
// TestF1600FullState pins all 25 lanes.
func TestF1600AgainstShake(t *testing.T) {
	require := require.New(t)

	iterations := 1000000
	if testing.Short() {
		iterations = 10000
	}

	msg := make([]byte, 100)
	_, err := rand.Read(msg)
	require.Nil(err)

	h := sha3.NewShake128()
	h.Write(msg)
	s := shakeState(msg)

	block := make([]byte, shakeRate)
	for i := 0; i < iterations; i++ {
		_, err := h.Read(block)
		require.Nil(err)
		s.Permute()
		out := s.Bytes()
		if !bytes.Equal(out[:shakeRate], block) {
			t.Fatalf("permutation diverged at iteration %d: %x != %x", i, out[:shakeRate], block)
		}
	}
}

func TestF1600FullState(t *testing.T) {
	assert := assert.New(t)

	var s State
	for i := range s {
		s[i] = uint64(i) * 0x9E3779B97F4A7C15
	}
	s.Permute()
	assert.Equal(State{
		0x31d0ead06c02003e, 0xb6c8ddf17d459343, 0x186b01ea8396a727,
		0xb1d44b484b1c07f3, 0xb9e7a9170ef9f924, 0xde5762969ecd66cc,
		0xc672c623245b0cd9, 0x97813c19723b03b1, 0x04e074f28f3d29cb,
		0x085778b8426d1fbe, 0x58419fa868c81e23, 0x5c91a515ff4aea80,
		0x46705bd7a95a7b39, 0x4cce45e92e03481e, 0x8dcada3bb008dfc8,
		0x6074dc12601e9d58, 0xb5d9b0ae638a1fa2, 0x59d4ed73f35f7c37,
		0x59bc6e94f3aede1f, 0xdce5882224700218, 0x7ab625ca0be6fddb,
		0xe4df9661fa5e00cc, 0x1bfee53564d37054, 0x9f06dabe2767a304,
		0xbf9436545f4e31d1,
	}, s)
}

func TestStateBytes(t *testing.T) {
	assert := assert.New(t)

	var s State
	for i := 0; i < Size; i++ {
		s.XorByte(i, byte(i))
	}
	for i := 0; i < Size; i++ {
		assert.Equal(byte(i), s.Byte(i))
	}
	raw := s.Bytes()
	for i := 0; i < Size; i++ {
		assert.Equal(byte(i), raw[i])
	}

	s.SetByte(9, 0xaa)
	assert.Equal(byte(0xaa), s.Byte(9))
	assert.Equal(byte(8), s.Byte(8))
	assert.Equal(byte(10), s.Byte(10))

	var u State
	u.XorBytes(raw[:13])
	for i := 0; i < 13; i++ {
		assert.Equal(byte(i), u.Byte(i))
	}
	assert.Equal(byte(0), u.Byte(13))

	s.Zero()
	assert.Equal(State{}, s)
}

func BenchmarkF1600(b *testing.B) {
	var s State
	b.SetBytes(Size)
	for i := 0; i < b.N; i++ {
		s.Permute()
	}
}
