package keccak

import "encoding/binary"

// Size is the width of the permutation in bytes.
const Size = 200

// State is the 1600-bit permutation state. Lane i carries bytes 8i..8i+7 in
// little-endian order, so byte offsets match the byte-oriented view used by
// sponge constructions.
type State [25]uint64

// Permute applies Keccak-f[1600] to the state.
func (s *State) Permute() {
	F1600((*[25]uint64)(s))
}

// XorByte xors b into the byte at offset i.
func (s *State) XorByte(i int, b byte) {
	s[i>>3] ^= uint64(b) << (8 * uint(i&7))
}

// Byte returns the byte at offset i.
func (s *State) Byte(i int) byte {
	return byte(s[i>>3] >> (8 * uint(i&7)))
}

// SetByte overwrites the byte at offset i with b.
func (s *State) SetByte(i int, b byte) {
	shift := 8 * uint(i&7)
	s[i>>3] = s[i>>3]&^(0xff<<shift) | uint64(b)<<shift
}

// XorBytes xors buf into the state starting at byte offset 0.
func (s *State) XorBytes(buf []byte) {
	if len(buf) > Size {
		panic("keccak: XorBytes input longer than the state")
	}
	n := len(buf) / 8
	for i := 0; i < n; i++ {
		s[i] ^= binary.LittleEndian.Uint64(buf[8*i:])
	}
	for i := 8 * n; i < len(buf); i++ {
		s.XorByte(i, buf[i])
	}
}

// Bytes returns the state serialized as 200 bytes.
func (s *State) Bytes() [Size]byte {
	var out [Size]byte
	for i, lane := range s {
		binary.LittleEndian.PutUint64(out[8*i:], lane)
	}
	return out
}

// Zero overwrites every lane with zero.
func (s *State) Zero() {
	for i := range s {
		s[i] = 0
	}
}
