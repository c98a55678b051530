package merlin

import (
	"fmt"

	"github.com/MixinNetwork/merlin/keccak"
)

// STROBE-128 parameters: rate R = 200 - 128/4 - 2.
const (
	strobeR = 166

	strobeVersion = "STROBEv1.0.2"
)

// STROBE operation flags.
const (
	flagI uint8 = 1 << iota
	flagA
	flagC
	flagT
	flagM
	flagK
)

// strobe128 is the STROBE-128 duplex restricted to the operations merlin
// needs (AD, KEY, PRF, each optionally in meta mode). Its size is fixed at
// 203 bytes and it holds no pointers, so assignment is a deep copy.
type strobe128 struct {
	state    keccak.State
	pos      uint8
	posBegin uint8
	curFlags uint8
}

func newStrobe128(protocolLabel []byte) strobe128 {
	var s strobe128
	s.state.XorBytes(append([]byte{1, strobeR + 2, 1, 0, 1, 12 * 8}, strobeVersion...))
	s.state.Permute()
	s.metaAD(protocolLabel, false)
	return s
}

func (s *strobe128) metaAD(data []byte, more bool) {
	s.beginOp(flagM|flagA, more)
	s.absorb(data)
}

func (s *strobe128) ad(data []byte, more bool) {
	s.beginOp(flagA, more)
	s.absorb(data)
}

func (s *strobe128) prf(data []byte, more bool) {
	s.beginOp(flagI|flagA|flagC, more)
	s.squeeze(data)
}

func (s *strobe128) key(data []byte, more bool) {
	s.beginOp(flagA|flagC, more)
	s.overwrite(data)
}

func (s *strobe128) runF() {
	s.state.XorByte(int(s.pos), s.posBegin)
	s.state.XorByte(int(s.pos)+1, 0x04)
	s.state.XorByte(strobeR+1, 0x80)
	s.state.Permute()
	s.pos = 0
	s.posBegin = 0
}

func (s *strobe128) absorb(data []byte) {
	for _, b := range data {
		s.state.XorByte(int(s.pos), b)
		s.pos++
		if s.pos == strobeR {
			s.runF()
		}
	}
}

func (s *strobe128) overwrite(data []byte) {
	for _, b := range data {
		s.state.SetByte(int(s.pos), b)
		s.pos++
		if s.pos == strobeR {
			s.runF()
		}
	}
}

func (s *strobe128) squeeze(data []byte) {
	for i := range data {
		data[i] = s.state.Byte(int(s.pos))
		s.state.SetByte(int(s.pos), 0)
		s.pos++
		if s.pos == strobeR {
			s.runF()
		}
	}
}

func (s *strobe128) beginOp(flags uint8, more bool) {
	if more {
		if s.curFlags != flags {
			panic(fmt.Sprintf("strobe128 beginOp flags changed while continuing %#x, %#x", s.curFlags, flags))
		}
		return
	}
	if flags&flagT != 0 {
		panic("strobe128 beginOp transport operations are not supported")
	}

	oldBegin := s.posBegin
	s.posBegin = s.pos + 1
	s.curFlags = flags
	s.absorb([]byte{oldBegin, flags})

	if flags&(flagC|flagK) != 0 && s.pos != 0 {
		s.runF()
	}
}

func (s *strobe128) wipe() {
	s.state.Zero()
	s.pos = 0
	s.posBegin = 0
	s.curFlags = 0
}
