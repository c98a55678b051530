// Package merlin implements Merlin transcripts: STROBE-128 based Fiat-Shamir
// transcripts with a synthetic, witness-bound RNG for prover randomness.
//
// Transcripts are byte-compatible with libmerlin, the Rust merlin crate and
// github.com/gtank/merlin. Every message and challenge is framed as
//
//	meta-AD(label) || meta-AD(LE32(length)) || AD(message) or PRF(length)
//
// on top of a STROBE-128 instance initialized with "Merlin v1.0", and the
// application label is committed under "dom-sep" right after initialization.
package merlin

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	MerlinProtocolLabel = "Merlin v1.0"
	DomainSepLabel      = "dom-sep"
)

// Transcript is a Merlin transcript. The zero value is not usable; create one
// with NewTranscript. A Transcript has no pointers and can be embedded or
// copied by value, which forks it.
type Transcript struct {
	s strobe128
}

// NewTranscript starts a transcript for the protocol named label.
func NewTranscript(label string) *Transcript {
	t := new(Transcript)
	t.Init([]byte(label))
	return t
}

// Init resets t and commits label as the application domain separator.
func (t *Transcript) Init(label []byte) {
	t.s = newStrobe128([]byte(MerlinProtocolLabel))
	t.AppendMessage([]byte(DomainSepLabel), label)
}

// AppendMessage commits message under label. Empty messages still commit
// their frame.
func (t *Transcript) AppendMessage(label, message []byte) {
	size := encodeLength("AppendMessage", len(message))
	t.s.metaAD(label, false)
	t.s.metaAD(size[:], true)
	t.s.ad(message, false)
}

// AppendUint64 commits v as an 8 byte little-endian message.
func (t *Transcript) AppendUint64(label []byte, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	t.AppendMessage(label, buf[:])
}

// ChallengeBytes fills dest with challenge bytes bound to everything
// committed so far, to label and to len(dest).
func (t *Transcript) ChallengeBytes(label, dest []byte) {
	size := encodeLength("ChallengeBytes", len(dest))
	t.s.metaAD(label, false)
	t.s.metaAD(size[:], true)
	t.s.prf(dest, false)
}

// ExtractBytes returns outLen challenge bytes; it matches the method of the
// same name in github.com/gtank/merlin.
func (t *Transcript) ExtractBytes(label []byte, outLen int) []byte {
	out := make([]byte, outLen)
	t.ChallengeBytes(label, out)
	return out
}

// Clone returns an independent copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	c := *t
	return &c
}

// Zero overwrites the transcript state. The transcript must be initialized
// again before further use.
func (t *Transcript) Zero() {
	t.s.wipe()
}

func encodeLength(op string, n int) [4]byte {
	if uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("%s length %d exceeds 32 bits", op, n))
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	return buf
}

// RangeproofDomainSep commits the Bulletproofs range proof domain separator
// for an aggregated proof of m values of n bits each.
func (t *Transcript) RangeproofDomainSep(n, m uint64) {
	t.AppendMessage([]byte(DomainSepLabel), []byte("rangeproof v1"))
	t.AppendUint64([]byte("n"), n)
	t.AppendUint64([]byte("m"), m)
}

// InnerproductDomainSep commits the inner product argument domain separator
// for vectors of length n.
func (t *Transcript) InnerproductDomainSep(n uint64) {
	t.AppendMessage([]byte(DomainSepLabel), []byte("ipp v1"))
	t.AppendUint64([]byte("n"), n)
}
