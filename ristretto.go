package merlin

import (
	"errors"

	"github.com/bwesterb/go-ristretto"
)

// ErrIdentityPoint is returned when a protocol rejects the identity point.
var ErrIdentityPoint = errors.New("merlin: identity point")

// AppendPoint commits the compressed encoding of p.
func (t *Transcript) AppendPoint(label string, p *ristretto.Point) {
	t.AppendMessage([]byte(label), p.Bytes())
}

// ValidateAndAppendPoint commits p unless it is the identity, which
// Bulletproofs-style provers must never accept from a counterparty.
func (t *Transcript) ValidateAndAppendPoint(label string, p *ristretto.Point) error {
	var zero ristretto.Point
	zero.SetZero()
	if p.Equals(&zero) {
		return ErrIdentityPoint
	}
	t.AppendPoint(label, p)
	return nil
}

// AppendScalar commits the canonical encoding of s.
func (t *Transcript) AppendScalar(label string, s *ristretto.Scalar) {
	t.AppendMessage([]byte(label), s.Bytes())
}

// ChallengeScalar draws 64 challenge bytes and reduces them mod the group order.
func (t *Transcript) ChallengeScalar(label string) *ristretto.Scalar {
	var buf [64]byte
	t.ChallengeBytes([]byte(label), buf[:])
	return fromBytesModOrderWide(&buf)
}

// RandomScalar draws a uniformly distributed scalar, e.g. a blinding factor.
func (r *Rng) RandomScalar() *ristretto.Scalar {
	var buf [64]byte
	r.RandomBytes(buf[:])
	s := fromBytesModOrderWide(&buf)
	zeroBytes(buf[:])
	return s
}

// CommitWitnessScalar rekeys the builder with the canonical encoding of s.
func (b RngBuilder) CommitWitnessScalar(label string, s *ristretto.Scalar) RngBuilder {
	return b.CommitWitnessBytes([]byte(label), s.Bytes())
}

func fromBytesModOrderWide(data *[64]byte) *ristretto.Scalar {
	var s ristretto.Scalar
	return s.SetReduced(data)
}
