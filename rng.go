package merlin

import (
	"errors"
	"fmt"
	"io"
)

// EntropySize is the number of external entropy bytes Finalize consumes.
const EntropySize = 32

const rngLabel = "rng"

var (
	ErrEntropy  = errors.New("merlin: entropy source failed")
	ErrRngWiped = errors.New("merlin: rng used after wipe")
)

// RngBuilder derives a synthetic RNG from a transcript snapshot. Witness
// commitments are values: CommitWitnessBytes returns a new builder and leaves
// the receiver and the source transcript untouched, so one snapshot can feed
// several branches (copy the builder to fork it). Finalize consumes the
// builder and wipes it.
type RngBuilder struct {
	s strobe128
}

// BuildRng snapshots the transcript state into a new builder.
func (t *Transcript) BuildRng() RngBuilder {
	return RngBuilder{s: t.s}
}

// CommitWitnessBytes rekeys the builder with witness under label.
func (b RngBuilder) CommitWitnessBytes(label, witness []byte) RngBuilder {
	size := encodeLength("CommitWitnessBytes", len(witness))
	b.s.metaAD(label, false)
	b.s.metaAD(size[:], true)
	b.s.key(witness, false)
	return b
}

// Finalize rekeys a copy of the builder with 32 bytes read from entropy and
// returns the RNG. It fails if entropy cannot supply all 32 bytes. Either way
// b is wiped on return and must not be used again. The caller owns the
// returned Rng and must Wipe (or Close) it when done.
func (b *RngBuilder) Finalize(entropy io.Reader) (*Rng, error) {
	var seed [EntropySize]byte
	defer zeroBytes(seed[:])
	defer b.Wipe()

	if _, err := io.ReadFull(entropy, seed[:]); err != nil {
		return nil, fmt.Errorf("Finalize read %d bytes: %w: %v", EntropySize, ErrEntropy, err)
	}

	r := &Rng{s: b.s}
	r.s.metaAD([]byte(rngLabel), false)
	r.s.key(seed[:], false)
	return r, nil
}

// Wipe zeroes a builder that will not be finalized. Builders holding witness
// commitments carry secret-derived state.
func (b *RngBuilder) Wipe() {
	b.s.wipe()
}

// Use finalizes the builder, hands the RNG to fn and wipes it on every exit
// path, including a panic in fn. Like Finalize it wipes b.
func (b *RngBuilder) Use(entropy io.Reader, fn func(r *Rng) error) error {
	r, err := b.Finalize(entropy)
	if err != nil {
		return err
	}
	defer r.Wipe()
	return fn(r)
}

// Rng is a synthetic RNG keyed by transcript, witness and entropy. Its state
// derives from secret witness data and is wiped by Wipe or Close.
type Rng struct {
	s     strobe128
	wiped bool
}

// RandomBytes fills dest with random bytes. It panics if the RNG was wiped.
func (r *Rng) RandomBytes(dest []byte) {
	if r.wiped {
		panic(ErrRngWiped)
	}
	size := encodeLength("RandomBytes", len(dest))
	r.s.metaAD(size[:], false)
	r.s.prf(dest, false)
}

// Read implements io.Reader; each call is one RandomBytes draw.
func (r *Rng) Read(p []byte) (int, error) {
	if r.wiped {
		return 0, ErrRngWiped
	}
	r.RandomBytes(p)
	return len(p), nil
}

// Wipe zeroes the RNG state. Further draws panic (RandomBytes) or fail
// (Read). Wipe is idempotent.
func (r *Rng) Wipe() {
	r.s.wipe()
	r.wiped = true
}

// Close implements io.Closer by wiping the RNG.
func (r *Rng) Close() error {
	r.Wipe()
	return nil
}

// Wiped reports whether the RNG has been wiped.
func (r *Rng) Wiped() bool {
	return r.wiped
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
