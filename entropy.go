package merlin

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/dchest/blake2b"
)

// SystemEntropy returns the operating system CSPRNG. It is the entropy source
// to pass to RngBuilder.Finalize in production.
func SystemEntropy() io.Reader {
	return rand.Reader
}

type fixedEntropy struct {
	seed [EntropySize]byte
	off  int
}

// FixedEntropy returns a reader that yields seed over and over. RNGs finalized
// with it are fully deterministic; use it only for reproducible tests and
// conformance vectors.
func FixedEntropy(seed [EntropySize]byte) io.Reader {
	return &fixedEntropy{seed: seed}
}

func (f *fixedEntropy) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = f.seed[f.off]
		f.off = (f.off + 1) % EntropySize
	}
	return len(p), nil
}

type derivedEntropy struct {
	prefix  []byte
	counter uint64
	block   [32]byte
	off     int
}

// DerivedEntropy returns a deterministic stream of blake2b-256 blocks over
// domain, seed and a block counter. Distinct domains give independent streams
// for the same seed.
func DerivedEntropy(domain string, seed []byte) io.Reader {
	prefix := make([]byte, 0, len(domain)+8+len(seed))
	prefix = append(prefix, domain...)
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(seed)))
	prefix = append(prefix, size[:]...)
	prefix = append(prefix, seed...)
	return &derivedEntropy{prefix: prefix, off: 32}
}

func (d *derivedEntropy) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if d.off == len(d.block) {
			d.refill()
		}
		c := copy(p[n:], d.block[d.off:])
		d.off += c
		n += c
	}
	return n, nil
}

func (d *derivedEntropy) refill() {
	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], d.counter)
	d.counter++

	hash := blake2b.New256()
	hash.Write(d.prefix)
	hash.Write(counter[:])
	copy(d.block[:], hash.Sum(nil))
	d.off = 0
}
