// Package conformance cross-validates merlin transcript implementations.
//
// A Script is an ordered list of transcript and RNG operations. Runners
// execute scripts against an implementation and return the bytes produced by
// every challenge and random_bytes operation; two implementations conform
// when every output matches.
package conformance

import (
	"encoding/hex"
	"errors"
	"fmt"
)

type OpKind string

const (
	OpInit        OpKind = "init"
	OpCommit      OpKind = "commit"
	OpChallenge   OpKind = "challenge"
	OpBuildRng    OpKind = "rng_build"
	OpWitness     OpKind = "rng_commit_witness"
	OpFinalize    OpKind = "rng_finalize"
	OpRandomBytes OpKind = "rng_random_bytes"
	OpWipe        OpKind = "rng_wipe"
)

var ErrInvalidScript = errors.New("conformance: invalid script")

// HexBytes is a byte slice that encodes as a hex string in JSON.
type HexBytes []byte

func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

func (h *HexBytes) UnmarshalText(text []byte) error {
	buf, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h = buf
	return nil
}

// Op is one operation. Label is used by init, commit, challenge and
// rng_commit_witness; Data by commit, rng_commit_witness and rng_finalize
// (the 32 entropy bytes); Length by challenge and rng_random_bytes.
type Op struct {
	Kind   OpKind   `json:"op"`
	Label  HexBytes `json:"label,omitempty"`
	Data   HexBytes `json:"data,omitempty"`
	Length int      `json:"length,omitempty"`
}

func (op Op) producesOutput() bool {
	return op.Kind == OpChallenge || op.Kind == OpRandomBytes
}

type Script struct {
	Name string `json:"name"`
	Ops  []Op   `json:"ops"`
}

// Validate checks the operation order: init first, RNG operations only on a
// live builder or RNG, 32 bytes of entropy per finalize.
func (s Script) Validate() error {
	if len(s.Ops) == 0 || s.Ops[0].Kind != OpInit {
		return fmt.Errorf("%w: %s must start with init", ErrInvalidScript, s.Name)
	}

	const (
		noRng = iota
		building
		finalized
	)
	stage := noRng
	for i, op := range s.Ops {
		if op.Length < 0 {
			return fmt.Errorf("%w: %s op %d negative length %d", ErrInvalidScript, s.Name, i, op.Length)
		}
		switch op.Kind {
		case OpInit:
			if i != 0 {
				return fmt.Errorf("%w: %s op %d init after start", ErrInvalidScript, s.Name, i)
			}
		case OpCommit, OpChallenge:
		case OpBuildRng:
			stage = building
		case OpWitness:
			if stage != building {
				return fmt.Errorf("%w: %s op %d witness without builder", ErrInvalidScript, s.Name, i)
			}
		case OpFinalize:
			if stage != building {
				return fmt.Errorf("%w: %s op %d finalize without builder", ErrInvalidScript, s.Name, i)
			}
			if len(op.Data) != 32 {
				return fmt.Errorf("%w: %s op %d finalize with %d entropy bytes", ErrInvalidScript, s.Name, i, len(op.Data))
			}
			stage = finalized
		case OpRandomBytes, OpWipe:
			if stage != finalized {
				return fmt.Errorf("%w: %s op %d %s without rng", ErrInvalidScript, s.Name, i, op.Kind)
			}
			if op.Kind == OpWipe {
				stage = noRng
			}
		default:
			return fmt.Errorf("%w: %s op %d unknown kind %q", ErrInvalidScript, s.Name, i, op.Kind)
		}
	}
	return nil
}

// outputOps maps each output index to the index of the op producing it.
func (s Script) outputOps() []int {
	var idx []int
	for i, op := range s.Ops {
		if op.producesOutput() {
			idx = append(idx, i)
		}
	}
	return idx
}

// ConformanceScript is the end-to-end scenario shared by every
// implementation: a committed message, a 32 byte challenge, then a witness
// bound RNG finalized with 32 bytes of 0x11 drawing 32 bytes.
func ConformanceScript() Script {
	entropy := make([]byte, 32)
	for i := range entropy {
		entropy[i] = 17
	}
	return Script{
		Name: "ConformanceTest",
		Ops: []Op{
			{Kind: OpInit, Label: HexBytes("ConformanceTest")},
			{Kind: OpCommit, Label: HexBytes("data"), Data: HexBytes("testdata")},
			{Kind: OpChallenge, Label: HexBytes("chal"), Length: 32},
			{Kind: OpBuildRng},
			{Kind: OpWitness, Label: HexBytes("witness"), Data: HexBytes("witnessdata")},
			{Kind: OpFinalize, Data: entropy},
			{Kind: OpRandomBytes, Length: 32},
			{Kind: OpWipe},
		},
	}
}
