package conformance

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrMismatch = errors.New("conformance: outputs differ")

// MismatchError reports the first output on which two runners disagree.
type MismatchError struct {
	Script  string
	Step    int // output index
	OpIndex int // index of the producing op, -1 if the output counts differ
	A, B    string
	GotA    []byte
	GotB    []byte

	CountA, CountB int // output counts, set when they differ
}

func (e *MismatchError) Error() string {
	if e.OpIndex < 0 {
		return fmt.Sprintf("%s: %s produced %d outputs, %s produced %d", e.Script, e.A, e.CountA, e.B, e.CountB)
	}
	return fmt.Sprintf("%s: output %d (op %d) %s=%x %s=%x", e.Script, e.Step, e.OpIndex, e.A, e.GotA, e.B, e.GotB)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

func compareOutputs(s Script, nameA, nameB string, a, b [][]byte) error {
	if len(a) != len(b) {
		return &MismatchError{Script: s.Name, Step: -1, OpIndex: -1, A: nameA, B: nameB, CountA: len(a), CountB: len(b)}
	}
	ops := s.outputOps()
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return &MismatchError{Script: s.Name, Step: i, OpIndex: ops[i], A: nameA, B: nameB, GotA: a[i], GotB: b[i]}
		}
	}
	return nil
}

// Compare runs s on both runners and reports the first disagreement as a
// *MismatchError.
func Compare(s Script, a, b Runner) error {
	outA, err := a.Run(s)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}
	outB, err := b.Run(s)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Name(), err)
	}
	return compareOutputs(s, a.Name(), b.Name(), outA, outB)
}

// Vector is a script together with its expected outputs.
type Vector struct {
	Script
	Outputs []HexBytes `json:"outputs"`
}

// NewVector records the outputs of s on r.
func NewVector(s Script, r Runner) (Vector, error) {
	out, err := r.Run(s)
	if err != nil {
		return Vector{}, fmt.Errorf("%s: %w", r.Name(), err)
	}
	v := Vector{Script: s, Outputs: make([]HexBytes, len(out))}
	for i, o := range out {
		v.Outputs[i] = o
	}
	return v, nil
}

// Check replays v on r and compares against the recorded outputs.
func Check(v Vector, r Runner) error {
	out, err := r.Run(v.Script)
	if err != nil {
		return fmt.Errorf("%s: %w", r.Name(), err)
	}
	want := make([][]byte, len(v.Outputs))
	for i, o := range v.Outputs {
		want[i] = o
	}
	return compareOutputs(v.Script, "vector", r.Name(), want, out)
}
