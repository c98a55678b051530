package conformance

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/MixinNetwork/merlin"
	gtank "github.com/gtank/merlin"
	strobe "github.com/mimoo/StrobeGo/strobe"
)

// ErrUnsupported is returned by reference runners for scripts they cannot
// execute, such as zero-length outputs, which both references reject.
var ErrUnsupported = errors.New("conformance: operation unsupported by runner")

func le32(n int) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(n))
	return buf[:]
}

// StrobeRunner replays scripts with the merlin framing written directly
// against the mimoo/StrobeGo STROBE implementation. It covers the RNG
// operations, which github.com/gtank/merlin does not expose.
type StrobeRunner struct{}

func (StrobeRunner) Name() string {
	return "strobego"
}

func (StrobeRunner) Run(s Script) ([][]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		st      strobe.Strobe
		rng     *strobe.Strobe
		outputs [][]byte
	)
	appendFrame := func(st *strobe.Strobe, label []byte, n int) {
		st.AD(true, label)
		st.Operate(true, "AD", le32(n), 0, true)
	}

	for i, op := range s.Ops {
		if op.producesOutput() && op.Length == 0 {
			return nil, fmt.Errorf("%w: %s op %d zero-length %s", ErrUnsupported, s.Name, i, op.Kind)
		}
		switch op.Kind {
		case OpInit:
			st = strobe.InitStrobe(merlin.MerlinProtocolLabel, 128)
			appendFrame(&st, []byte(merlin.DomainSepLabel), len(op.Label))
			st.AD(false, op.Label)
		case OpCommit:
			appendFrame(&st, op.Label, len(op.Data))
			st.AD(false, op.Data)
		case OpChallenge:
			appendFrame(&st, op.Label, op.Length)
			outputs = append(outputs, st.PRF(op.Length))
		case OpBuildRng:
			rng = st.Clone()
		case OpWitness:
			appendFrame(rng, op.Label, len(op.Data))
			rng.KEY(op.Data)
		case OpFinalize:
			rng.AD(true, []byte("rng"))
			rng.KEY(op.Data)
		case OpRandomBytes:
			rng.AD(true, le32(op.Length))
			outputs = append(outputs, rng.PRF(op.Length))
		case OpWipe:
			rng = nil
		}
	}
	return outputs, nil
}

// MerlinRunner replays the transcript operations of a script on
// github.com/gtank/merlin. Scripts with RNG operations are unsupported.
type MerlinRunner struct{}

func (MerlinRunner) Name() string {
	return "gtank"
}

func (MerlinRunner) Run(s Script) ([][]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		t       *gtank.Transcript
		outputs [][]byte
	)
	for i, op := range s.Ops {
		switch op.Kind {
		case OpInit:
			t = gtank.NewTranscript(string(op.Label))
		case OpCommit:
			t.AppendMessage(op.Label, op.Data)
		case OpChallenge:
			if op.Length == 0 {
				return nil, fmt.Errorf("%w: %s op %d zero-length challenge", ErrUnsupported, s.Name, i)
			}
			outputs = append(outputs, t.ExtractBytes(op.Label, op.Length))
		default:
			return nil, fmt.Errorf("%w: %s op %d %s", ErrUnsupported, s.Name, i, op.Kind)
		}
	}
	return outputs, nil
}
