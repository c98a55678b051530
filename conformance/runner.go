package conformance

import (
	"bytes"
	"fmt"

	"github.com/MixinNetwork/merlin"
)

// Runner executes a script and returns the output of every challenge and
// random_bytes operation in order.
type Runner interface {
	Name() string
	Run(s Script) ([][]byte, error)
}

// EngineRunner runs scripts on this module's transcript and RNG.
type EngineRunner struct{}

func (EngineRunner) Name() string {
	return "engine"
}

func (EngineRunner) Run(s Script) ([][]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		t       merlin.Transcript
		builder merlin.RngBuilder
		rng     *merlin.Rng
		outputs [][]byte
	)
	defer func() {
		builder.Wipe()
		if rng != nil {
			rng.Wipe()
		}
	}()

	for i, op := range s.Ops {
		switch op.Kind {
		case OpInit:
			t.Init(op.Label)
		case OpCommit:
			t.AppendMessage(op.Label, op.Data)
		case OpChallenge:
			out := make([]byte, op.Length)
			t.ChallengeBytes(op.Label, out)
			outputs = append(outputs, out)
		case OpBuildRng:
			builder.Wipe()
			if rng != nil {
				rng.Wipe()
				rng = nil
			}
			builder = t.BuildRng()
		case OpWitness:
			builder = builder.CommitWitnessBytes(op.Label, op.Data)
		case OpFinalize:
			r, err := builder.Finalize(bytes.NewReader(op.Data))
			if err != nil {
				return nil, fmt.Errorf("%s op %d: %w", s.Name, i, err)
			}
			rng = r
		case OpRandomBytes:
			out := make([]byte, op.Length)
			rng.RandomBytes(out)
			outputs = append(outputs, out)
		case OpWipe:
			rng.Wipe()
			rng = nil
		}
	}
	return outputs, nil
}
